package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agromonitor/database/dbtest"
	"agromonitor/pkg/rules"
)

func TestHealth(t *testing.T) {
	e := echo.New()
	h := NewHealthCtrl(dbtest.New(t), rules.Default())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Checks map[string]struct {
			OK    bool `json:"ok"`
			Count int  `json:"count"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Checks["database"].OK)
	assert.Equal(t, len(rules.Default().Catalog()), body.Checks["rules"].Count)
}

func TestHealthWithoutDB(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, NewHealthCtrl(nil, rules.Default()).Health(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
