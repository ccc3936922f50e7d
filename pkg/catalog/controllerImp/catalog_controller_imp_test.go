package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agromonitor/database/dbtest"
	"agromonitor/entities"
	"agromonitor/pkg/catalog/repositoryImp"
	"agromonitor/pkg/middleware"
)

func setup(t *testing.T) *echo.Echo {
	h := NewCatalogCtrl(repositoryImp.New(dbtest.New(t)))
	e := echo.New()
	g := e.Group("", middleware.FirmScope(false))
	g.POST("/firms", h.CreateFirm)
	g.POST("/firms/:firm_id/premises", h.CreatePremise)
	g.POST("/firms/:firm_id/seed-varieties", h.CreateSeedVariety)
	g.POST("/premises/:id/lots", h.CreateLot)
	g.GET("/firms/:firm_id/entities", h.ListFirmEntities)
	return e
}

func send(e *echo.Echo, method, path, body, firm string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if firm != "" {
		req.Header.Set(middleware.FirmHeader, firm)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCatalogLifecycle(t *testing.T) {
	e := setup(t)

	rec := send(e, http.MethodPost, "/firms", `{"name":"La Esperanza"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var firm entities.Firm
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &firm))

	rec = send(e, http.MethodPost, "/firms/1/premises", `{"name":"Norte"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	// a firm_id in the body is ignored; the premise decides
	rec = send(e, http.MethodPost, "/premises/1/lots", `{"name":"Lote 3","firm_id":99}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var lot entities.Lot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lot))
	assert.Equal(t, firm.FirmID, lot.FirmID)

	rec = send(e, http.MethodPost, "/firms/1/seed-varieties", `{"name":"INIA Carape"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = send(e, http.MethodGet, "/firms/1/entities", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Premises      []entities.Premise     `json:"premises"`
		Lots          []entities.Lot         `json:"lots"`
		SeedVarieties []entities.SeedVariety `json:"seed_varieties"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Premises, 1)
	assert.Len(t, out.Lots, 1)
	assert.Len(t, out.SeedVarieties, 1)
}

func TestCreateLotErrors(t *testing.T) {
	e := setup(t)
	assert.Equal(t, http.StatusNotFound, send(e, http.MethodPost, "/premises/7/lots", `{"name":"x"}`, "").Code)
	assert.Equal(t, http.StatusBadRequest, send(e, http.MethodPost, "/firms", `{}`, "").Code)

	require.Equal(t, http.StatusCreated, send(e, http.MethodPost, "/firms", `{"name":"a"}`, "").Code)
	require.Equal(t, http.StatusCreated, send(e, http.MethodPost, "/firms/1/premises", `{"name":"p"}`, "").Code)
	// caller scoped to another firm cannot attach lots to this premise
	assert.Equal(t, http.StatusNotFound, send(e, http.MethodPost, "/premises/1/lots", `{"name":"x"}`, "2").Code)
}
