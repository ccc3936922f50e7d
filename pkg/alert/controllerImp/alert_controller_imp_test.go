package controllerImp

import (
	"context"
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
	"agromonitor/pkg/alert/repositoryImp"
	"agromonitor/pkg/alert/serviceImp"
	"agromonitor/pkg/middleware"
)

func setup(t *testing.T) (*echo.Echo, *entities.Alert) {
	t.Helper()
	svc := serviceImp.New(repositoryImp.New(dbtest.New(t)), nil)
	a, _, err := svc.CreateIfAbsent(context.Background(), &entities.Alert{
		FirmID: 4, EntityType: entities.EntityLot, EntityID: 9, Domain: "pasture", RuleID: "pastura_sobrepastoreo", Priority: "high",
	})
	require.NoError(t, err)

	h := NewAlertCtrl(svc)
	e := echo.New()
	e.GET("/firms/:firm_id/alerts", h.List)
	e.GET("/alerts/:id", h.Get)
	e.PATCH("/alerts/:id/resolve", h.Resolve)
	e.PATCH("/alerts/:id/dismiss", h.Dismiss)
	return e, a
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestResolveThenConflict(t *testing.T) {
	e, a := setup(t)
	path := "/alerts/" + itoa(a.AlertID) + "/resolve"

	rec := serve(e, http.MethodPatch, path, `{"notes":"rotación de potrero"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out entities.Alert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, entities.AlertResolved, out.Status)

	assert.Equal(t, http.StatusConflict, serve(e, http.MethodPatch, path, `{}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodPatch, "/alerts/999/dismiss", `{"reason":"x"}`).Code)
}

func TestListFiltersByStatus(t *testing.T) {
	e, _ := setup(t)

	rec := serve(e, http.MethodGet, "/firms/4/alerts?status=pending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []entities.Alert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = serve(e, http.MethodGet, "/firms/4/alerts?status=resolved", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)

	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodGet, "/firms/4/alerts?status=open", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodGet, "/alerts/12345", "").Code)
}

func itoa(v uint) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestFirmScopeHidesOtherFirmsAlerts(t *testing.T) {
	svc := serviceImp.New(repositoryImp.New(dbtest.New(t)), nil)
	a, _, err := svc.CreateIfAbsent(context.Background(), &entities.Alert{
		FirmID: 4, EntityType: entities.EntityLot, EntityID: 9, Domain: "pasture", RuleID: "pastura_sobrepastoreo", Priority: "high",
	})
	require.NoError(t, err)

	h := NewAlertCtrl(svc)
	e := echo.New()
	g := e.Group("", middleware.FirmScope(true))
	g.GET("/alerts/:id", h.Get)
	g.PATCH("/alerts/:id/resolve", h.Resolve)
	g.PATCH("/alerts/:id/dismiss", h.Dismiss)

	call := func(method, path, firm string) int {
		req := httptest.NewRequest(method, path, strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(middleware.FirmHeader, firm)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}
	base := "/alerts/" + itoa(a.AlertID)

	assert.Equal(t, http.StatusNotFound, call(http.MethodGet, base, "99"))
	assert.Equal(t, http.StatusNotFound, call(http.MethodPatch, base+"/resolve", "99"))
	assert.Equal(t, http.StatusNotFound, call(http.MethodPatch, base+"/dismiss", "99"))

	stored, err := svc.Get(context.Background(), a.AlertID)
	require.NoError(t, err)
	assert.Equal(t, entities.AlertPending, stored.Status, "untouched by the other firm")

	assert.Equal(t, http.StatusOK, call(http.MethodGet, base, "4"))
	assert.Equal(t, http.StatusOK, call(http.MethodPatch, base+"/resolve", "4"))
}
