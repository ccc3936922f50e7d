package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// stub answers every route with the handler's name.
type stub struct{}

func named(name string) echo.HandlerFunc {
	return func(c echo.Context) error { return c.String(http.StatusOK, name) }
}

func (stub) CreateFirm(c echo.Context) error        { return named("CreateFirm")(c) }
func (stub) CreatePremise(c echo.Context) error     { return named("CreatePremise")(c) }
func (stub) CreateLot(c echo.Context) error         { return named("CreateLot")(c) }
func (stub) CreateSeedVariety(c echo.Context) error { return named("CreateSeedVariety")(c) }
func (stub) ListFirmEntities(c echo.Context) error  { return named("ListFirmEntities")(c) }
func (stub) CreateSoil(c echo.Context) error        { return named("CreateSoil")(c) }
func (stub) ListSoil(c echo.Context) error          { return named("ListSoil")(c) }
func (stub) SetSoilObjective(c echo.Context) error  { return named("SetSoilObjective")(c) }
func (stub) CreateSeed(c echo.Context) error        { return named("CreateSeed")(c) }
func (stub) ListSeed(c echo.Context) error          { return named("ListSeed")(c) }
func (stub) CreateRainfall(c echo.Context) error    { return named("CreateRainfall")(c) }
func (stub) ListRainfall(c echo.Context) error      { return named("ListRainfall")(c) }
func (stub) CreatePasture(c echo.Context) error     { return named("CreatePasture")(c) }
func (stub) ListPasture(c echo.Context) error       { return named("ListPasture")(c) }
func (stub) List(c echo.Context) error              { return named("ListAlerts")(c) }
func (stub) Get(c echo.Context) error               { return named("Get")(c) }
func (stub) Resolve(c echo.Context) error           { return named("Resolve")(c) }
func (stub) Dismiss(c echo.Context) error           { return named("Dismiss")(c) }
func (stub) VerifyAll(c echo.Context) error         { return named("VerifyAll")(c) }
func (stub) VerifyLot(c echo.Context) error         { return named("VerifyLot")(c) }
func (stub) VerifySeedVariety(c echo.Context) error { return named("VerifySeedVariety")(c) }
func (stub) VerifyPremise(c echo.Context) error     { return named("VerifyPremise")(c) }
func (stub) Rules(c echo.Context) error             { return named("Rules")(c) }
func (stub) Health(c echo.Context) error            { return named("Health")(c) }
func (stub) Register(g *echo.Group) {
	g.PATCH("/fertilizations/:id", named("PatchFertilization"))
}

func newRouter(firmScope bool) *echo.Echo {
	s := stub{}
	return New(echo.New(), firmScope, Controllers{
		Catalog: s, Measure: s, Fertilization: s, Alert: s,
		Verify: s, Summary: s, Health: s,
	})
}

func do(e *echo.Echo, method, path, firm string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if firm != "" {
		req.Header.Set("X-Firm-ID", firm)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	e := newRouter(false)
	cases := []struct{ method, path, want string }{
		{http.MethodPost, "/firms/1/verify", "VerifyAll"},
		{http.MethodPost, "/firms/1/lots/2/verify", "VerifyLot"},
		{http.MethodPost, "/firms/1/seed-varieties/2/verify", "VerifySeedVariety"},
		{http.MethodPost, "/firms/1/premises/2/verify", "VerifyPremise"},
		{http.MethodGet, "/firms/1/summary", "Get"},
		{http.MethodGet, "/firms/1/alerts", "ListAlerts"},
		{http.MethodPatch, "/alerts/3/resolve", "Resolve"},
		{http.MethodPut, "/lots/2/soil-objective", "SetSoilObjective"},
		{http.MethodGet, "/premises/2/rainfall", "ListRainfall"},
		{http.MethodPatch, "/fertilizations/4", "PatchFertilization"},
		{http.MethodGet, "/rules", "Rules"},
		{http.MethodGet, "/health", "Health"},
	}
	for _, tc := range cases {
		rec := do(e, tc.method, tc.path, "")
		assert.Equal(t, http.StatusOK, rec.Code, tc.path)
		assert.Equal(t, tc.want, rec.Body.String(), tc.path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rec := do(newRouter(false), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestFirmScopeLeavesHealthOpen(t *testing.T) {
	e := newRouter(true)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/firms/1/alerts", "").Code)
	assert.Equal(t, http.StatusForbidden, do(e, http.MethodGet, "/firms/1/alerts", "2").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/firms/1/alerts", "1").Code)
}
