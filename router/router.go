package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agromonitor/pkg/middleware"
)

type Controllers struct {
	Catalog interface {
		CreateFirm(echo.Context) error
		CreatePremise(echo.Context) error
		CreateLot(echo.Context) error
		CreateSeedVariety(echo.Context) error
		ListFirmEntities(echo.Context) error
	}
	Measure interface {
		CreateSoil(echo.Context) error
		ListSoil(echo.Context) error
		SetSoilObjective(echo.Context) error
		CreateSeed(echo.Context) error
		ListSeed(echo.Context) error
		CreateRainfall(echo.Context) error
		ListRainfall(echo.Context) error
		CreatePasture(echo.Context) error
		ListPasture(echo.Context) error
	}
	Fertilization interface{ Register(*echo.Group) }
	Alert         interface {
		List(echo.Context) error
		Get(echo.Context) error
		Resolve(echo.Context) error
		Dismiss(echo.Context) error
	}
	Verify interface {
		VerifyAll(echo.Context) error
		VerifyLot(echo.Context) error
		VerifySeedVariety(echo.Context) error
		VerifyPremise(echo.Context) error
		Rules(echo.Context) error
	}
	Summary interface{ Get(echo.Context) error }
	Health  interface{ Health(echo.Context) error }
}

func New(e *echo.Echo, firmScope bool, c Controllers) *echo.Echo {
	e.Use(middleware.Recovery())
	e.Use(middleware.RequestLogger())

	e.GET("/health", c.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("", middleware.FirmScope(firmScope))
	api.GET("/rules", c.Verify.Rules)

	// catalog
	api.POST("/firms", c.Catalog.CreateFirm)
	api.GET("/firms/:firm_id/entities", c.Catalog.ListFirmEntities)
	api.POST("/firms/:firm_id/premises", c.Catalog.CreatePremise)
	api.POST("/firms/:firm_id/seed-varieties", c.Catalog.CreateSeedVariety)
	api.POST("/premises/:id/lots", c.Catalog.CreateLot)

	// verification
	api.POST("/firms/:firm_id/verify", c.Verify.VerifyAll)
	api.POST("/firms/:firm_id/lots/:id/verify", c.Verify.VerifyLot)
	api.POST("/firms/:firm_id/seed-varieties/:id/verify", c.Verify.VerifySeedVariety)
	api.POST("/firms/:firm_id/premises/:id/verify", c.Verify.VerifyPremise)
	api.GET("/firms/:firm_id/summary", c.Summary.Get)

	// alerts
	api.GET("/firms/:firm_id/alerts", c.Alert.List)
	api.GET("/alerts/:id", c.Alert.Get)
	api.PATCH("/alerts/:id/resolve", c.Alert.Resolve)
	api.PATCH("/alerts/:id/dismiss", c.Alert.Dismiss)

	// measurements
	api.POST("/lots/:id/soil-analyses", c.Measure.CreateSoil)
	api.GET("/lots/:id/soil-analyses", c.Measure.ListSoil)
	api.PUT("/lots/:id/soil-objective", c.Measure.SetSoilObjective)
	api.POST("/lots/:id/pasture-readings", c.Measure.CreatePasture)
	api.GET("/lots/:id/pasture-readings", c.Measure.ListPasture)
	api.POST("/seed-varieties/:id/analyses", c.Measure.CreateSeed)
	api.GET("/seed-varieties/:id/analyses", c.Measure.ListSeed)
	api.POST("/premises/:id/rainfall", c.Measure.CreateRainfall)
	api.GET("/premises/:id/rainfall", c.Measure.ListRainfall)

	c.Fertilization.Register(api)
	return e
}
