package controller

import "github.com/labstack/echo/v4"

type MeasureController interface {
	CreateSoil(c echo.Context) error
	ListSoil(c echo.Context) error
	SetSoilObjective(c echo.Context) error
	CreateSeed(c echo.Context) error
	ListSeed(c echo.Context) error
	CreateRainfall(c echo.Context) error
	ListRainfall(c echo.Context) error
	CreatePasture(c echo.Context) error
	ListPasture(c echo.Context) error
}
