package controller

import "github.com/labstack/echo/v4"

type VerifyController interface {
	VerifyAll(c echo.Context) error
	VerifyLot(c echo.Context) error
	VerifySeedVariety(c echo.Context) error
	VerifyPremise(c echo.Context) error
	Rules(c echo.Context) error
}
