package controller

import "github.com/labstack/echo/v4"

type AlertController interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Resolve(c echo.Context) error
	Dismiss(c echo.Context) error
}
