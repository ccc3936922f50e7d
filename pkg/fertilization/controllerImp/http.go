package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"agromonitor/entities"
	catalog "agromonitor/pkg/catalog/repository"
	fsvc "agromonitor/pkg/fertilization/service"
)

type httpCtrl struct{ s fsvc.Service }

func New(s fsvc.Service) *httpCtrl { return &httpCtrl{s: s} }

func (h *httpCtrl) Register(g *echo.Group) {
	g.POST("/lots/:id/fertilizations", h.create)
	g.GET("/lots/:id/fertilizations", h.list)
	g.PATCH("/fertilizations/:id", h.patch)
}

func (h *httpCtrl) create(c echo.Context) error {
	lotID, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lot id"})
	}
	var in entities.Fertilization
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	in.LotID = uint(lotID)
	if err := h.s.Create(c.Request().Context(), &in); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, in)
}

func (h *httpCtrl) list(c echo.Context) error {
	lotID, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lot id"})
	}
	var fromPtr, toPtr *time.Time
	if v := c.QueryParam("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			fromPtr = &t
		}
	}
	if v := c.QueryParam("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			toPtr = &t
		}
	}
	list, err := h.s.ListByLot(c.Request().Context(), uint(lotID), fromPtr, toPtr)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *httpCtrl) patch(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in fsvc.FertilizationPatch
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	out, err := h.s.UpdatePartial(c.Request().Context(), uint(id), in)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func writeErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, fsvc.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, fsvc.ErrInvalid):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
