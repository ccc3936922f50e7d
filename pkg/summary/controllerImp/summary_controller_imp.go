package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	catalog "agromonitor/pkg/catalog/repository"
	"agromonitor/pkg/summary/service"
)

type SummaryCtrl struct{ svc service.SummaryService }

func NewSummaryCtrl(svc service.SummaryService) *SummaryCtrl { return &SummaryCtrl{svc: svc} }

func (h *SummaryCtrl) Get(c echo.Context) error {
	firmID, err := strconv.ParseUint(c.Param("firm_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid firm_id"})
	}
	sc := service.Scope{FirmID: uint(firmID)}
	if sc.PremiseID, err = optUint(c.QueryParam("premise_id")); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid premise_id"})
	}
	if sc.LotID, err = optUint(c.QueryParam("lot_id")); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid lot_id"})
	}
	out, err := h.svc.BuildSummary(c.Request().Context(), sc)
	if errors.Is(err, catalog.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func optUint(s string) (*uint, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, err
	}
	u := uint(v)
	return &u, nil
}
