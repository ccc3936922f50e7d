package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agromonitor/entities"
	"agromonitor/pkg/middleware"
	"agromonitor/pkg/catalog/repository"
)

// CatalogCtrl is the minimal entry surface for the entities alerts attach to.
type CatalogCtrl struct{ r repository.CatalogRepository }

func NewCatalogCtrl(r repository.CatalogRepository) *CatalogCtrl { return &CatalogCtrl{r: r} }

func (h *CatalogCtrl) CreateFirm(c echo.Context) error {
	var in entities.Firm
	if err := c.Bind(&in); err != nil || in.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	if err := h.r.CreateFirm(c.Request().Context(), &in); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, in)
}

func (h *CatalogCtrl) CreatePremise(c echo.Context) error {
	firmID, err := uintParam(c, "firm_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid firm_id"})
	}
	var in entities.Premise
	if err := c.Bind(&in); err != nil || in.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	in.FirmID = firmID
	if err := h.r.CreatePremise(c.Request().Context(), &in); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, in)
}

func (h *CatalogCtrl) CreateLot(c echo.Context) error {
	premiseID, err := uintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid premise id"})
	}
	var in entities.Lot
	if err := c.Bind(&in); err != nil || in.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	ctx := c.Request().Context()
	p, err := h.r.FindPremise(ctx, premiseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	// the lot inherits the premise's firm
	if firm, ok := c.Get(middleware.FirmKey).(uint); ok && firm != p.FirmID {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "premise not found"})
	}
	in.PremiseID, in.FirmID = p.PremiseID, p.FirmID
	if err := h.r.CreateLot(ctx, &in); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, in)
}

func (h *CatalogCtrl) CreateSeedVariety(c echo.Context) error {
	firmID, err := uintParam(c, "firm_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid firm_id"})
	}
	var in entities.SeedVariety
	if err := c.Bind(&in); err != nil || in.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	in.FirmID = firmID
	if err := h.r.CreateSeedVariety(c.Request().Context(), &in); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, in)
}

// ListFirmEntities returns the premises, lots and seed varieties of a firm.
func (h *CatalogCtrl) ListFirmEntities(c echo.Context) error {
	firmID, err := uintParam(c, "firm_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid firm_id"})
	}
	ctx := c.Request().Context()
	premises, err := h.r.ListPremises(ctx, firmID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	lots, err := h.r.ListLots(ctx, firmID, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	varieties, err := h.r.ListSeedVarieties(ctx, firmID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"premises":       premises,
		"lots":           lots,
		"seed_varieties": varieties,
	})
}

func uintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(v), err
}
