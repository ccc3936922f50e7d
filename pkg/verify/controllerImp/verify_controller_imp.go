package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agromonitor/entities"
	catalog "agromonitor/pkg/catalog/repository"
	"agromonitor/pkg/rules"
	"agromonitor/pkg/verify/service"
)

// entityKind is the entity each domain's rules are scoped to.
var entityKind = map[string]string{
	rules.DomainSeed:     entities.EntitySeedVariety,
	rules.DomainSoil:     entities.EntityLot,
	rules.DomainPasture:  entities.EntityLot,
	rules.DomainRainfall: entities.EntityPremise,
}

type VerifyCtrl struct {
	svc service.Verifier
	reg *rules.Registry
}

func NewVerifyCtrl(svc service.Verifier, reg *rules.Registry) *VerifyCtrl {
	return &VerifyCtrl{svc: svc, reg: reg}
}

func (h *VerifyCtrl) VerifyAll(c echo.Context) error {
	firmID, err := uintParam(c, "firm_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid firm_id"})
	}
	var premiseID *uint
	if v := c.QueryParam("premise_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid premise_id"})
		}
		pid := uint(id)
		premiseID = &pid
	}
	rep, err := h.svc.VerifyAll(c.Request().Context(), firmID, premiseID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	// an incomplete run still reports what it created; the client may retry
	return c.JSON(http.StatusOK, rep)
}

func (h *VerifyCtrl) VerifyLot(c echo.Context) error {
	return h.verifyEntity(c, entities.EntityLot)
}

func (h *VerifyCtrl) VerifySeedVariety(c echo.Context) error {
	return h.verifyEntity(c, entities.EntitySeedVariety)
}

func (h *VerifyCtrl) VerifyPremise(c echo.Context) error {
	return h.verifyEntity(c, entities.EntityPremise)
}

// verifyEntity runs every rule for the entity, or one rule when ?domain=&rule= is given.
func (h *VerifyCtrl) verifyEntity(c echo.Context, kind string) error {
	firmID, err := uintParam(c, "firm_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid firm_id"})
	}
	id, err := uintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	ctx := c.Request().Context()

	var out *service.Outcome
	if rule := c.QueryParam("rule"); rule != "" {
		domain := c.QueryParam("domain")
		if entityKind[domain] != kind {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "domain does not apply to " + kind})
		}
		out, err = h.svc.VerifyRule(ctx, domain, rule, id, firmID)
	} else {
		out, err = h.svc.VerifyEntity(ctx, kind, id, firmID)
	}
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownRule), errors.Is(err, service.ErrUnknownKind):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case err != nil:
		resp := map[string]any{"error": err.Error(), "incomplete": true}
		if out != nil {
			resp["alerts_created"] = out.Created
		}
		return c.JSON(http.StatusBadGateway, resp)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VerifyCtrl) Rules(c echo.Context) error {
	return c.JSON(http.StatusOK, h.reg.Catalog())
}

func uintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(v), err
}
