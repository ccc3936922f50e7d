package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"agromonitor/entities"
	catalog "agromonitor/pkg/catalog/repository"
	"agromonitor/pkg/measure/service"
	"agromonitor/pkg/numeric"
)

type MeasureCtrl struct{ svc service.MeasureService }

func NewMeasureCtrl(svc service.MeasureService) *MeasureCtrl { return &MeasureCtrl{svc: svc} }

// Request bodies accept numbers or strings such as "7,5" or "92%".

type soilReq struct {
	Date          string      `json:"date"`
	PH            numeric.Opt `json:"ph"`
	OrganicMatter numeric.Opt `json:"organic_matter_pct"`
	Phosphorus    numeric.Opt `json:"phosphorus_ppm"`
	Potassium     numeric.Opt `json:"potassium_meq"`
	Nitrogen      numeric.Opt `json:"nitrogen_ppm"`
	Sulfur        numeric.Opt `json:"sulfur_ppm"`
	Lab           string      `json:"lab"`
	Notes         string      `json:"notes"`
}

type objectiveReq struct {
	Phosphorus numeric.Opt `json:"phosphorus_ppm"`
	Potassium  numeric.Opt `json:"potassium_meq"`
	Nitrogen   numeric.Opt `json:"nitrogen_ppm"`
	Sulfur     numeric.Opt `json:"sulfur_ppm"`
}

type seedReq struct {
	Date        string      `json:"date"`
	Germination numeric.Opt `json:"germination_pct"`
	Purity      numeric.Opt `json:"purity_pct"`
	Moisture    numeric.Opt `json:"moisture_pct"`
	Tetrazolium numeric.Opt `json:"tetrazolium_pct"`
	Lab         string      `json:"lab"`
	Notes       string      `json:"notes"`
}

type rainfallReq struct {
	Date    string      `json:"date"`
	MM      numeric.Opt `json:"mm"`
	Station string      `json:"station"`
}

type pastureReq struct {
	Date     string      `json:"date"`
	HeightCM numeric.Opt `json:"height_cm"`
	Method   string      `json:"method"`
	Note     string      `json:"note"`
}

func (h *MeasureCtrl) CreateSoil(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var in soilReq
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	d, err := parseDate(in.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date"})
	}
	m := entities.SoilAnalysis{
		LotID: id, Date: d,
		PH: in.PH.Float(), OrganicMatter: in.OrganicMatter.Float(),
		Phosphorus: in.Phosphorus.Float(), Potassium: in.Potassium.Float(),
		Nitrogen: in.Nitrogen.Float(), Sulfur: in.Sulfur.Float(),
		Lab: in.Lab, Notes: in.Notes,
	}
	if err := h.svc.RecordSoil(c.Request().Context(), &m); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *MeasureCtrl) ListSoil(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	list, obj, err := h.svc.SoilHistory(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"analyses": list, "objective": obj})
}

func (h *MeasureCtrl) SetSoilObjective(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var in objectiveReq
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	o := entities.SoilObjective{
		LotID:      id,
		Phosphorus: in.Phosphorus.Float(), Potassium: in.Potassium.Float(),
		Nitrogen: in.Nitrogen.Float(), Sulfur: in.Sulfur.Float(),
	}
	if err := h.svc.SetSoilObjective(c.Request().Context(), &o); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *MeasureCtrl) CreateSeed(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var in seedReq
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	d, err := parseDate(in.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date"})
	}
	m := entities.SeedAnalysis{
		SeedVarietyID: id, Date: d,
		Germination: in.Germination.Float(), Purity: in.Purity.Float(),
		Moisture: in.Moisture.Float(), Tetrazolium: in.Tetrazolium.Float(),
		Lab: in.Lab, Notes: in.Notes,
	}
	if err := h.svc.RecordSeed(c.Request().Context(), &m); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *MeasureCtrl) ListSeed(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	list, err := h.svc.SeedHistory(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *MeasureCtrl) CreateRainfall(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var in rainfallReq
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	d, err := parseDate(in.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date"})
	}
	m := entities.RainfallRecord{PremiseID: id, Date: d, MM: in.MM.Float(), Station: in.Station}
	if err := h.svc.RecordRainfall(c.Request().Context(), &m); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *MeasureCtrl) ListRainfall(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	days, _ := strconv.Atoi(c.QueryParam("days"))
	list, err := h.svc.RainfallHistory(c.Request().Context(), id, days)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *MeasureCtrl) CreatePasture(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var in pastureReq
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	d, err := parseDate(in.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date"})
	}
	m := entities.PastureReading{LotID: id, Date: d, HeightCM: in.HeightCM.Float(), Method: in.Method, Note: in.Note}
	if err := h.svc.RecordPasture(c.Request().Context(), &m); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *MeasureCtrl) ListPasture(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	days, _ := strconv.Atoi(c.QueryParam("days"))
	list, err := h.svc.PastureHistory(c.Request().Context(), id, days)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func idParam(c echo.Context) (uint, error) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(v), err
}

// parseDate accepts YYYY-MM-DD or RFC3339. Empty means now.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func writeErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
