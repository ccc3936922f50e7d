package rules

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"agromonitor/pkg/numeric"
)

type SeedThresholds struct {
	GerminationMin float64 // low germination below this
	InviableBelow  float64 // seed inviable below this
	PurityMin      float64
	MoistureMax    float64
	TetrazoliumMin float64
	DiscrepancyMax float64 // |germination - tetrazolium| above this
	MinBreaches    int     // breached parameters that make a lot deteriorated
}

type SoilThresholds struct {
	PhosphorusRatio  float64 // deficit when result/objective is below the ratio
	PotassiumRatio   float64
	NitrogenRatio    float64
	SulfurRatio      float64
	PHMin            float64
	PHMax            float64
	OrganicMatterMin float64
	PendingDays      int // days an unapplied deficit may wait
}

type RainfallThresholds struct {
	DeficitWindowDays int
	DeficitMinMM      float64
	ExcessWindowDays  int
	ExcessMaxMM       float64
	IntenseEventMM    float64
}

type PastureThresholds struct {
	MinHeightCM float64
	MaxHeightCM float64
}

// Thresholds parameterises every catalog. Disabled holds "<domain>.<rule_id>"
// keys of rules built with Enabled=false.
type Thresholds struct {
	Seed     SeedThresholds
	Soil     SoilThresholds
	Rainfall RainfallThresholds
	Pasture  PastureThresholds
	Disabled map[string]bool
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Seed: SeedThresholds{
			GerminationMin: 85,
			InviableBelow:  70,
			PurityMin:      98,
			MoistureMax:    13,
			TetrazoliumMin: 85,
			DiscrepancyMax: 10,
			MinBreaches:    2,
		},
		Soil: SoilThresholds{
			PhosphorusRatio:  0.8,
			PotassiumRatio:   0.8,
			NitrogenRatio:    0.7,
			SulfurRatio:      0.7,
			PHMin:            5.5,
			PHMax:            7.5,
			OrganicMatterMin: 2.5,
			PendingDays:      30,
		},
		Rainfall: RainfallThresholds{
			DeficitWindowDays: 30,
			DeficitMinMM:      25,
			ExcessWindowDays:  7,
			ExcessMaxMM:       150,
			IntenseEventMM:    60,
		},
		Pasture: PastureThresholds{
			MinHeightCM: 5,
			MaxHeightCM: 25,
		},
		Disabled: map[string]bool{},
	}
}

func (t Thresholds) enabled(domain, id string) bool {
	return !t.Disabled[domain+"."+id]
}

// Set applies one override. Keys look like "seed.germination_min"; the key
// "disable" takes a "<domain>.<rule_id>" value.
func (t *Thresholds) Set(key, value string) error {
	key = normKey(key)
	value = strings.TrimSpace(value)
	if key == "disable" {
		if t.Disabled == nil {
			t.Disabled = map[string]bool{}
		}
		t.Disabled[strings.ToLower(value)] = true
		return nil
	}
	ints := map[string]*int{
		"seed.min_breaches":            &t.Seed.MinBreaches,
		"soil.pending_days":            &t.Soil.PendingDays,
		"rainfall.deficit_window_days": &t.Rainfall.DeficitWindowDays,
		"rainfall.excess_window_days":  &t.Rainfall.ExcessWindowDays,
	}
	floats := map[string]*float64{
		"seed.germination_min":      &t.Seed.GerminationMin,
		"seed.inviable_below":       &t.Seed.InviableBelow,
		"seed.purity_min":           &t.Seed.PurityMin,
		"seed.moisture_max":         &t.Seed.MoistureMax,
		"seed.tetrazolium_min":      &t.Seed.TetrazoliumMin,
		"seed.discrepancy_max":      &t.Seed.DiscrepancyMax,
		"soil.phosphorus_ratio":     &t.Soil.PhosphorusRatio,
		"soil.potassium_ratio":      &t.Soil.PotassiumRatio,
		"soil.nitrogen_ratio":       &t.Soil.NitrogenRatio,
		"soil.sulfur_ratio":         &t.Soil.SulfurRatio,
		"soil.ph_min":               &t.Soil.PHMin,
		"soil.ph_max":               &t.Soil.PHMax,
		"soil.organic_matter_min":   &t.Soil.OrganicMatterMin,
		"rainfall.deficit_min_mm":   &t.Rainfall.DeficitMinMM,
		"rainfall.excess_max_mm":    &t.Rainfall.ExcessMaxMM,
		"rainfall.intense_event_mm": &t.Rainfall.IntenseEventMM,
		"pasture.min_height_cm":     &t.Pasture.MinHeightCM,
		"pasture.max_height_cm":     &t.Pasture.MaxHeightCM,
	}
	v, ok := numeric.Parse(value)
	if p, found := floats[key]; found {
		if !ok {
			return fmt.Errorf("threshold %s: invalid number %q", key, value)
		}
		*p = v
		return nil
	}
	if p, found := ints[key]; found {
		if !ok || v != float64(int(v)) {
			return fmt.Errorf("threshold %s: invalid integer %q", key, value)
		}
		*p = int(v)
		return nil
	}
	return fmt.Errorf("unknown threshold key %q", key)
}

func normKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, " ", "_")
}

// LoadThresholds starts from the defaults and applies the key/value rows of a
// .csv or .xlsx file. An empty path returns the defaults.
func LoadThresholds(path string) (Thresholds, error) {
	t := DefaultThresholds()
	if path == "" {
		return t, nil
	}
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		return t, fmt.Errorf("thresholds file %s: unsupported extension", path)
	}
	if err != nil {
		return t, err
	}
	var errs []error
	for i, row := range rows {
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		// header row
		if i == 0 && normKey(row[0]) == "key" {
			continue
		}
		if err := t.Set(row[0], row[1]); err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i+1, err))
		}
	}
	return t, errors.Join(errs...)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	return x.GetRows(sheets[0])
}
