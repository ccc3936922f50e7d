package service

import (
	"context"
	"time"

	"agromonitor/entities"
	"agromonitor/pkg/quality"
)

// Scope selects a firm, optionally narrowed to a premise or a single lot.
type Scope struct {
	FirmID    uint
	PremiseID *uint
	LotID     *uint
}

type LotStatus struct {
	LotID      uint                     `json:"lot_id"`
	PremiseID  uint                     `json:"premise_id"`
	Name       string                   `json:"name"`
	Soil       *entities.SoilAnalysis   `json:"soil,omitempty"`
	Pasture    *entities.PastureReading `json:"pasture,omitempty"`
	AlertCount int                      `json:"alert_count"`
}

type SeedStatus struct {
	SeedVarietyID uint                   `json:"seed_variety_id"`
	Name          string                 `json:"name"`
	Analysis      *entities.SeedAnalysis `json:"analysis"`
	Quality       quality.Score          `json:"quality"`
	AlertCount    int                    `json:"alert_count"`
}

type PremiseStatus struct {
	PremiseID  uint                     `json:"premise_id"`
	Name       string                   `json:"name"`
	Rainfall   *entities.RainfallRecord `json:"rainfall"`
	AlertCount int                      `json:"alert_count"`
}

// Summary is a read-only snapshot for dashboards. Entities without any
// measurement are left out.
type Summary struct {
	FirmID        uint             `json:"firm_id"`
	PremiseID     *uint            `json:"premise_id,omitempty"`
	LotID         *uint            `json:"lot_id,omitempty"`
	ActiveAlerts  []entities.Alert `json:"active_alerts"`
	Counts        map[string]int   `json:"counts_by_priority"`
	Lots          []LotStatus      `json:"lots"`
	SeedVarieties []SeedStatus     `json:"seed_varieties"`
	Premises      []PremiseStatus  `json:"premises"`
	GeneratedAt   time.Time        `json:"generated_at"`
}

type SummaryService interface {
	BuildSummary(ctx context.Context, sc Scope) (*Summary, error)
}
