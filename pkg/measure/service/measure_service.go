package service

import (
	"context"
	"errors"

	"agromonitor/entities"
)

var ErrInvalid = errors.New("invalid measurement")

// MeasureService records measurements after checking the scoped entity and
// value ranges. The firm is always taken from the entity, never from input;
// entities outside the firm carried by ctx read as catalog.ErrNotFound.
type MeasureService interface {
	RecordSoil(ctx context.Context, m *entities.SoilAnalysis) error
	RecordSeed(ctx context.Context, m *entities.SeedAnalysis) error
	RecordRainfall(ctx context.Context, m *entities.RainfallRecord) error
	RecordPasture(ctx context.Context, m *entities.PastureReading) error
	SetSoilObjective(ctx context.Context, o *entities.SoilObjective) error

	// SoilHistory returns the recent analyses of a lot and its objective, if set.
	SoilHistory(ctx context.Context, lotID uint) ([]entities.SoilAnalysis, *entities.SoilObjective, error)
	SeedHistory(ctx context.Context, seedVarietyID uint) ([]entities.SeedAnalysis, error)
	// RainfallHistory returns a premise's records of the last days (default 30).
	RainfallHistory(ctx context.Context, premiseID uint, days int) ([]entities.RainfallRecord, error)
	PastureHistory(ctx context.Context, lotID uint, days int) ([]entities.PastureReading, error)
}
