package repository

import (
	"context"
	"time"

	"agromonitor/entities"
)

// MeasureRepository reads and writes measurement records. Latest* methods
// return (nil, nil) when the entity has no measurement.
type MeasureRepository interface {
	CreateSoil(ctx context.Context, m *entities.SoilAnalysis) error
	CreateSeed(ctx context.Context, m *entities.SeedAnalysis) error
	CreateRainfall(ctx context.Context, m *entities.RainfallRecord) error
	CreatePasture(ctx context.Context, m *entities.PastureReading) error
	SaveSoilObjective(ctx context.Context, o *entities.SoilObjective) error

	LatestSoil(ctx context.Context, lotID, firmID uint) (*entities.SoilAnalysis, error)
	LatestSeed(ctx context.Context, seedVarietyID, firmID uint) (*entities.SeedAnalysis, error)
	LatestPasture(ctx context.Context, lotID, firmID uint) (*entities.PastureReading, error)
	LatestRainfall(ctx context.Context, premiseID, firmID uint) (*entities.RainfallRecord, error)
	SoilObjective(ctx context.Context, lotID uint) (*entities.SoilObjective, error)

	RainfallSince(ctx context.Context, premiseID uint, since time.Time) ([]entities.RainfallRecord, error)
	FertilizationAppliedSince(ctx context.Context, lotID uint, since time.Time) (bool, error)

	RecentSoil(ctx context.Context, lotID uint, limit int) ([]entities.SoilAnalysis, error)
	RecentSeed(ctx context.Context, seedVarietyID uint, limit int) ([]entities.SeedAnalysis, error)
	RecentPasture(ctx context.Context, lotID uint, days int) ([]entities.PastureReading, error)
}
