package repositoryImp

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agromonitor/entities"
	"agromonitor/pkg/measure/repository"
)

type measureRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.MeasureRepository { return &measureRepo{db} }

func (r *measureRepo) CreateSoil(ctx context.Context, m *entities.SoilAnalysis) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *measureRepo) CreateSeed(ctx context.Context, m *entities.SeedAnalysis) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *measureRepo) CreateRainfall(ctx context.Context, m *entities.RainfallRecord) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *measureRepo) CreatePasture(ctx context.Context, m *entities.PastureReading) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *measureRepo) SaveSoilObjective(ctx context.Context, o *entities.SoilObjective) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(o).Error
}

// latest loads the newest row matching q into dest and reports whether one existed.
func latest(q *gorm.DB, dest any, idCol string) (bool, error) {
	err := q.Order("date DESC").Order(idCol + " DESC").First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *measureRepo) LatestSoil(ctx context.Context, lotID, firmID uint) (*entities.SoilAnalysis, error) {
	var m entities.SoilAnalysis
	ok, err := latest(r.db.WithContext(ctx).Where("lot_id = ? AND firm_id = ?", lotID, firmID), &m, "soil_analysis_id")
	if !ok {
		return nil, err
	}
	return &m, nil
}

func (r *measureRepo) LatestSeed(ctx context.Context, seedVarietyID, firmID uint) (*entities.SeedAnalysis, error) {
	var m entities.SeedAnalysis
	ok, err := latest(r.db.WithContext(ctx).Where("seed_variety_id = ? AND firm_id = ?", seedVarietyID, firmID), &m, "seed_analysis_id")
	if !ok {
		return nil, err
	}
	return &m, nil
}

func (r *measureRepo) LatestPasture(ctx context.Context, lotID, firmID uint) (*entities.PastureReading, error) {
	var m entities.PastureReading
	ok, err := latest(r.db.WithContext(ctx).Where("lot_id = ? AND firm_id = ?", lotID, firmID), &m, "pasture_reading_id")
	if !ok {
		return nil, err
	}
	return &m, nil
}

func (r *measureRepo) LatestRainfall(ctx context.Context, premiseID, firmID uint) (*entities.RainfallRecord, error) {
	var m entities.RainfallRecord
	ok, err := latest(r.db.WithContext(ctx).Where("premise_id = ? AND firm_id = ?", premiseID, firmID), &m, "rainfall_id")
	if !ok {
		return nil, err
	}
	return &m, nil
}

func (r *measureRepo) SoilObjective(ctx context.Context, lotID uint) (*entities.SoilObjective, error) {
	var o entities.SoilObjective
	err := r.db.WithContext(ctx).Where("lot_id = ?", lotID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *measureRepo) RainfallSince(ctx context.Context, premiseID uint, since time.Time) ([]entities.RainfallRecord, error) {
	var out []entities.RainfallRecord
	err := r.db.WithContext(ctx).
		Where("premise_id = ? AND date >= ?", premiseID, since).
		Order("date ASC").
		Find(&out).Error
	return out, err
}

func (r *measureRepo) FertilizationAppliedSince(ctx context.Context, lotID uint, since time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Fertilization{}).
		Where("lot_id = ? AND status = ? AND applied_on >= ?", lotID, entities.FertilizationApplied, since.Format("2006-01-02")).
		Count(&n).Error
	return n > 0, err
}

func (r *measureRepo) RecentSoil(ctx context.Context, lotID uint, limit int) ([]entities.SoilAnalysis, error) {
	var out []entities.SoilAnalysis
	err := r.db.WithContext(ctx).Where("lot_id = ?", lotID).Order("date DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *measureRepo) RecentSeed(ctx context.Context, seedVarietyID uint, limit int) ([]entities.SeedAnalysis, error) {
	var out []entities.SeedAnalysis
	err := r.db.WithContext(ctx).Where("seed_variety_id = ?", seedVarietyID).Order("date DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *measureRepo) RecentPasture(ctx context.Context, lotID uint, days int) ([]entities.PastureReading, error) {
	var out []entities.PastureReading
	cut := time.Now().UTC().AddDate(0, 0, -days)
	err := r.db.WithContext(ctx).Where("lot_id = ? AND date >= ?", lotID, cut).Order("date ASC").Find(&out).Error
	return out, err
}
