package serviceImp

import (
	"context"
	"fmt"
	"time"

	"agromonitor/entities"
	catalog "agromonitor/pkg/catalog/repository"
	catalogsvc "agromonitor/pkg/catalog/service"
	repo "agromonitor/pkg/measure/repository"
	"agromonitor/pkg/measure/service"
)

const historyLimit = 20

type measureSvc struct {
	r   repo.MeasureRepository
	cat catalog.CatalogRepository
	now func() time.Time
}

func NewMeasureService(r repo.MeasureRepository, cat catalog.CatalogRepository) service.MeasureService {
	return &measureSvc{r: r, cat: cat, now: time.Now}
}

func (s *measureSvc) date(d time.Time) time.Time {
	if d.IsZero() {
		d = s.now()
	}
	return d.UTC()
}

// scoped lookups: an entity outside the caller's firm reads as not found

func (s *measureSvc) lot(ctx context.Context, id uint) (*entities.Lot, error) {
	l, err := s.cat.FindLot(ctx, id)
	if err != nil {
		return nil, err
	}
	return l, catalogsvc.CheckScope(ctx, l.FirmID, "lot", id)
}

func (s *measureSvc) premise(ctx context.Context, id uint) (*entities.Premise, error) {
	p, err := s.cat.FindPremise(ctx, id)
	if err != nil {
		return nil, err
	}
	return p, catalogsvc.CheckScope(ctx, p.FirmID, "premise", id)
}

func (s *measureSvc) seedVariety(ctx context.Context, id uint) (*entities.SeedVariety, error) {
	v, err := s.cat.FindSeedVariety(ctx, id)
	if err != nil {
		return nil, err
	}
	return v, catalogsvc.CheckScope(ctx, v.FirmID, "seed variety", id)
}

func (s *measureSvc) RecordSoil(ctx context.Context, m *entities.SoilAnalysis) error {
	lot, err := s.lot(ctx, m.LotID)
	if err != nil {
		return err
	}
	if err := inRange("ph", m.PH, 0, 14); err != nil {
		return err
	}
	if err := inRange("organic_matter_pct", m.OrganicMatter, 0, 100); err != nil {
		return err
	}
	for name, v := range map[string]*float64{"phosphorus_ppm": m.Phosphorus, "potassium_meq": m.Potassium, "nitrogen_ppm": m.Nitrogen, "sulfur_ppm": m.Sulfur} {
		if err := nonNegative(name, v); err != nil {
			return err
		}
	}
	m.FirmID = lot.FirmID
	m.Date = s.date(m.Date)
	return s.r.CreateSoil(ctx, m)
}

func (s *measureSvc) RecordSeed(ctx context.Context, m *entities.SeedAnalysis) error {
	v, err := s.seedVariety(ctx, m.SeedVarietyID)
	if err != nil {
		return err
	}
	for name, p := range map[string]*float64{"germination_pct": m.Germination, "purity_pct": m.Purity, "moisture_pct": m.Moisture, "tetrazolium_pct": m.Tetrazolium} {
		if err := inRange(name, p, 0, 100); err != nil {
			return err
		}
	}
	m.FirmID = v.FirmID
	m.Date = s.date(m.Date)
	return s.r.CreateSeed(ctx, m)
}

func (s *measureSvc) RecordRainfall(ctx context.Context, m *entities.RainfallRecord) error {
	p, err := s.premise(ctx, m.PremiseID)
	if err != nil {
		return err
	}
	if m.MM == nil {
		return fmt.Errorf("%w: mm is required", service.ErrInvalid)
	}
	if err := nonNegative("mm", m.MM); err != nil {
		return err
	}
	m.FirmID = p.FirmID
	m.Date = s.date(m.Date)
	return s.r.CreateRainfall(ctx, m)
}

func (s *measureSvc) RecordPasture(ctx context.Context, m *entities.PastureReading) error {
	lot, err := s.lot(ctx, m.LotID)
	if err != nil {
		return err
	}
	if err := nonNegative("height_cm", m.HeightCM); err != nil {
		return err
	}
	m.FirmID = lot.FirmID
	m.Date = s.date(m.Date)
	return s.r.CreatePasture(ctx, m)
}

func (s *measureSvc) SetSoilObjective(ctx context.Context, o *entities.SoilObjective) error {
	lot, err := s.lot(ctx, o.LotID)
	if err != nil {
		return err
	}
	for name, v := range map[string]*float64{"phosphorus_ppm": o.Phosphorus, "potassium_meq": o.Potassium, "nitrogen_ppm": o.Nitrogen, "sulfur_ppm": o.Sulfur} {
		if err := nonNegative(name, v); err != nil {
			return err
		}
	}
	o.FirmID = lot.FirmID
	return s.r.SaveSoilObjective(ctx, o)
}

func (s *measureSvc) SoilHistory(ctx context.Context, lotID uint) ([]entities.SoilAnalysis, *entities.SoilObjective, error) {
	if _, err := s.lot(ctx, lotID); err != nil {
		return nil, nil, err
	}
	list, err := s.r.RecentSoil(ctx, lotID, historyLimit)
	if err != nil {
		return nil, nil, err
	}
	obj, err := s.r.SoilObjective(ctx, lotID)
	return list, obj, err
}

func (s *measureSvc) SeedHistory(ctx context.Context, seedVarietyID uint) ([]entities.SeedAnalysis, error) {
	if _, err := s.seedVariety(ctx, seedVarietyID); err != nil {
		return nil, err
	}
	return s.r.RecentSeed(ctx, seedVarietyID, historyLimit)
}

func (s *measureSvc) RainfallHistory(ctx context.Context, premiseID uint, days int) ([]entities.RainfallRecord, error) {
	if _, err := s.premise(ctx, premiseID); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 30
	}
	return s.r.RainfallSince(ctx, premiseID, s.now().UTC().AddDate(0, 0, -days))
}

func (s *measureSvc) PastureHistory(ctx context.Context, lotID uint, days int) ([]entities.PastureReading, error) {
	if _, err := s.lot(ctx, lotID); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 60
	}
	return s.r.RecentPasture(ctx, lotID, days)
}

func inRange(name string, v *float64, lo, hi float64) error {
	if v != nil && (*v < lo || *v > hi) {
		return fmt.Errorf("%w: %s must be between %g and %g", service.ErrInvalid, name, lo, hi)
	}
	return nil
}

func nonNegative(name string, v *float64) error {
	if v != nil && *v < 0 {
		return fmt.Errorf("%w: %s must not be negative", service.ErrInvalid, name)
	}
	return nil
}
