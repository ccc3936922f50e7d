package serviceImp

import (
	"context"
	"fmt"
	"time"

	"agromonitor/entities"
	alertrepo "agromonitor/pkg/alert/repository"
	catalog "agromonitor/pkg/catalog/repository"
	catalogsvc "agromonitor/pkg/catalog/service"
	measure "agromonitor/pkg/measure/repository"
	"agromonitor/pkg/quality"
	"agromonitor/pkg/rules"
	"agromonitor/pkg/summary/service"
)

type summarySvc struct {
	alerts   alertrepo.AlertRepository
	catalog  catalogsvc.CatalogService
	measures measure.MeasureRepository
	now      func() time.Time
}

func New(a alertrepo.AlertRepository, c catalogsvc.CatalogService, m measure.MeasureRepository) service.SummaryService {
	return &summarySvc{alerts: a, catalog: c, measures: m, now: time.Now}
}

func (s *summarySvc) BuildSummary(ctx context.Context, sc service.Scope) (*service.Summary, error) {
	out := &service.Summary{
		FirmID:    sc.FirmID,
		PremiseID: sc.PremiseID,
		LotID:     sc.LotID,
		Counts: map[string]int{
			string(rules.High):   0,
			string(rules.Medium): 0,
			string(rules.Low):    0,
		},
		GeneratedAt: s.now().UTC(),
	}

	lots, err := s.lots(ctx, sc)
	if err != nil {
		return nil, err
	}

	f := alertrepo.Filter{FirmID: sc.FirmID, PremiseID: sc.PremiseID, Status: entities.AlertPending}
	if sc.LotID != nil {
		f.EntityType, f.EntityID = entities.EntityLot, sc.LotID
	}
	active, err := s.alerts.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("active alerts: %w", err)
	}
	out.ActiveAlerts = active
	perEntity := map[string]int{}
	for _, a := range active {
		out.Counts[a.Priority]++
		perEntity[key(a.EntityType, a.EntityID)]++
	}

	for _, l := range lots {
		soil, err := s.measures.LatestSoil(ctx, l.LotID, l.FirmID)
		if err != nil {
			return nil, fmt.Errorf("lot %d soil: %w", l.LotID, err)
		}
		pasture, err := s.measures.LatestPasture(ctx, l.LotID, l.FirmID)
		if err != nil {
			return nil, fmt.Errorf("lot %d pasture: %w", l.LotID, err)
		}
		if soil == nil && pasture == nil {
			continue
		}
		out.Lots = append(out.Lots, service.LotStatus{
			LotID: l.LotID, PremiseID: l.PremiseID, Name: l.Name,
			Soil: soil, Pasture: pasture,
			AlertCount: perEntity[key(entities.EntityLot, l.LotID)],
		})
	}
	if sc.LotID != nil {
		return out, nil
	}

	// seed varieties belong to the firm, not to a premise
	if sc.PremiseID == nil {
		if err := s.seedStatus(ctx, sc.FirmID, perEntity, out); err != nil {
			return nil, err
		}
	}

	premises, err := s.catalog.ListPremises(ctx, sc.FirmID)
	if err != nil {
		return nil, fmt.Errorf("premises: %w", err)
	}
	for _, p := range premises {
		if sc.PremiseID != nil && p.PremiseID != *sc.PremiseID {
			continue
		}
		r, err := s.measures.LatestRainfall(ctx, p.PremiseID, p.FirmID)
		if err != nil {
			return nil, fmt.Errorf("premise %d rainfall: %w", p.PremiseID, err)
		}
		if r == nil {
			continue
		}
		out.Premises = append(out.Premises, service.PremiseStatus{
			PremiseID: p.PremiseID, Name: p.Name, Rainfall: r,
			AlertCount: perEntity[key(entities.EntityPremise, p.PremiseID)],
		})
	}
	return out, nil
}

func (s *summarySvc) seedStatus(ctx context.Context, firmID uint, perEntity map[string]int, out *service.Summary) error {
	varieties, err := s.catalog.ListSeedVarieties(ctx, firmID)
	if err != nil {
		return fmt.Errorf("seed varieties: %w", err)
	}
	for _, v := range varieties {
		m, err := s.measures.LatestSeed(ctx, v.SeedVarietyID, v.FirmID)
		if err != nil {
			return fmt.Errorf("seed variety %d: %w", v.SeedVarietyID, err)
		}
		if m == nil {
			continue
		}
		name, err := s.catalog.SeedVarietyName(ctx, v.SeedVarietyID)
		if err != nil {
			return err
		}
		out.SeedVarieties = append(out.SeedVarieties, service.SeedStatus{
			SeedVarietyID: v.SeedVarietyID,
			Name:          name,
			Analysis:      m,
			Quality:       quality.Compute(m.Germination, m.Purity, m.Moisture, m.Tetrazolium),
			AlertCount:    perEntity[key(entities.EntitySeedVariety, v.SeedVarietyID)],
		})
	}
	return nil
}

func (s *summarySvc) lots(ctx context.Context, sc service.Scope) ([]entities.Lot, error) {
	if sc.LotID == nil {
		list, err := s.catalog.ListLots(ctx, sc.FirmID, sc.PremiseID)
		if err != nil {
			return nil, fmt.Errorf("lots: %w", err)
		}
		return list, nil
	}
	l, err := s.catalog.FindLot(ctx, *sc.LotID)
	if err != nil {
		return nil, err
	}
	if l.FirmID != sc.FirmID || (sc.PremiseID != nil && l.PremiseID != *sc.PremiseID) {
		return nil, fmt.Errorf("%w: lot %d", catalog.ErrNotFound, *sc.LotID)
	}
	return []entities.Lot{*l}, nil
}

func key(kind string, id uint) string { return fmt.Sprintf("%s:%d", kind, id) }
