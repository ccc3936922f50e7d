package serviceImp

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"agromonitor/entities"
	"agromonitor/pkg/rules"
	"agromonitor/pkg/verify/service"
)

func (e *engine) VerifyLot(ctx context.Context, id, firmID uint) (*service.Outcome, error) {
	lot, err := e.lot(ctx, id, firmID)
	if err != nil {
		return nil, err
	}

	var soil, pasture *service.Outcome
	var g errgroup.Group
	g.Go(func() (err error) {
		soil, err = e.verifySoil(ctx, lot)
		return err
	})
	g.Go(func() (err error) {
		pasture, err = e.verifyPasture(ctx, lot)
		return err
	})
	err = g.Wait()

	out := &service.Outcome{EntityType: entities.EntityLot, EntityID: lot.LotID}
	if soil.Measurement != nil || pasture.Measurement != nil {
		out.Measurement = map[string]any{"soil": soil.Measurement, "pasture": pasture.Measurement}
	}
	out.Merge(soil)
	out.Merge(pasture)
	return out, err
}

func lotScope(l *entities.Lot, measurementID uint, at time.Time) scope {
	premiseID := l.PremiseID
	return scope{
		firmID:        l.FirmID,
		premiseID:     &premiseID,
		entityType:    entities.EntityLot,
		entityID:      l.LotID,
		measurementID: measurementID,
		measuredAt:    at,
	}
}

func (e *engine) soilValues(ctx context.Context, lot *entities.Lot) (*entities.SoilAnalysis, rules.SoilValues, error) {
	var v rules.SoilValues
	m, err := e.measures.LatestSoil(ctx, lot.LotID, lot.FirmID)
	if err != nil {
		return nil, v, fmt.Errorf("latest soil analysis: %w", err)
	}
	if m == nil {
		return nil, v, nil
	}
	obj, err := e.measures.SoilObjective(ctx, lot.LotID)
	if err != nil {
		return nil, v, fmt.Errorf("soil objective: %w", err)
	}
	applied, err := e.measures.FertilizationAppliedSince(ctx, lot.LotID, m.Date)
	if err != nil {
		return nil, v, fmt.Errorf("fertilizations: %w", err)
	}

	v = rules.SoilValues{
		PH:                   m.PH,
		OrganicMatter:        m.OrganicMatter,
		Phosphorus:           m.Phosphorus,
		Potassium:            m.Potassium,
		Nitrogen:             m.Nitrogen,
		Sulfur:               m.Sulfur,
		DaysSinceAnalysis:    int(e.now().Sub(m.Date).Hours() / 24),
		FertilizationApplied: applied,
	}
	if obj != nil {
		v.Objective = rules.NutrientTargets{
			Phosphorus: obj.Phosphorus,
			Potassium:  obj.Potassium,
			Nitrogen:   obj.Nitrogen,
			Sulfur:     obj.Sulfur,
		}
	}
	return m, v, nil
}

// verifySoil evaluates every soil rule concurrently; soil has no suppression.
func (e *engine) verifySoil(ctx context.Context, lot *entities.Lot) (*service.Outcome, error) {
	out := &service.Outcome{EntityType: entities.EntityLot, EntityID: lot.LotID}
	m, v, err := e.soilValues(ctx, lot)
	if err != nil || m == nil {
		return out, err
	}
	out.Measurement = m
	out.Created, err = evaluate(ctx, e, e.reg.Soil, e.reg.Soil.IDs(), v, lotScope(lot, m.SoilAnalysisID, m.Date))
	return out, err
}
