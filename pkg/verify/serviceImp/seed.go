package serviceImp

import (
	"context"
	"fmt"

	"agromonitor/entities"
	"agromonitor/pkg/quality"
	"agromonitor/pkg/rules"
	"agromonitor/pkg/verify/service"
)

// seedState is the position in the seed suppression chain. The gate checks
// run one after the other; a gate that fires ends the pass.
type seedState int

const (
	checkInviable seedState = iota
	checkDeteriorated
	checkIndividual
)

func (e *engine) VerifySeedVariety(ctx context.Context, id, firmID uint) (*service.Outcome, error) {
	v, err := e.seedVariety(ctx, id, firmID)
	if err != nil {
		return nil, err
	}
	return e.verifySeed(ctx, v)
}

func (e *engine) seedValues(ctx context.Context, v *entities.SeedVariety) (*entities.SeedAnalysis, rules.SeedValues, error) {
	m, err := e.measures.LatestSeed(ctx, v.SeedVarietyID, v.FirmID)
	if err != nil {
		return nil, rules.SeedValues{}, fmt.Errorf("latest seed analysis: %w", err)
	}
	if m == nil {
		return nil, rules.SeedValues{}, nil
	}
	return m, rules.SeedValues{
		Germination: m.Germination,
		Purity:      m.Purity,
		Moisture:    m.Moisture,
		Tetrazolium: m.Tetrazolium,
	}, nil
}

func seedScope(v *entities.SeedVariety, m *entities.SeedAnalysis) scope {
	return scope{
		firmID:        v.FirmID,
		entityType:    entities.EntitySeedVariety,
		entityID:      v.SeedVarietyID,
		measurementID: m.SeedAnalysisID,
		measuredAt:    m.Date,
	}
}

func (e *engine) verifySeed(ctx context.Context, v *entities.SeedVariety) (*service.Outcome, error) {
	out := &service.Outcome{EntityType: entities.EntitySeedVariety, EntityID: v.SeedVarietyID}
	m, vals, err := e.seedValues(ctx, v)
	if err != nil || m == nil {
		return out, err
	}
	q := quality.Compute(vals.Germination, vals.Purity, vals.Moisture, vals.Tetrazolium)
	out.Measurement, out.Quality = m, &q

	out.Created, err = e.seedChain(ctx, vals, seedScope(v, m))
	return out, err
}

// seedChain runs inviable, then deteriorated, then the individual parameter
// rules concurrently. An error in a gate aborts the rest of the chain.
func (e *engine) seedChain(ctx context.Context, v rules.SeedValues, sc scope) ([]entities.Alert, error) {
	t := e.reg.Seed
	var out []entities.Alert
	state := checkInviable
	for {
		switch state {
		case checkInviable, checkDeteriorated:
			id, next := rules.SeedInviable, checkDeteriorated
			if state == checkDeteriorated {
				id, next = rules.SeedDeteriorated, checkIndividual
			}
			fired, a, err := fire(ctx, e, t, id, v, sc)
			if a != nil {
				out = append(out, *a)
			}
			if err != nil {
				return out, err
			}
			if fired {
				return out, nil
			}
			state = next
		case checkIndividual:
			created, err := evaluate(ctx, e, t, rules.SeedIndividualRules, v, sc)
			return append(out, created...), err
		}
	}
}
