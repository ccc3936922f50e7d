package serviceImp

import (
	"context"
	"fmt"
	"time"

	"agromonitor/entities"
	"agromonitor/pkg/rules"
	"agromonitor/pkg/verify/service"
)

// RainfallSnapshot is the measurement reported for a premise: the latest
// record and the window accumulations the rules saw.
type RainfallSnapshot struct {
	Latest          *entities.RainfallRecord `json:"latest"`
	DeficitWindowMM *float64                 `json:"deficit_window_mm"`
	ExcessWindowMM  *float64                 `json:"excess_window_mm"`
	Records         int                      `json:"records"`
}

func (e *engine) VerifyPremise(ctx context.Context, id, firmID uint) (*service.Outcome, error) {
	p, err := e.premise(ctx, id, firmID)
	if err != nil {
		return nil, err
	}
	return e.verifyRainfall(ctx, p)
}

func premiseScope(p *entities.Premise, latest *entities.RainfallRecord) scope {
	premiseID := p.PremiseID
	sc := scope{
		firmID:     p.FirmID,
		premiseID:  &premiseID,
		entityType: entities.EntityPremise,
		entityID:   p.PremiseID,
	}
	if latest != nil {
		sc.measurementID, sc.measuredAt = latest.RainfallID, latest.Date
	}
	return sc
}

// rainfallValues sums the records inside each window. A window without any
// record stays nil: no data is not the same as zero rain.
func (e *engine) rainfallValues(ctx context.Context, p *entities.Premise) (*RainfallSnapshot, rules.RainfallValues, error) {
	var v rules.RainfallValues
	th := e.reg.Thresholds().Rainfall
	now := e.now().UTC()
	deficitFrom := now.AddDate(0, 0, -th.DeficitWindowDays)
	excessFrom := now.AddDate(0, 0, -th.ExcessWindowDays)
	since := deficitFrom
	if excessFrom.Before(since) {
		since = excessFrom
	}

	recs, err := e.measures.RainfallSince(ctx, p.PremiseID, since)
	if err != nil {
		return nil, v, fmt.Errorf("rainfall records: %w", err)
	}

	var latest *entities.RainfallRecord
	for i := range recs {
		r := &recs[i]
		if r.MM == nil || r.Date.After(now) {
			continue
		}
		if latest == nil || !r.Date.Before(latest.Date) {
			latest = r
		}
		if inWindow(r.Date, deficitFrom) {
			v.DeficitWindow = add(v.DeficitWindow, *r.MM)
			v.Records++
		}
		if inWindow(r.Date, excessFrom) {
			v.ExcessWindow = add(v.ExcessWindow, *r.MM)
		}
	}
	if latest == nil {
		return nil, v, nil
	}
	v.LatestMM = latest.MM
	return &RainfallSnapshot{
		Latest:          latest,
		DeficitWindowMM: v.DeficitWindow,
		ExcessWindowMM:  v.ExcessWindow,
		Records:         v.Records,
	}, v, nil
}

func inWindow(d, from time.Time) bool { return !d.Before(from) }

func add(acc *float64, mm float64) *float64 {
	if acc == nil {
		return &mm
	}
	s := *acc + mm
	return &s
}

// verifyRainfall evaluates every rainfall rule concurrently.
func (e *engine) verifyRainfall(ctx context.Context, p *entities.Premise) (*service.Outcome, error) {
	out := &service.Outcome{EntityType: entities.EntityPremise, EntityID: p.PremiseID}
	snap, v, err := e.rainfallValues(ctx, p)
	if err != nil || snap == nil {
		return out, err
	}
	out.Measurement = snap
	out.Created, err = evaluate(ctx, e, e.reg.Rainfall, e.reg.Rainfall.IDs(), v, premiseScope(p, snap.Latest))
	return out, err
}
