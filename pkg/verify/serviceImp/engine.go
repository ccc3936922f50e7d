package serviceImp

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"agromonitor/entities"
	alertsvc "agromonitor/pkg/alert/service"
	catalog "agromonitor/pkg/catalog/repository"
	catalogsvc "agromonitor/pkg/catalog/service"
	"agromonitor/pkg/logger"
	measure "agromonitor/pkg/measure/repository"
	"agromonitor/pkg/metrics"
	"agromonitor/pkg/rules"
	"agromonitor/pkg/verify/service"
)

type engine struct {
	reg      *rules.Registry
	measures measure.MeasureRepository
	catalog  catalogsvc.CatalogService
	alerts   alertsvc.AlertService
	now      func() time.Time
}

func New(reg *rules.Registry, m measure.MeasureRepository, c catalogsvc.CatalogService, a alertsvc.AlertService) service.Verifier {
	return &engine{reg: reg, measures: m, catalog: c, alerts: a, now: time.Now}
}

// scope identifies the entity and measurement an alert is attached to.
type scope struct {
	firmID        uint
	premiseID     *uint
	entityType    string
	entityID      uint
	measurementID uint
	measuredAt    time.Time
}

func (e *engine) entityName(ctx context.Context, sc scope) (string, error) {
	switch sc.entityType {
	case entities.EntityLot:
		return e.catalog.LotName(ctx, sc.entityID)
	case entities.EntitySeedVariety:
		return e.catalog.SeedVarietyName(ctx, sc.entityID)
	case entities.EntityPremise:
		return e.catalog.PremiseName(ctx, sc.entityID)
	}
	return "", fmt.Errorf("%w: %s", service.ErrUnknownKind, sc.entityType)
}

// fire evaluates one rule and stores an alert when it triggers. fired is true
// also when an equivalent alert was already pending; created is then nil.
func fire[M any](ctx context.Context, e *engine, t rules.Table[M], id string, m M, sc scope) (fired bool, created *entities.Alert, err error) {
	r, ok := t.Get(id)
	if !ok || !r.Fires(m) {
		return false, nil, nil
	}
	name, err := e.entityName(ctx, sc)
	if err != nil {
		return true, nil, fmt.Errorf("%s: entity name: %w", id, err)
	}
	msg := r.Build(m, name)

	meta := map[string]any{}
	if r.Details != nil {
		maps.Copy(meta, r.Details(m))
	}
	meta["entity_name"] = name
	meta["recommendation"] = msg.Recommendation
	if sc.measurementID != 0 {
		meta["measurement_id"] = sc.measurementID
	}
	if !sc.measuredAt.IsZero() {
		meta["measured_at"] = sc.measuredAt.UTC().Format(time.RFC3339)
	}

	a := &entities.Alert{
		FirmID:         sc.firmID,
		PremiseID:      sc.premiseID,
		EntityType:     sc.entityType,
		EntityID:       sc.entityID,
		Domain:         t.Domain(),
		RuleID:         r.ID,
		Priority:       string(r.Priority),
		Title:          msg.Title,
		Description:    msg.Description,
		Recommendation: msg.Recommendation,
		Metadata:       meta,
	}
	out, isNew, err := e.alerts.CreateIfAbsent(ctx, a)
	if err != nil {
		return true, nil, fmt.Errorf("%s: %w", id, err)
	}
	if !isNew {
		return true, nil, nil
	}
	return true, out, nil
}

// evaluate runs independent rules concurrently and returns the alerts
// created, in rule order. Every check runs to completion; the first error is
// returned alongside whatever was created.
func evaluate[M any](ctx context.Context, e *engine, t rules.Table[M], ids []string, m M, sc scope) ([]entities.Alert, error) {
	created := make([]*entities.Alert, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			_, a, err := fire(ctx, e, t, id, m, sc)
			created[i] = a
			return err
		})
	}
	err := g.Wait()

	var out []entities.Alert
	for _, a := range created {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out, err
}

func (e *engine) VerifyEntity(ctx context.Context, kind string, id, firmID uint) (*service.Outcome, error) {
	switch kind {
	case entities.EntityLot:
		return e.VerifyLot(ctx, id, firmID)
	case entities.EntitySeedVariety:
		return e.VerifySeedVariety(ctx, id, firmID)
	case entities.EntityPremise:
		return e.VerifyPremise(ctx, id, firmID)
	}
	return nil, fmt.Errorf("%w: %q", service.ErrUnknownKind, kind)
}

func (e *engine) VerifyRule(ctx context.Context, domain, ruleID string, id, firmID uint) (*service.Outcome, error) {
	switch domain {
	case rules.DomainSeed:
		if _, ok := e.reg.Seed.Get(ruleID); !ok {
			break
		}
		v, err := e.seedVariety(ctx, id, firmID)
		if err != nil {
			return nil, err
		}
		m, vals, err := e.seedValues(ctx, v)
		out := &service.Outcome{EntityType: entities.EntitySeedVariety, EntityID: id}
		if err != nil || m == nil {
			return out, err
		}
		out.Measurement = m
		return one(ctx, e, e.reg.Seed, ruleID, vals, seedScope(v, m), out)
	case rules.DomainSoil:
		if _, ok := e.reg.Soil.Get(ruleID); !ok {
			break
		}
		lot, err := e.lot(ctx, id, firmID)
		if err != nil {
			return nil, err
		}
		m, vals, err := e.soilValues(ctx, lot)
		out := &service.Outcome{EntityType: entities.EntityLot, EntityID: id}
		if err != nil || m == nil {
			return out, err
		}
		out.Measurement = m
		return one(ctx, e, e.reg.Soil, ruleID, vals, lotScope(lot, m.SoilAnalysisID, m.Date), out)
	case rules.DomainPasture:
		if _, ok := e.reg.Pasture.Get(ruleID); !ok {
			break
		}
		lot, err := e.lot(ctx, id, firmID)
		if err != nil {
			return nil, err
		}
		m, err := e.measures.LatestPasture(ctx, lot.LotID, lot.FirmID)
		out := &service.Outcome{EntityType: entities.EntityLot, EntityID: id}
		if err != nil || m == nil {
			return out, err
		}
		out.Measurement = m
		return one(ctx, e, e.reg.Pasture, ruleID, rules.PastureValues{HeightCM: m.HeightCM}, lotScope(lot, m.PastureReadingID, m.Date), out)
	case rules.DomainRainfall:
		if _, ok := e.reg.Rainfall.Get(ruleID); !ok {
			break
		}
		p, err := e.premise(ctx, id, firmID)
		if err != nil {
			return nil, err
		}
		snap, vals, err := e.rainfallValues(ctx, p)
		out := &service.Outcome{EntityType: entities.EntityPremise, EntityID: id}
		if err != nil || snap == nil {
			return out, err
		}
		out.Measurement = snap
		return one(ctx, e, e.reg.Rainfall, ruleID, vals, premiseScope(p, snap.Latest), out)
	}
	return nil, fmt.Errorf("%w: %s.%s", service.ErrUnknownRule, domain, ruleID)
}

func one[M any](ctx context.Context, e *engine, t rules.Table[M], id string, m M, sc scope, out *service.Outcome) (*service.Outcome, error) {
	_, a, err := fire(ctx, e, t, id, m, sc)
	if a != nil {
		out.Created = append(out.Created, *a)
	}
	return out, err
}

// entity lookups scoped to the firm; another firm's entity reads as missing

func (e *engine) lot(ctx context.Context, id, firmID uint) (*entities.Lot, error) {
	l, err := e.catalog.FindLot(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.FirmID != firmID {
		return nil, fmt.Errorf("%w: lot %d", catalog.ErrNotFound, id)
	}
	return l, nil
}

func (e *engine) premise(ctx context.Context, id, firmID uint) (*entities.Premise, error) {
	p, err := e.catalog.FindPremise(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.FirmID != firmID {
		return nil, fmt.Errorf("%w: premise %d", catalog.ErrNotFound, id)
	}
	return p, nil
}

func (e *engine) seedVariety(ctx context.Context, id, firmID uint) (*entities.SeedVariety, error) {
	v, err := e.catalog.FindSeedVariety(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.FirmID != firmID {
		return nil, fmt.Errorf("%w: seed variety %d", catalog.ErrNotFound, id)
	}
	return v, nil
}

// domainRun accumulates one domain's share of a VerifyAll run. Each domain
// runs in its own goroutine and owns its domainRun.
type domainRun struct {
	domain  string
	report  service.DomainReport
	created []entities.Alert
	log     zerolog.Logger
}

func (r *domainRun) fail(what string, err error) {
	metrics.VerificationErrorsTotal.WithLabelValues(r.domain).Inc()
	r.log.Warn().Err(err).Str("domain", r.domain).Msg(what)
	r.report.Errors = append(r.report.Errors, fmt.Sprintf("%s: %s: %v", r.domain, what, err))
}

// eachEntity verifies list one entity at a time. A failed entity is
// recorded and the loop moves on to the next.
func eachEntity[T any](ctx context.Context, r *domainRun, list []T, label func(*T) string, verify func(context.Context, *T) (*service.Outcome, error)) {
	for i := range list {
		if err := ctx.Err(); err != nil {
			r.fail("aborted", err)
			return
		}
		out, err := verify(ctx, &list[i])
		r.report.Entities++
		if out != nil {
			r.created = append(r.created, out.Created...)
			r.report.Alerts += len(out.Created)
		}
		if err != nil {
			r.fail(label(&list[i]), err)
		}
	}
}

func (e *engine) VerifyAll(ctx context.Context, firmID uint, premiseID *uint) (*service.Report, error) {
	rep := &service.Report{
		RunID:     uuid.NewString(),
		FirmID:    firmID,
		PremiseID: premiseID,
		PerDomain: map[string]*service.DomainReport{},
		StartedAt: e.now().UTC(),
	}
	trigger := service.TriggerFrom(ctx)
	log := logger.WithComponent("verify").With().
		Str("run_id", rep.RunID).
		Uint("firm_id", firmID).
		Str("trigger", trigger).
		Logger()

	domains := []struct {
		name string
		run  func(context.Context, *domainRun, uint, *uint)
	}{
		{rules.DomainSeed, e.allSeed},
		{rules.DomainSoil, e.allSoil},
		{rules.DomainRainfall, e.allRainfall},
		{rules.DomainPasture, e.allPasture},
	}
	runs := make([]*domainRun, len(domains))
	var g errgroup.Group
	for i, d := range domains {
		runs[i] = &domainRun{domain: d.name, log: log}
		g.Go(func() error {
			start := time.Now()
			d.run(ctx, runs[i], firmID, premiseID)
			metrics.VerificationDuration.WithLabelValues(d.name).Observe(time.Since(start).Seconds())
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range runs {
		dr := r.report
		rep.PerDomain[r.domain] = &dr
		rep.Alerts = append(rep.Alerts, r.created...)
		rep.TotalAlerts += dr.Alerts
		rep.Errors = append(rep.Errors, dr.Errors...)
	}
	rep.Incomplete = len(rep.Errors) > 0
	rep.FinishedAt = e.now().UTC()

	result := "complete"
	if rep.Incomplete {
		result = "incomplete"
	}
	metrics.VerificationRunsTotal.WithLabelValues(trigger, result).Inc()

	ev := log.Info()
	if rep.Incomplete {
		ev = log.Warn().Strs("errors", rep.Errors)
	}
	ev.Int("alerts_created", rep.TotalAlerts).
		Dur("took", rep.FinishedAt.Sub(rep.StartedAt)).
		Msg("verification " + result)

	return rep, ctx.Err()
}

func (e *engine) allSeed(ctx context.Context, r *domainRun, firmID uint, _ *uint) {
	list, err := e.catalog.ListSeedVarieties(ctx, firmID)
	if err != nil {
		r.fail("list seed varieties", err)
		return
	}
	eachEntity(ctx, r, list,
		func(v *entities.SeedVariety) string { return fmt.Sprintf("seed variety %d", v.SeedVarietyID) },
		e.verifySeed)
}

func (e *engine) allSoil(ctx context.Context, r *domainRun, firmID uint, premiseID *uint) {
	list, err := e.catalog.ListLots(ctx, firmID, premiseID)
	if err != nil {
		r.fail("list lots", err)
		return
	}
	eachEntity(ctx, r, list, lotLabel, e.verifySoil)
}

func (e *engine) allPasture(ctx context.Context, r *domainRun, firmID uint, premiseID *uint) {
	list, err := e.catalog.ListLots(ctx, firmID, premiseID)
	if err != nil {
		r.fail("list lots", err)
		return
	}
	eachEntity(ctx, r, list, lotLabel, e.verifyPasture)
}

func (e *engine) allRainfall(ctx context.Context, r *domainRun, firmID uint, premiseID *uint) {
	list, err := e.catalog.ListPremises(ctx, firmID)
	if err != nil {
		r.fail("list premises", err)
		return
	}
	if premiseID != nil {
		kept := list[:0]
		for _, p := range list {
			if p.PremiseID == *premiseID {
				kept = append(kept, p)
			}
		}
		list = kept
	}
	eachEntity(ctx, r, list,
		func(p *entities.Premise) string { return fmt.Sprintf("premise %d", p.PremiseID) },
		e.verifyRainfall)
}

func lotLabel(l *entities.Lot) string { return fmt.Sprintf("lot %d", l.LotID) }
