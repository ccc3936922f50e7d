package service

import (
	"context"
	"errors"
	"time"

	"agromonitor/entities"
	"agromonitor/pkg/quality"
)

var (
	ErrUnknownKind = errors.New("unknown entity kind")
	ErrUnknownRule = errors.New("unknown rule")
)

// Outcome is the result of verifying one entity. Measurement is nil when the
// entity has no data for the checked domain.
type Outcome struct {
	EntityType  string           `json:"entity_type"`
	EntityID    uint             `json:"entity_id"`
	Created     []entities.Alert `json:"alerts_created"`
	Measurement any              `json:"measurement"`
	Quality     *quality.Score   `json:"quality,omitempty"`
}

// Merge appends the alerts created by other. Measurements stay those of o.
func (o *Outcome) Merge(other *Outcome) {
	if other != nil {
		o.Created = append(o.Created, other.Created...)
	}
}

type DomainReport struct {
	Entities int      `json:"entities"`
	Alerts   int      `json:"alerts"`
	Errors   []string `json:"errors,omitempty"`
}

// Report summarises one verifyAll run. Incomplete is set when any
// collaborator call failed; alerts created before the failure are kept.
type Report struct {
	RunID       string                   `json:"run_id"`
	FirmID      uint                     `json:"firm_id"`
	PremiseID   *uint                    `json:"premise_id,omitempty"`
	TotalAlerts int                      `json:"total_alerts"`
	PerDomain   map[string]*DomainReport `json:"per_domain"`
	Alerts      []entities.Alert         `json:"alerts"`
	Incomplete  bool                     `json:"incomplete"`
	Errors      []string                 `json:"errors,omitempty"`
	StartedAt   time.Time                `json:"started_at"`
	FinishedAt  time.Time                `json:"finished_at"`
}

type Verifier interface {
	// VerifyAll checks every entity of the firm, or of one premise when
	// premiseID is set. Seed varieties belong to the firm and are always checked.
	VerifyAll(ctx context.Context, firmID uint, premiseID *uint) (*Report, error)

	VerifySeedVariety(ctx context.Context, id, firmID uint) (*Outcome, error)
	// VerifyLot runs the soil and pasture rules for a lot.
	VerifyLot(ctx context.Context, id, firmID uint) (*Outcome, error)
	// VerifyPremise runs the rainfall rules for a premise.
	VerifyPremise(ctx context.Context, id, firmID uint) (*Outcome, error)
	VerifyEntity(ctx context.Context, kind string, id, firmID uint) (*Outcome, error)

	// VerifyRule evaluates a single rule against the entity's latest data,
	// bypassing the seed suppression order.
	VerifyRule(ctx context.Context, domain, ruleID string, id, firmID uint) (*Outcome, error)
}

type triggerKey struct{}

// WithTrigger labels the runs started with ctx (manual, poll, cli).
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey{}, trigger)
}

func TriggerFrom(ctx context.Context) string {
	if v, ok := ctx.Value(triggerKey{}).(string); ok && v != "" {
		return v
	}
	return "manual"
}
