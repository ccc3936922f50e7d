package serviceImp

import (
	"context"
	"fmt"
	"time"

	"agromonitor/entities"
	"agromonitor/pkg/alert/repository"
	"agromonitor/pkg/alert/service"
	catalogsvc "agromonitor/pkg/catalog/service"
	"agromonitor/pkg/logger"
	"agromonitor/pkg/metrics"
	"agromonitor/pkg/notify"
)

type alertSvc struct {
	repo repository.AlertRepository
	pub  notify.Publisher
	now  func() time.Time
}

func New(r repository.AlertRepository, pub notify.Publisher) service.AlertService {
	if pub == nil {
		pub = notify.Noop{}
	}
	return &alertSvc{repo: r, pub: pub, now: time.Now}
}

func (s *alertSvc) CreateIfAbsent(ctx context.Context, a *entities.Alert) (*entities.Alert, bool, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now().UTC()
	}
	out, created, err := s.repo.CreateIfAbsent(ctx, a)
	if err != nil {
		return nil, false, err
	}
	log := logger.WithComponent("alert")
	if !created {
		metrics.AlertsDeduplicatedTotal.WithLabelValues(a.Domain, a.RuleID).Inc()
		log.Debug().
			Str("rule", a.RuleID).
			Str("entity_type", a.EntityType).
			Uint("entity_id", a.EntityID).
			Uint("pending_alert_id", out.AlertID).
			Msg("pending alert exists, skipped")
		return out, false, nil
	}
	metrics.AlertsCreatedTotal.WithLabelValues(out.Domain, out.RuleID, out.Priority).Inc()
	log.Debug().
		Str("rule", out.RuleID).
		Str("entity_type", out.EntityType).
		Uint("entity_id", out.EntityID).
		Uint("alert_id", out.AlertID).
		Msg("alert created")
	s.publish(ctx, notify.EventAlertCreated, out)
	return out, true, nil
}

// Get hides alerts of other firms when ctx carries a caller firm.
func (s *alertSvc) Get(ctx context.Context, id uint) (*entities.Alert, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !catalogsvc.InScope(ctx, a.FirmID) {
		return nil, fmt.Errorf("%w: %d", repository.ErrNotFound, id)
	}
	return a, nil
}

func (s *alertSvc) List(ctx context.Context, f repository.Filter) ([]entities.Alert, error) {
	return s.repo.List(ctx, f)
}

func (s *alertSvc) Resolve(ctx context.Context, id uint, notes string) (*entities.Alert, error) {
	return s.close(ctx, id, entities.AlertResolved, notes, notify.EventAlertResolved)
}

func (s *alertSvc) Dismiss(ctx context.Context, id uint, reason string) (*entities.Alert, error) {
	return s.close(ctx, id, entities.AlertDismissed, reason, notify.EventAlertDismissed)
}

func (s *alertSvc) close(ctx context.Context, id uint, status entities.AlertStatus, notes, event string) (*entities.Alert, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	out, err := s.repo.Close(ctx, id, status, notes, s.now().UTC())
	if err != nil {
		return nil, err
	}
	metrics.AlertsClosedTotal.WithLabelValues(string(status)).Inc()
	log := logger.WithComponent("alert")
	log.Info().
		Uint("alert_id", id).
		Str("status", string(status)).
		Msg("alert closed")
	s.publish(ctx, event, out)
	return out, nil
}

// publish failures are logged by the publisher and never fail the write;
// the alert row is the source of truth.
func (s *alertSvc) publish(ctx context.Context, kind string, a *entities.Alert) {
	_ = s.pub.Publish(ctx, notify.NewEvent(kind, a, s.now()))
}
