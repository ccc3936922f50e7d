package repositoryImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"agromonitor/entities"
	"agromonitor/pkg/alert/repository"
)

type alertRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AlertRepository { return &alertRepo{db} }

func (r *alertRepo) CreateIfAbsent(ctx context.Context, a *entities.Alert) (*entities.Alert, bool, error) {
	a.Status = entities.AlertPending
	var (
		out     *entities.Alert
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findPending(tx, a.EntityType, a.EntityID, a.RuleID)
		if err != nil {
			return err
		}
		if existing != nil {
			out = existing
			return nil
		}
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		out, created = a, true
		return nil
	})
	if err != nil && isDuplicate(err) {
		// lost a race with another run; the winner's row is the answer
		existing, ferr := findPending(r.db.WithContext(ctx), a.EntityType, a.EntityID, a.RuleID)
		if ferr != nil {
			return nil, false, ferr
		}
		if existing != nil {
			return existing, false, nil
		}
	}
	if err != nil {
		return nil, false, fmt.Errorf("create alert %s/%d/%s: %w", a.EntityType, a.EntityID, a.RuleID, err)
	}
	return out, created, nil
}

func findPending(db *gorm.DB, entityType string, entityID uint, ruleID string) (*entities.Alert, error) {
	var a entities.Alert
	err := db.Where("entity_type = ? AND entity_id = ? AND rule_id = ? AND status = ?",
		entityType, entityID, ruleID, entities.AlertPending).
		Order("alert_id ASC").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *alertRepo) Get(ctx context.Context, id uint) (*entities.Alert, error) {
	var a entities.Alert
	err := r.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", repository.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *alertRepo) List(ctx context.Context, f repository.Filter) ([]entities.Alert, error) {
	q := r.db.WithContext(ctx).Model(&entities.Alert{})
	if f.FirmID != 0 {
		q = q.Where("firm_id = ?", f.FirmID)
	}
	if f.PremiseID != nil {
		q = q.Where("premise_id = ?", *f.PremiseID)
	}
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID != nil {
		q = q.Where("entity_id = ?", *f.EntityID)
	}
	if f.Domain != "" {
		q = q.Where("domain = ?", f.Domain)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []entities.Alert
	return out, q.Order("created_at DESC, alert_id DESC").Find(&out).Error
}

func (r *alertRepo) Close(ctx context.Context, id uint, status entities.AlertStatus, notes string, at time.Time) (*entities.Alert, error) {
	var out entities.Alert
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", repository.ErrNotFound, id)
			}
			return err
		}
		if !out.IsPending() {
			return fmt.Errorf("%w: %d is %s", repository.ErrNotPending, id, out.Status)
		}
		res := tx.Model(&entities.Alert{}).
			Where("alert_id = ? AND status = ?", id, entities.AlertPending).
			Updates(map[string]any{"status": status, "resolved_at": at, "resolution": notes})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %d", repository.ErrNotPending, id)
		}
		out.Status, out.ResolvedAt, out.Resolution = status, &at, notes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
