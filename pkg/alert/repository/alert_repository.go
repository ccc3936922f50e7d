package repository

import (
	"context"
	"errors"
	"time"

	"agromonitor/entities"
)

var (
	ErrNotFound   = errors.New("alert not found")
	ErrNotPending = errors.New("alert is not pending")
)

// Filter narrows List. Zero values match everything.
type Filter struct {
	FirmID     uint
	PremiseID  *uint
	EntityType string
	EntityID   *uint
	Domain     string
	Status     entities.AlertStatus
	Limit      int
}

type AlertRepository interface {
	// CreateIfAbsent inserts a unless a pending alert already exists for the
	// same entity and rule. It returns the stored alert and whether it was new.
	CreateIfAbsent(ctx context.Context, a *entities.Alert) (*entities.Alert, bool, error)
	Get(ctx context.Context, id uint) (*entities.Alert, error)
	List(ctx context.Context, f Filter) ([]entities.Alert, error)
	// Close moves a pending alert to status, stamping at and notes.
	Close(ctx context.Context, id uint, status entities.AlertStatus, notes string, at time.Time) (*entities.Alert, error)
}
