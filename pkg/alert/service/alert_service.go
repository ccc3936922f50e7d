package service

import (
	"context"

	"agromonitor/entities"
	"agromonitor/pkg/alert/repository"
)

// AlertService is the store adapter the verifiers write through. Closing an
// alert is the only mutation after creation.
type AlertService interface {
	CreateIfAbsent(ctx context.Context, a *entities.Alert) (*entities.Alert, bool, error)
	Get(ctx context.Context, id uint) (*entities.Alert, error)
	List(ctx context.Context, f repository.Filter) ([]entities.Alert, error)
	Resolve(ctx context.Context, id uint, notes string) (*entities.Alert, error)
	Dismiss(ctx context.Context, id uint, reason string) (*entities.Alert, error)
}
