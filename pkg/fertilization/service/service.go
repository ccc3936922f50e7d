package service

import (
	"context"
	"errors"
	"time"

	"agromonitor/entities"
)

var (
	ErrNotFound = errors.New("fertilization not found")
	ErrInvalid  = errors.New("invalid fertilization")
)

type Service interface {
	Create(ctx context.Context, in *entities.Fertilization) error
	ListByLot(ctx context.Context, lotID uint, from, to *time.Time) ([]entities.Fertilization, error)
	UpdatePartial(ctx context.Context, id uint, patch FertilizationPatch) (*entities.Fertilization, error)
}

// FertilizationPatch changes only the non-nil fields.
type FertilizationPatch struct {
	Status    *string  `json:"status"`
	AppliedOn *string  `json:"applied_on"`
	Date      *string  `json:"date"`
	Product   *string  `json:"product"`
	Nutrients *string  `json:"nutrients"`
	DoseKgHa  *float64 `json:"dose_kg_ha"`
	Notes     *string  `json:"notes"`
}
