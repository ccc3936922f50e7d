package repository

import (
	"context"
	"time"

	"agromonitor/entities"
)

type Repo interface {
	Create(ctx context.Context, f *entities.Fertilization) error
	Update(ctx context.Context, f *entities.Fertilization) error
	FindByID(ctx context.Context, id uint) (*entities.Fertilization, error)
	ListByLot(ctx context.Context, lotID uint, from, to *time.Time) ([]entities.Fertilization, error)
}
