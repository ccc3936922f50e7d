package repository

import (
	"context"
	"errors"

	"agromonitor/entities"
)

var ErrNotFound = errors.New("entity not found")

// CatalogRepository stores the entities alerts are scoped to.
type CatalogRepository interface {
	CreateFirm(ctx context.Context, f *entities.Firm) error
	CreatePremise(ctx context.Context, p *entities.Premise) error
	CreateLot(ctx context.Context, l *entities.Lot) error
	CreateSeedVariety(ctx context.Context, s *entities.SeedVariety) error

	FindPremise(ctx context.Context, id uint) (*entities.Premise, error)
	FindLot(ctx context.Context, id uint) (*entities.Lot, error)
	FindSeedVariety(ctx context.Context, id uint) (*entities.SeedVariety, error)

	ListFirms(ctx context.Context) ([]entities.Firm, error)
	ListPremises(ctx context.Context, firmID uint) ([]entities.Premise, error)
	// ListLots returns every lot of the firm, or of one premise when premiseID is set.
	ListLots(ctx context.Context, firmID uint, premiseID *uint) ([]entities.Lot, error)
	ListSeedVarieties(ctx context.Context, firmID uint) ([]entities.SeedVariety, error)
}
