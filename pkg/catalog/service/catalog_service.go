package service

import (
	"context"

	"agromonitor/pkg/catalog/repository"
)

// CatalogService adds display-name lookups on top of the repository.
type CatalogService interface {
	repository.CatalogRepository

	LotName(ctx context.Context, id uint) (string, error)
	PremiseName(ctx context.Context, id uint) (string, error)
	SeedVarietyName(ctx context.Context, id uint) (string, error)
}
