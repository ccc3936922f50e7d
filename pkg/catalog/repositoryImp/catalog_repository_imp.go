package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"agromonitor/entities"
	"agromonitor/pkg/catalog/repository"
)

type catalogRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CatalogRepository { return &catalogRepo{db} }

func (r *catalogRepo) CreateFirm(ctx context.Context, f *entities.Firm) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *catalogRepo) CreatePremise(ctx context.Context, p *entities.Premise) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *catalogRepo) CreateLot(ctx context.Context, l *entities.Lot) error {
	if l.FirmID == 0 {
		var p entities.Premise
		if err := r.db.WithContext(ctx).First(&p, l.PremiseID).Error; err != nil {
			return notFound(err, "premise", l.PremiseID)
		}
		l.FirmID = p.FirmID
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *catalogRepo) CreateSeedVariety(ctx context.Context, s *entities.SeedVariety) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *catalogRepo) FindPremise(ctx context.Context, id uint) (*entities.Premise, error) {
	var p entities.Premise
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err, "premise", id)
	}
	return &p, nil
}

func (r *catalogRepo) FindLot(ctx context.Context, id uint) (*entities.Lot, error) {
	var l entities.Lot
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, notFound(err, "lot", id)
	}
	return &l, nil
}

func (r *catalogRepo) FindSeedVariety(ctx context.Context, id uint) (*entities.SeedVariety, error) {
	var s entities.SeedVariety
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err, "seed variety", id)
	}
	return &s, nil
}

func (r *catalogRepo) ListFirms(ctx context.Context) ([]entities.Firm, error) {
	var out []entities.Firm
	return out, r.db.WithContext(ctx).Order("firm_id ASC").Find(&out).Error
}

func (r *catalogRepo) ListPremises(ctx context.Context, firmID uint) ([]entities.Premise, error) {
	var out []entities.Premise
	return out, r.db.WithContext(ctx).Where("firm_id = ?", firmID).Order("premise_id ASC").Find(&out).Error
}

func (r *catalogRepo) ListLots(ctx context.Context, firmID uint, premiseID *uint) ([]entities.Lot, error) {
	q := r.db.WithContext(ctx).Where("firm_id = ?", firmID)
	if premiseID != nil {
		q = q.Where("premise_id = ?", *premiseID)
	}
	var out []entities.Lot
	return out, q.Order("lot_id ASC").Find(&out).Error
}

func (r *catalogRepo) ListSeedVarieties(ctx context.Context, firmID uint) ([]entities.SeedVariety, error) {
	var out []entities.SeedVariety
	return out, r.db.WithContext(ctx).Where("firm_id = ?", firmID).Order("seed_variety_id ASC").Find(&out).Error
}

func notFound(err error, kind string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", kind, id, repository.ErrNotFound)
	}
	return fmt.Errorf("find %s %d: %w", kind, id, err)
}
