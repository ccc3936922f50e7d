package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"agromonitor/entities"
	"agromonitor/pkg/fertilization/repository"
)

type gormRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repo { return &gormRepo{db: db} }

func (r *gormRepo) Create(ctx context.Context, f *entities.Fertilization) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *gormRepo) Update(ctx context.Context, f *entities.Fertilization) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *gormRepo) FindByID(ctx context.Context, id uint) (*entities.Fertilization, error) {
	var out entities.Fertilization
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *gormRepo) ListByLot(ctx context.Context, lotID uint, from, to *time.Time) ([]entities.Fertilization, error) {
	q := r.db.WithContext(ctx).Model(&entities.Fertilization{}).Where("lot_id = ?", lotID)
	if from != nil {
		q = q.Where("date >= ?", from.Format("2006-01-02"))
	}
	if to != nil {
		q = q.Where("date <= ?", to.Format("2006-01-02"))
	}
	var list []entities.Fertilization
	return list, q.Order("date asc, id asc").Find(&list).Error
}
