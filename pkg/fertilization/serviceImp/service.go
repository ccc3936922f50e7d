package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"agromonitor/entities"
	catalog "agromonitor/pkg/catalog/repository"
	catalogsvc "agromonitor/pkg/catalog/service"
	"agromonitor/pkg/fertilization/repository"
	svc "agromonitor/pkg/fertilization/service"
)

const dateLayout = "2006-01-02"

type service struct {
	repo repository.Repo
	cat  catalog.CatalogRepository
	now  func() time.Time
}

func New(r repository.Repo, cat catalog.CatalogRepository) svc.Service {
	return &service{repo: r, cat: cat, now: time.Now}
}

func (s *service) Create(ctx context.Context, f *entities.Fertilization) error {
	if f.Date == "" {
		return fmt.Errorf("%w: date is required", svc.ErrInvalid)
	}
	if err := checkDate(f.Date); err != nil {
		return err
	}
	lot, err := s.lot(ctx, f.LotID)
	if err != nil {
		return err
	}
	f.FirmID = lot.FirmID
	if f.Status == "" {
		f.Status = entities.FertilizationPlanned
	}
	if err := s.applyStatus(f); err != nil {
		return err
	}
	return s.repo.Create(ctx, f)
}

func (s *service) UpdatePartial(ctx context.Context, id uint, p svc.FertilizationPatch) (*entities.Fertilization, error) {
	cur, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", svc.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if !catalogsvc.InScope(ctx, cur.FirmID) {
		return nil, fmt.Errorf("%w: %d", svc.ErrNotFound, id)
	}
	if p.Date != nil {
		if err := checkDate(*p.Date); err != nil {
			return nil, err
		}
		cur.Date = *p.Date
	}
	if p.Product != nil {
		cur.Product = *p.Product
	}
	if p.Nutrients != nil {
		cur.Nutrients = *p.Nutrients
	}
	if p.DoseKgHa != nil {
		cur.DoseKgHa = p.DoseKgHa
	}
	if p.Notes != nil {
		cur.Notes = *p.Notes
	}
	if p.AppliedOn != nil {
		cur.AppliedOn = p.AppliedOn
	}
	if p.Status != nil {
		cur.Status = *p.Status
	}
	if err := s.applyStatus(cur); err != nil {
		return nil, err
	}
	return cur, s.repo.Update(ctx, cur)
}

func (s *service) ListByLot(ctx context.Context, lotID uint, from, to *time.Time) ([]entities.Fertilization, error) {
	if _, err := s.lot(ctx, lotID); err != nil {
		return nil, err
	}
	return s.repo.ListByLot(ctx, lotID, from, to)
}

func (s *service) lot(ctx context.Context, id uint) (*entities.Lot, error) {
	l, err := s.cat.FindLot(ctx, id)
	if err != nil {
		return nil, err
	}
	return l, catalogsvc.CheckScope(ctx, l.FirmID, "lot", id)
}

// applyStatus keeps AppliedOn consistent with Status: an applied record
// always carries a date, any other status carries none.
func (s *service) applyStatus(f *entities.Fertilization) error {
	switch f.Status {
	case entities.FertilizationApplied:
		if f.AppliedOn == nil || *f.AppliedOn == "" {
			d := s.now().UTC().Format(dateLayout)
			f.AppliedOn = &d
		}
		return checkDate(*f.AppliedOn)
	case entities.FertilizationPlanned, entities.FertilizationSkipped:
		f.AppliedOn = nil
		return nil
	default:
		return fmt.Errorf("%w: unknown status %q", svc.ErrInvalid, f.Status)
	}
}

func checkDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", svc.ErrInvalid, s)
	}
	return nil
}
