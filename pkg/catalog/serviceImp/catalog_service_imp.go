package serviceImp

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	repo "agromonitor/pkg/catalog/repository"
	"agromonitor/pkg/catalog/service"
)

type catalogSvc struct {
	repo.CatalogRepository
	names *gocache.Cache
}

// New wraps r with a name cache. A ttl <= 0 disables expiry.
func New(r repo.CatalogRepository, ttl time.Duration) service.CatalogService {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &catalogSvc{CatalogRepository: r, names: gocache.New(ttl, 10*time.Minute)}
}

func (s *catalogSvc) LotName(ctx context.Context, id uint) (string, error) {
	return s.name(fmt.Sprintf("lot:%d", id), func() (string, error) {
		l, err := s.FindLot(ctx, id)
		if err != nil {
			return "", err
		}
		return orDefault(l.Name, "Lote", id), nil
	})
}

func (s *catalogSvc) PremiseName(ctx context.Context, id uint) (string, error) {
	return s.name(fmt.Sprintf("premise:%d", id), func() (string, error) {
		p, err := s.FindPremise(ctx, id)
		if err != nil {
			return "", err
		}
		return orDefault(p.Name, "Predio", id), nil
	})
}

func (s *catalogSvc) SeedVarietyName(ctx context.Context, id uint) (string, error) {
	return s.name(fmt.Sprintf("seed_variety:%d", id), func() (string, error) {
		v, err := s.FindSeedVariety(ctx, id)
		if err != nil {
			return "", err
		}
		name := orDefault(v.Name, "Variedad", id)
		if v.BatchCode != "" {
			name = fmt.Sprintf("%s (lote %s)", name, v.BatchCode)
		}
		return name, nil
	})
}

func (s *catalogSvc) name(key string, load func() (string, error)) (string, error) {
	if v, ok := s.names.Get(key); ok {
		return v.(string), nil
	}
	n, err := load()
	if err != nil {
		return "", err
	}
	s.names.SetDefault(key, n)
	return n, nil
}

func orDefault(name, kind string, id uint) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s #%d", kind, id)
}
