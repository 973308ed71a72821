package service

import (
	"context"
	"fmt"

	"github.com/jwhyun/tripnote/internal/domain"
	"github.com/jwhyun/tripnote/internal/repository"
	"github.com/jwhyun/tripnote/internal/tripapi"
)

type cityService struct {
	api    tripapi.Client
	cities repository.CityRepo
	obs    UseCaseObserver
}

// NewCityService creates the city catalog service. cities may be nil to
// run without the local cache; every read then hits the Trip Service.
func NewCityService(api tripapi.Client, cities repository.CityRepo, obs UseCaseObserver) CityService {
	if obs == nil {
		obs = NoopUseCaseObserver{}
	}
	return &cityService{api: api, cities: cities, obs: obs}
}

func (s *cityService) Refresh(ctx context.Context) error {
	return observe(ctx, s.obs, "city.refresh", nil, func() error {
		payloads, err := s.api.GetAllCities(ctx)
		if err != nil {
			return err
		}
		catalog := make([]domain.City, 0, len(payloads))
		for _, p := range payloads {
			catalog = append(catalog, domain.City{
				ID:        p.ID,
				CityName:  p.CityName,
				KoName:    p.KoName,
				KoCountry: p.KoCountry,
			})
		}
		if s.cities == nil {
			return nil
		}
		return s.cities.ReplaceAll(ctx, catalog)
	})
}

// catalog returns the cached catalog, refreshing it first when the cache
// is empty or absent.
func (s *cityService) catalog(ctx context.Context) ([]domain.City, error) {
	if s.cities != nil {
		cached, err := s.cities.ListAll(ctx)
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	if s.cities == nil {
		payloads, err := s.api.GetAllCities(ctx)
		if err != nil {
			return nil, err
		}
		catalog := make([]domain.City, 0, len(payloads))
		for _, p := range payloads {
			catalog = append(catalog, domain.City{
				ID:        p.ID,
				CityName:  p.CityName,
				KoName:    p.KoName,
				KoCountry: p.KoCountry,
			})
		}
		return catalog, nil
	}
	return s.cities.ListAll(ctx)
}

func (s *cityService) Countries(ctx context.Context) ([]string, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return domain.DistinctCountries(catalog), nil
}

func (s *cityService) CitiesIn(ctx context.Context, koCountry string) ([]domain.City, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return domain.CitiesInCountry(catalog, koCountry), nil
}

func (s *cityService) Resolve(ctx context.Context, cityName string) (*domain.City, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	city, ok := domain.FindCityByName(catalog, cityName)
	if !ok {
		return nil, fmt.Errorf("city %q: not in catalog", cityName)
	}
	return &city, nil
}
