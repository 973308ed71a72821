package service

import (
	"context"
	"errors"

	"github.com/jwhyun/tripnote/internal/domain"
	"github.com/jwhyun/tripnote/internal/draft"
	"github.com/jwhyun/tripnote/internal/reconcile"
	"github.com/jwhyun/tripnote/internal/repository"
	"github.com/jwhyun/tripnote/internal/tripapi"
)

type tripService struct {
	api       tripapi.Client
	engine    *reconcile.Engine
	snapshots repository.SnapshotRepo
	obs       UseCaseObserver
}

// NewTripService creates the trip-level service. snapshots may be nil to
// run without the local cache.
func NewTripService(api tripapi.Client, snapshots repository.SnapshotRepo, obs UseCaseObserver) TripService {
	if obs == nil {
		obs = NoopUseCaseObserver{}
	}
	return &tripService{
		api:       api,
		engine:    reconcile.NewEngine(api),
		snapshots: snapshots,
		obs:       obs,
	}
}

// offline reports whether the error means the Trip Service could not be
// reached at all, the one case where stale cached data beats no data.
func offline(err error) bool {
	return errors.Is(err, tripapi.ErrUnavailable) || errors.Is(err, tripapi.ErrTimeout)
}

func (s *tripService) List(ctx context.Context, userID int64) ([]domain.Trip, error) {
	var trips []domain.Trip
	err := observe(ctx, s.obs, "trip.list", map[string]any{"user_id": userID}, func() error {
		payloads, err := s.api.ListTrips(ctx, userID)
		if err != nil {
			if offline(err) && s.snapshots != nil {
				cached, cacheErr := s.snapshots.ListTrips(ctx)
				if cacheErr == nil {
					trips = cached
					return nil
				}
			}
			return err
		}
		for _, p := range payloads {
			p := p
			trips = append(trips, tripFromPayload(&p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (s *tripService) Show(ctx context.Context, tripID int64) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := observe(ctx, s.obs, "trip.show", map[string]any{"trip_id": tripID}, func() error {
		loaded, err := loadSnapshot(ctx, s.api, tripID)
		if err != nil {
			if offline(err) && s.snapshots != nil {
				cached, cacheErr := s.snapshots.GetTrip(ctx, tripID)
				if cacheErr == nil {
					snap = cached
					return nil
				}
			}
			return err
		}
		if s.snapshots != nil {
			if cacheErr := s.snapshots.SaveTrip(ctx, loaded); cacheErr != nil {
				s.obs.ObserveUseCase(ctx, UseCaseEvent{
					Name:   "trip.cache_snapshot",
					Err:    cacheErr,
					Fields: map[string]any{"trip_id": tripID},
				})
			}
		}
		snap = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *tripService) Create(ctx context.Context, d *draft.Draft) (int64, error) {
	var tripID int64
	err := observe(ctx, s.obs, "trip.create", nil, func() error {
		id, err := s.engine.Create(ctx, d)
		tripID = id
		return err
	})
	return tripID, err
}

func (s *tripService) Delete(ctx context.Context, tripID int64) error {
	return observe(ctx, s.obs, "trip.delete", map[string]any{"trip_id": tripID}, func() error {
		if err := s.api.DeleteTrip(ctx, tripID); err != nil {
			return err
		}
		if s.snapshots != nil {
			if err := s.snapshots.DeleteTrip(ctx, tripID); err != nil {
				s.obs.ObserveUseCase(ctx, UseCaseEvent{
					Name:   "trip.cache_evict",
					Err:    err,
					Fields: map[string]any{"trip_id": tripID},
				})
			}
		}
		return nil
	})
}
