// Package repository persists the local snapshot cache. The cache is
// write-through only: it is refreshed after every successful load or
// submit and read back for offline display and the city picker. It never
// feeds reconciliation.
package repository

import (
	"context"

	"github.com/jwhyun/tripnote/internal/domain"
)

// SnapshotRepo stores the last server snapshot per trip.
type SnapshotRepo interface {
	// SaveTrip replaces the cached snapshot of snap's trip atomically.
	SaveTrip(ctx context.Context, snap *domain.Snapshot) error
	// GetTrip loads a cached snapshot; ErrNotCached when absent.
	GetTrip(ctx context.Context, tripID int64) (*domain.Snapshot, error)
	// DeleteTrip drops a trip's cached snapshot.
	DeleteTrip(ctx context.Context, tripID int64) error
	// ListTrips returns cached trip headers ordered by start date.
	ListTrips(ctx context.Context) ([]domain.Trip, error)
}

// CityRepo caches the Trip Service's city catalog.
type CityRepo interface {
	// ReplaceAll swaps the cached catalog for the given one.
	ReplaceAll(ctx context.Context, cities []domain.City) error
	// ListAll returns the cached catalog in ID order.
	ListAll(ctx context.Context) ([]domain.City, error)
}
