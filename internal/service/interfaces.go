package service

import (
	"context"

	"github.com/jwhyun/tripnote/internal/domain"
	"github.com/jwhyun/tripnote/internal/draft"
)

// TripService covers trip-level operations outside an edit session.
type TripService interface {
	// List returns the user's trips from the Trip Service, falling back
	// to the local cache when the service is unreachable.
	List(ctx context.Context, userID int64) ([]domain.Trip, error)
	// Show loads a trip's full snapshot, falling back to the local cache
	// when the service is unreachable.
	Show(ctx context.Context, tripID int64) (*domain.Snapshot, error)
	// Create persists a brand-new trip built up in the given draft and
	// returns its server ID.
	Create(ctx context.Context, d *draft.Draft) (int64, error)
	// Delete removes a trip from the Trip Service and the local cache.
	Delete(ctx context.Context, tripID int64) error
}

// EditorService is one trip's edit session: snapshot in, draft edits,
// submit out. Implementations are safe for concurrent use; Submit is
// single-flight.
type EditorService interface {
	// Load fetches the trip's snapshot from the Trip Service, caches it,
	// and opens a fresh draft over it.
	Load(ctx context.Context, tripID int64) (*draft.Draft, error)
	// Draft returns the open draft, or nil when nothing is loaded.
	Draft() *draft.Draft
	// Snapshot returns the last loaded server snapshot, or nil.
	Snapshot() *domain.Snapshot
	// SubmitReady checks the draft's submit preconditions locally.
	// Returns nil when ready, *reconcile.ValidationError otherwise.
	SubmitReady() error
	// Submit pushes the draft's outstanding edits, then discards the
	// draft and reloads the snapshot. A second call while one is in
	// flight returns ErrSubmitInFlight without touching the network.
	Submit(ctx context.Context) error
	// Discard throws the draft away and reopens one from the snapshot.
	Discard() (*draft.Draft, error)
	// ToggleChecklist flips an item's checked state in the draft. For
	// already-persisted items the change is pushed to the Trip Service
	// in the background; push failures surface only through the API
	// call observer.
	ToggleChecklist(ctx context.Context, localID string) (*domain.ChecklistItem, error)
}

// CityService serves the wizard's country and city pickers from the Trip
// Service's catalog, through the local cache.
type CityService interface {
	// Refresh fetches the catalog and replaces the cached copy.
	Refresh(ctx context.Context) error
	// Countries returns the distinct Korean country names, sorted.
	Countries(ctx context.Context) ([]string, error)
	// CitiesIn returns the catalog entries for one country.
	CitiesIn(ctx context.Context, koCountry string) ([]domain.City, error)
	// Resolve finds a catalog entry by its romanized name.
	Resolve(ctx context.Context, cityName string) (*domain.City, error)
}
