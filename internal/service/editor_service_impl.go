package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/jwhyun/tripnote/internal/domain"
	"github.com/jwhyun/tripnote/internal/draft"
	"github.com/jwhyun/tripnote/internal/reconcile"
	"github.com/jwhyun/tripnote/internal/repository"
	"github.com/jwhyun/tripnote/internal/tripapi"
)

type editorService struct {
	api       tripapi.Client
	engine    *reconcile.Engine
	snapshots repository.SnapshotRepo
	obs       UseCaseObserver

	mu       sync.Mutex
	snapshot *domain.Snapshot
	draft    *draft.Draft
	busy     bool
}

// NewEditorService creates an edit session service. snapshots may be nil
// to run without the local cache.
func NewEditorService(api tripapi.Client, snapshots repository.SnapshotRepo, obs UseCaseObserver) EditorService {
	if obs == nil {
		obs = NoopUseCaseObserver{}
	}
	return &editorService{
		api:       api,
		engine:    reconcile.NewEngine(api),
		snapshots: snapshots,
		obs:       obs,
	}
}

func (s *editorService) Load(ctx context.Context, tripID int64) (*draft.Draft, error) {
	var d *draft.Draft
	err := observe(ctx, s.obs, "editor.load", map[string]any{"trip_id": tripID}, func() error {
		snap, err := loadSnapshot(ctx, s.api, tripID)
		if err != nil {
			return err
		}
		s.cache(ctx, snap)
		d = draft.FromSnapshot(snap)
		s.mu.Lock()
		s.snapshot = snap
		s.draft = d
		s.mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *editorService) Draft() *draft.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *editorService) Snapshot() *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *editorService) SubmitReady() error {
	s.mu.Lock()
	d := s.draft
	s.mu.Unlock()
	if d == nil {
		return ErrNoDraft
	}
	return s.engine.Validate(d)
}

func (s *editorService) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.draft == nil {
		s.mu.Unlock()
		return ErrNoDraft
	}
	if s.busy {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	s.busy = true
	d := s.draft
	tripID := d.Trip.ID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	return observe(ctx, s.obs, "editor.submit", map[string]any{"trip_id": tripID}, func() error {
		if err := s.engine.Submit(ctx, d); err != nil {
			return err
		}
		// The server applied everything; the draft is now stale and gets
		// replaced by a fresh snapshot. If the reload itself fails the
		// submit still counts, so say so instead of pretending it didn't.
		snap, err := loadSnapshot(ctx, s.api, tripID)
		if err != nil {
			return fmt.Errorf("changes saved, but reloading the trip failed: %w", err)
		}
		s.cache(ctx, snap)
		s.mu.Lock()
		s.snapshot = snap
		s.draft = draft.FromSnapshot(snap)
		s.mu.Unlock()
		return nil
	})
}

func (s *editorService) Discard() (*draft.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil, ErrNoDraft
	}
	s.draft = draft.FromSnapshot(s.snapshot)
	return s.draft, nil
}

func (s *editorService) ToggleChecklist(ctx context.Context, localID string) (*domain.ChecklistItem, error) {
	s.mu.Lock()
	d := s.draft
	s.mu.Unlock()
	if d == nil {
		return nil, ErrNoDraft
	}

	var cur *domain.ChecklistItem
	for _, c := range d.Checklist {
		if c.LocalID == localID {
			cur = c
			break
		}
	}
	if cur == nil {
		return nil, fmt.Errorf("checklist item %s: not in draft", localID)
	}

	checked := !cur.Checked
	item := d.UpdateChecklistItem(localID, draft.ChecklistPatch{Checked: &checked})

	// Persisted items push the toggle right away without blocking the
	// caller. A failed push is visible only in the API call log; the next
	// full submit re-sends the item's state anyway.
	if id, ok := item.Life.ServerID(); ok {
		req := tripapi.UpdateChecklistItemRequest{
			ItemName:  item.Name,
			IsChecked: item.Checked,
		}
		bg := context.WithoutCancel(ctx)
		go func() {
			_, _ = s.api.UpdateChecklistItem(bg, id, req)
		}()
	}
	return item, nil
}

// cache writes the snapshot through to the local cache. Cache failures
// never fail the operation that produced the snapshot.
func (s *editorService) cache(ctx context.Context, snap *domain.Snapshot) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.SaveTrip(ctx, snap); err != nil {
		s.obs.ObserveUseCase(ctx, UseCaseEvent{
			Name:   "editor.cache_snapshot",
			Err:    err,
			Fields: map[string]any{"trip_id": snap.Trip.ID},
		})
	}
}
