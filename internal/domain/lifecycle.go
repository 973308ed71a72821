package domain

// LifecyclePhase identifies where a draft item stands relative to the server.
type LifecyclePhase string

const (
	// PhasePending marks an item created locally and never sent to the server.
	PhasePending LifecyclePhase = "pending"
	// PhasePersisted marks an item loaded from the server; its server ID is known.
	PhasePersisted LifecyclePhase = "persisted"
	// PhaseMarkedForDeletion marks a persisted item the user removed; its
	// server ID is queued for deletion at the next submit.
	PhaseMarkedForDeletion LifecyclePhase = "marked_for_deletion"
)

// Lifecycle is a tagged variant tracking an item's persistence state. A
// server ID exists only in the persisted and marked-for-deletion phases, so
// a pending item can never end up in a deletion queue.
type Lifecycle struct {
	phase    LifecyclePhase
	serverID int64
}

// Pending returns the lifecycle of a locally created, unsent item.
func Pending() Lifecycle {
	return Lifecycle{phase: PhasePending}
}

// Persisted returns the lifecycle of an item loaded from the server.
func Persisted(serverID int64) Lifecycle {
	return Lifecycle{phase: PhasePersisted, serverID: serverID}
}

// Phase reports the current phase.
func (l Lifecycle) Phase() LifecyclePhase {
	if l.phase == "" {
		return PhasePending
	}
	return l.phase
}

// IsNew reports whether the item has never been persisted.
func (l Lifecycle) IsNew() bool {
	return l.Phase() == PhasePending
}

// ServerID returns the server identifier and whether one exists.
func (l Lifecycle) ServerID() (int64, bool) {
	if l.Phase() == PhasePending {
		return 0, false
	}
	return l.serverID, true
}

// MarkDeleted transitions a persisted item to marked-for-deletion. It
// reports false for pending items (which are simply dropped, no server
// call needed) and for items already marked.
func (l Lifecycle) MarkDeleted() (Lifecycle, bool) {
	if l.Phase() != PhasePersisted {
		return l, false
	}
	return Lifecycle{phase: PhaseMarkedForDeletion, serverID: l.serverID}, true
}
