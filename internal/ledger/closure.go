package ledger

import (
	"context"
	"fmt"

	"tally/internal/core"
)

// Registry is the set of closed periods. It is the single source of truth
// every mutation consults. It carries no lock of its own: the engine calls it
// only inside its write-serialized critical section, which makes the
// check-then-act of a mutation atomic with respect to a concurrent close.
type Registry struct {
	store Store
	keys  map[core.PeriodKey]struct{}
}

func NewRegistry(store Store) *Registry {
	return &Registry{
		store: store,
		keys:  make(map[core.PeriodKey]struct{}),
	}
}

// Load seeds the registry from the store.
func (r *Registry) Load(ctx context.Context) error {
	keys, err := r.store.LoadClosedPeriods(ctx)
	if err != nil {
		return fmt.Errorf("load closed periods: %w", err)
	}
	for _, k := range keys {
		r.keys[k] = struct{}{}
	}
	return nil
}

func (r *Registry) IsClosed(key core.PeriodKey) bool {
	_, ok := r.keys[key]
	return ok
}

// Close marks a period closed, persisting first so a crash can never leave a
// period closed in memory but open on disk. Returns false when the key was
// already closed (idempotent no-op). Closing is a one-way transition.
func (r *Registry) Close(ctx context.Context, key core.PeriodKey) (bool, error) {
	if r.IsClosed(key) {
		return false, nil
	}
	if err := r.store.SaveClosedPeriod(ctx, key); err != nil {
		return false, fmt.Errorf("save closed period %s: %w", key, err)
	}
	r.keys[key] = struct{}{}
	return true, nil
}

// Keys returns the closed periods, for snapshots.
func (r *Registry) Keys() []core.PeriodKey {
	out := make([]core.PeriodKey, 0, len(r.keys))
	for k := range r.keys {
		out = append(out, k)
	}
	return out
}
