package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"ActionCountdown/internal/domain"
	"ActionCountdown/internal/ports"
)

// Revalidating keeps the last fetched item list for a fixed window. Concurrent
// callers that find the window expired share a single upstream fetch.
type Revalidating struct {
	source ports.ItemSource
	window time.Duration
	now    func() time.Time

	group singleflight.Group

	mu        sync.RWMutex
	items     []domain.CountdownItem
	fetchedAt time.Time
	version   uint64
}

var _ ports.ItemSource = (*Revalidating)(nil)

// NewRevalidating wraps source with a revalidation window.
func NewRevalidating(source ports.ItemSource, window time.Duration) *Revalidating {
	return &Revalidating{source: source, window: window, now: time.Now}
}

// WithClock replaces the wall clock; used by tests.
func (r *Revalidating) WithClock(now func() time.Time) *Revalidating {
	r.now = now
	return r
}

// Items returns the cached list, refetching once the window has passed.
func (r *Revalidating) Items(ctx context.Context) []domain.CountdownItem {
	items, _ := r.Snapshot(ctx)
	return items
}

// Snapshot returns the cached list along with a version that changes every time
// the list is refetched.
func (r *Revalidating) Snapshot(ctx context.Context) ([]domain.CountdownItem, uint64) {
	if items, version, ok := r.fresh(); ok {
		return items, version
	}

	ch := r.group.DoChan("items", func() (interface{}, error) {
		if items, version, ok := r.fresh(); ok {
			return snapshot{items: items, version: version}, nil
		}

		// detached so one caller's cancellation does not fail the others
		items := r.source.Items(context.WithoutCancel(ctx))

		r.mu.Lock()
		r.items = items
		r.fetchedAt = r.now()
		r.version++
		version := r.version
		r.mu.Unlock()

		return snapshot{items: items, version: version}, nil
	})

	select {
	case res := <-ch:
		snap := res.Val.(snapshot)
		return snap.items, snap.version
	case <-ctx.Done():
		r.mu.RLock()
		defer r.mu.RUnlock()
		if r.items == nil {
			return []domain.CountdownItem{}, r.version
		}
		return r.items, r.version
	}
}

// Invalidate forces the next call to refetch.
func (r *Revalidating) Invalidate() {
	r.mu.Lock()
	r.fetchedAt = time.Time{}
	r.mu.Unlock()
}

type snapshot struct {
	items   []domain.CountdownItem
	version uint64
}

func (r *Revalidating) fresh() ([]domain.CountdownItem, uint64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.fetchedAt.IsZero() || r.now().Sub(r.fetchedAt) >= r.window {
		return nil, 0, false
	}
	return r.items, r.version, true
}
