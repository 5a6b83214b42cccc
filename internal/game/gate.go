package game

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Gate is the admission gate: a counting pool of permits that bounds how
// many moles may be visible at once. Blocked acquirers are not queued fairly.
type Gate struct {
	sem      *semaphore.Weighted
	capacity int
	held     atomic.Int64
}

// NewGate creates a gate with the given number of permits.
// A non-positive capacity yields a gate that never admits anyone.
func NewGate(capacity int) *Gate {
	if capacity < 0 {
		capacity = 0
	}
	return &Gate{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: capacity,
	}
}

// Acquire blocks until a permit is available or ctx is done.
// On success the caller owns one permit and must Release it exactly once.
func (g *Gate) Acquire(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	g.held.Add(1)
	return nil
}

// TryAcquire takes a permit without blocking and reports whether it did.
func (g *Gate) TryAcquire() bool {
	if !g.sem.TryAcquire(1) {
		return false
	}
	g.held.Add(1)
	return true
}

// Release returns a permit. Releasing more permits than were acquired panics.
func (g *Gate) Release() {
	if g.held.Add(-1) < 0 {
		panic("game: gate released without a held permit")
	}
	g.sem.Release(1)
}

// Capacity returns the number of permits the gate was built with.
func (g *Gate) Capacity() int {
	return g.capacity
}

// InUse returns the number of permits currently held.
func (g *Gate) InUse() int {
	return int(g.held.Load())
}
