package game

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Rand is the source of randomness for mole timing.
// Tests substitute a deterministic implementation.
type Rand interface {
	// Duration returns a uniformly random duration in [lo, hi], whole milliseconds.
	Duration(lo, hi time.Duration) time.Duration
	// Flip returns a fair coin toss.
	Flip() bool
}

// lockedRand is a math/rand source shared by all moles.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand returns a goroutine-safe Rand seeded with seed.
// A zero seed uses the current time.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Duration(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	span := int64((hi - lo) / time.Millisecond)

	r.mu.Lock()
	n := r.rng.Int63n(span + 1)
	r.mu.Unlock()

	return lo + time.Duration(n)*time.Millisecond
}

func (r *lockedRand) Flip() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(2) == 1
}

// sleep waits for d or until ctx is done. It reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return ctx.Err() == nil
	case <-ctx.Done():
		return false
	}
}
