package game

import (
	"context"
	"sync/atomic"
)

// TerminationFlag is the process-wide cooperative shutdown signal.
// It is set at most once and never cleared. Besides the atomic flag it
// exposes a context that is cancelled when the flag is set, so blocking
// waits (gate acquire, sleeps, key reads) can be abandoned promptly.
type TerminationFlag struct {
	set    atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc
}

// NewTerminationFlag creates a flag whose context derives from parent.
// Cancelling parent is observed the same way as calling Set.
func NewTerminationFlag(parent context.Context) *TerminationFlag {
	ctx, cancel := context.WithCancel(parent)
	return &TerminationFlag{ctx: ctx, cancel: cancel}
}

// Set raises the flag. It reports whether this call was the one that set it.
func (f *TerminationFlag) Set() bool {
	first := f.set.CompareAndSwap(false, true)
	f.cancel()
	return first
}

// IsSet reports whether the flag has been raised or the parent context ended.
func (f *TerminationFlag) IsSet() bool {
	return f.set.Load() || f.ctx.Err() != nil
}

// Done returns a channel that is closed once the flag is set.
func (f *TerminationFlag) Done() <-chan struct{} {
	return f.ctx.Done()
}

// Context returns the cancellation context tied to the flag.
func (f *TerminationFlag) Context() context.Context {
	return f.ctx
}
