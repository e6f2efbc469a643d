// Package poller implements the client synchronization loop: a
// fixed-interval ticker that fetches a fresh snapshot and replaces the
// local state wholesale. Responses are sequenced so that a slow fetch
// overtaken by a later one is dropped instead of rolling state back.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// PollInterval is the fixed delay between snapshot fetches. Ticks fire on
// the interval regardless of how long the previous fetch took.
const PollInterval = 10 * time.Second

// FetchFunc retrieves a fresh snapshot of the synchronized state.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// ApplyFunc replaces the local state with the given snapshot.
type ApplyFunc[T any] func(snapshot T)

// Poller keeps a local view in sync by polling. Each fetch is stamped
// with a monotonically increasing sequence; a snapshot is applied only
// when its sequence exceeds the last applied one, so out-of-order
// completions can never regress the view.
type Poller[T any] struct {
	fetch    FetchFunc[T]
	apply    ApplyFunc[T]
	interval time.Duration
	logger   *slog.Logger

	seq atomic.Int64

	mu          sync.Mutex
	lastApplied int64

	staleDropped atomic.Int64
}

// New creates a poller over the given fetch and apply callbacks. A
// non-positive interval falls back to PollInterval.
func New[T any](fetch FetchFunc[T], apply ApplyFunc[T], interval time.Duration, logger *slog.Logger) *Poller[T] {
	if interval <= 0 {
		interval = PollInterval
	}
	return &Poller[T]{
		fetch:    fetch,
		apply:    apply,
		interval: interval,
		logger:   logger.With("component", "sync_poller"),
	}
}

// Start runs the poll loop until the context is cancelled. The first
// fetch fires immediately; later ones on every tick. Each fetch runs in
// its own goroutine so a slow response never delays the next tick.
// Start blocks; run it on a dedicated goroutine.
func (p *Poller[T]) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	go p.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go p.poll(ctx)
		}
	}
}

func (p *Poller[T]) poll(ctx context.Context) {
	seq := p.seq.Add(1)

	snapshot, err := p.fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("snapshot fetch failed", "seq", seq, "error", err)
		}
		return
	}
	if ctx.Err() != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq <= p.lastApplied {
		p.staleDropped.Add(1)
		return
	}

	p.lastApplied = seq
	p.apply(snapshot)
}

// StaleDropped reports how many responses were dropped for arriving
// after a later fetch had already been applied.
func (p *Poller[T]) StaleDropped() int64 {
	return p.staleDropped.Load()
}
