package poller_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fooddelivery/internal/poller"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestPoller_AppliesSnapshotsInSequence(t *testing.T) {
	var fetches atomic.Int64
	applied := make(chan int64, 16)

	fetch := func(_ context.Context) (int64, error) {
		return fetches.Add(1), nil
	}
	apply := func(snapshot int64) {
		applied <- snapshot
	}

	p := poller.New(fetch, apply, 5*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	var snapshots []int64
	for len(snapshots) < 3 {
		select {
		case s := <-applied:
			snapshots = append(snapshots, s)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for snapshots")
		}
	}
	cancel()
	<-done

	// Later applies always carry later snapshots.
	for i := 1; i < len(snapshots); i++ {
		assert.Greater(t, snapshots[i], snapshots[i-1])
	}
	assert.Equal(t, int64(0), p.StaleDropped())
}

func TestPoller_DropsOvertakenResponse(t *testing.T) {
	// The first fetch stalls until the second one has been applied, then
	// returns. Its response is stale by then and must be dropped.
	firstMayReturn := make(chan struct{})
	var fetches atomic.Int64

	var mu sync.Mutex
	var applied []string

	fetch := func(_ context.Context) (string, error) {
		n := fetches.Add(1)
		if n == 1 {
			<-firstMayReturn
			return "stale", nil
		}
		return "fresh", nil
	}
	apply := func(snapshot string) {
		mu.Lock()
		defer mu.Unlock()
		applied = append(applied, snapshot)
		if snapshot == "fresh" {
			close(firstMayReturn)
		}
	}

	p := poller.New(fetch, apply, 5*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return p.StaleDropped() >= 1
	}, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.NotContains(t, applied, "stale")
	assert.Contains(t, applied, "fresh")
}

func TestPoller_FetchErrorDoesNotStopTheLoop(t *testing.T) {
	var fetches atomic.Int64
	applied := make(chan string, 16)

	fetch := func(_ context.Context) (string, error) {
		if fetches.Add(1) == 1 {
			return "", errors.New("backend unavailable")
		}
		return "recovered", nil
	}
	apply := func(snapshot string) {
		applied <- snapshot
	}

	p := poller.New(fetch, apply, 5*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	select {
	case s := <-applied:
		assert.Equal(t, "recovered", s)
	case <-time.After(2 * time.Second):
		t.Fatal("poller never recovered from a failed fetch")
	}
	cancel()
	<-done
}

func TestPoller_CancellationStopsPromptly(t *testing.T) {
	fetch := func(_ context.Context) (int, error) { return 1, nil }
	apply := func(_ int) {}

	p := poller.New(fetch, apply, time.Hour, discardLogger())

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop on context cancellation")
	}
}

func TestPoller_CancelledFetchIsNotApplied(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())

	fetched := make(chan struct{})
	fetch := func(ctx context.Context) (int, error) {
		close(fetched)
		<-ctx.Done()
		return 42, nil
	}

	var appliedCount atomic.Int64
	apply := func(_ int) { appliedCount.Add(1) }

	p := poller.New(fetch, apply, time.Hour, discardLogger())

	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	<-fetched
	cancel()
	<-done

	// Give the in-flight poll goroutine a beat to finish.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(0), appliedCount.Load())
}

func TestPollIntervalIsTenSeconds(t *testing.T) {
	assert.Equal(t, 10*time.Second, poller.PollInterval)
}
