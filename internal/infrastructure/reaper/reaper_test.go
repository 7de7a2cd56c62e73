package reaper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/crewhub/accounts-system/internal/core/domain"
	"github.com/crewhub/accounts-system/internal/core/ports"
)

type sweepRecorder struct {
	calls chan struct{}
	err   error
}

func (s *sweepRecorder) CleanExpiredSessions(context.Context) (int64, error) {
	s.calls <- struct{}{}
	return 2, s.err
}

func (s *sweepRecorder) Login(context.Context, *domain.SessionWithUser, ports.LoginInput) (*ports.LoginResult, error) {
	panic("not used")
}

func (s *sweepRecorder) Logout(context.Context, *domain.Session) error {
	panic("not used")
}

func (s *sweepRecorder) Authenticate(context.Context, string) (*domain.SessionWithUser, error) {
	panic("not used")
}

func waitForSweep(t *testing.T, calls <-chan struct{}) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for a sweep")
	}
}

func TestReaper_SweepsImmediatelyAndOnTick(t *testing.T) {
	rec := &sweepRecorder{calls: make(chan struct{}, 8)}
	r := New(rec, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	// One sweep fires on start, the rest on the ticker.
	waitForSweep(t, rec.calls)
	waitForSweep(t, rec.calls)
	waitForSweep(t, rec.calls)
}

func TestReaper_StopsOnCancel(t *testing.T) {
	rec := &sweepRecorder{calls: make(chan struct{}, 8)}
	r := New(rec, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	waitForSweep(t, rec.calls)
	cancel()

	// Drain anything in flight, then verify the loop has gone quiet.
	time.Sleep(50 * time.Millisecond)
	for len(rec.calls) > 0 {
		<-rec.calls
	}
	select {
	case <-rec.calls:
		t.Fatalf("sweep fired after cancellation")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestReaper_KeepsRunningAfterSweepError(t *testing.T) {
	rec := &sweepRecorder{calls: make(chan struct{}, 8), err: errors.New("db down")}
	r := New(rec, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	waitForSweep(t, rec.calls)
	waitForSweep(t, rec.calls)
}

func TestReaper_DefaultInterval(t *testing.T) {
	r := New(&sweepRecorder{calls: make(chan struct{}, 1)}, 0, zerolog.Nop())
	if r.interval != defaultInterval {
		t.Fatalf("expected default interval, got %v", r.interval)
	}
}
