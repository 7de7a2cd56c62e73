package reaper

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/crewhub/accounts-system/internal/api/metrics"
	"github.com/crewhub/accounts-system/internal/core/ports"
)

const defaultInterval = 10 * time.Minute

// Reaper periodically deletes sessions past their expiration. Its deletions
// race harmlessly with logins and logouts: it only ever touches rows already
// expired.
type Reaper struct {
	auth     ports.AuthService
	interval time.Duration
	log      zerolog.Logger
}

// New creates a Reaper. If interval <= 0, defaultInterval is used.
func New(auth ports.AuthService, interval time.Duration, log zerolog.Logger) *Reaper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Reaper{auth: auth, interval: interval, log: log}
}

// Start launches the sweep loop in a goroutine. The loop stops when ctx is
// cancelled. One sweep runs immediately on start.
func (r *Reaper) Start(ctx context.Context) {
	go r.run(ctx)
}

func (r *Reaper) run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reaper) sweep(ctx context.Context) {
	count, err := r.auth.CleanExpiredSessions(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("session sweep failed")
		return
	}

	metrics.SessionsReapedTotal.Add(float64(count))
	if count > 0 {
		r.log.Info().Int64("deleted", count).Msg("expired sessions reaped")
	}
}
