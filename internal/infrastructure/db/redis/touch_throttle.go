package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultTouchWindow = time.Minute

// TouchThrottle coalesces last-seen writes so that each session hits the
// store at most once per window. Backed by SetNX with a TTL; key format:
// touch:<session_id>.
type TouchThrottle struct {
	client *redis.Client
	window time.Duration
	log    zerolog.Logger
}

// NewTouchThrottle wraps the given Redis client. A window <= 0 falls back to
// one minute.
func NewTouchThrottle(client *redis.Client, window time.Duration, log zerolog.Logger) *TouchThrottle {
	if window <= 0 {
		window = defaultTouchWindow
	}
	return &TouchThrottle{client: client, window: window, log: log}
}

// Allow reports whether the session's last-seen should be written now. On a
// Redis failure it answers true; the throttle never gates the touch.
func (t *TouchThrottle) Allow(ctx context.Context, sessionID string) bool {
	ok, err := t.client.SetNX(ctx, "touch:"+sessionID, "1", t.window).Result()
	if err != nil {
		t.log.Warn().Err(err).Str("session_id", sessionID).Msg("touch throttle check failed")
		return true
	}
	return ok
}
