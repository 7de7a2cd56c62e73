package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func newTestThrottle(t *testing.T, window time.Duration) (*TouchThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewTouchThrottle(client, window, zerolog.Nop()), mr
}

func TestTouchThrottle_CoalescesWithinWindow(t *testing.T) {
	throttle, mr := newTestThrottle(t, time.Minute)
	ctx := context.Background()

	if !throttle.Allow(ctx, "s1") {
		t.Fatalf("first touch must be allowed")
	}
	if throttle.Allow(ctx, "s1") {
		t.Fatalf("second touch within the window must be throttled")
	}

	mr.FastForward(time.Minute + time.Second)
	if !throttle.Allow(ctx, "s1") {
		t.Fatalf("touch after the window must be allowed again")
	}
}

func TestTouchThrottle_PerSessionKeys(t *testing.T) {
	throttle, _ := newTestThrottle(t, time.Minute)
	ctx := context.Background()

	if !throttle.Allow(ctx, "s1") {
		t.Fatalf("first touch for s1 must be allowed")
	}
	if !throttle.Allow(ctx, "s2") {
		t.Fatalf("throttling one session must not affect another")
	}
}

func TestTouchThrottle_AllowsOnRedisFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	throttle := NewTouchThrottle(client, time.Minute, zerolog.Nop())

	mr.Close()
	client.Close()

	if !throttle.Allow(context.Background(), "s1") {
		t.Fatalf("a broken throttle must not suppress last-seen writes")
	}
}
