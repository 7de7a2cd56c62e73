// Package metrics defines and registers all custom Prometheus metrics for the
// accounts API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default Prometheus registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// ── Login metrics ─────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// SessionRotationsTotal counts sessions rotated in place versus created fresh
// during login.
// Label:
//   - kind: "rotated" (existing session reused) or "created"
var SessionRotationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_rotations_total",
		Help:      "Total number of sessions established at login, by kind (rotated/created).",
	},
	[]string{"kind"},
)

// ── Request authentication metrics ────────────────────────────────────────────

// AuthRequestsTotal counts token resolutions performed by the auth middleware.
// Label:
//   - result: "ok", "missing_token", or "rejected"
var AuthRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_requests_total",
		Help:      "Total number of per-request token resolutions, labelled by result.",
	},
	[]string{"result"},
)

// ── Reaper metrics ────────────────────────────────────────────────────────────

// SessionsReapedTotal counts expired sessions removed by the periodic sweep.
var SessionsReapedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_reaped_total",
		Help:      "Total number of expired sessions deleted by the reaper.",
	},
)
