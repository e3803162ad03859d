// Package metrics defines and registers all custom Prometheus metrics for
// courseboard. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time;
// the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "courseboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LegacyMigrationsTotal counts plaintext credentials upgraded to bcrypt on login.
var LegacyMigrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "legacy_credential_migrations_total",
		Help:      "Total number of legacy plaintext credentials migrated to bcrypt.",
	},
)

// RegistrationsTotal counts new self-service registrations.
// Label:
//   - role: the role assigned after allow-list parsing ("teacher", "learner")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of completed registrations, by assigned role.",
	},
	[]string{"role"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsIssuedTotal counts sessions established on successful login.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of sessions issued.",
	},
)

// SessionsDestroyedTotal counts sessions explicitly invalidated on logout.
// Sessions that simply expire are reclaimed by the store and not counted here.
var SessionsDestroyedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_destroyed_total",
		Help:      "Total number of sessions destroyed by logout.",
	},
)

// ── Cascade-delete metrics ────────────────────────────────────────────────────

// CascadeSweepsTotal counts owned-course sweeps triggered by account deletion.
// Label:
//   - result: "inline" (first attempt succeeded), "retried" (background worker
//     completed it), "dropped" (queue full), "failed" (retries exhausted)
var CascadeSweepsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_sweeps_total",
		Help:      "Total number of owned-course cascade sweeps, by result.",
	},
	[]string{"result"},
)
