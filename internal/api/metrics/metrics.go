// Package metrics defines and registers the custom Prometheus metrics for the
// identity and resource services. It is the single source of truth for metric
// names, labels and help strings.
//
// Metrics are registered with the default registry on package init via
// promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smartoffice"

// ── Identity metrics ──────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "invalid_credentials", "validation", "duplicate" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// ── Token and authorization metrics ───────────────────────────────────────────

// TokenValidationsTotal counts bearer token checks.
// Label:
//   - result: "valid", "missing", "malformed", "invalid_signature",
//     "invalid_issuer_or_audience", "expired", "not_yet_valid" or "invalid_claims"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of bearer token validations, by result.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts role gate decisions.
// Labels:
//   - requirement: "authenticated" or "role:<Role>"
//   - decision: "allow" or "deny"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by requirement and decision.",
	},
	[]string{"requirement", "decision"},
)

// ── Asset metrics ─────────────────────────────────────────────────────────────

// AssetMutationsTotal counts successful asset writes.
// Label:
//   - action: "created", "updated", "deleted" or "replayed"
var AssetMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asset_mutations_total",
		Help:      "Total number of asset mutations, by action.",
	},
	[]string{"action"},
)

// AuditQueueDepth tracks events waiting in each audit worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit events by final outcome.
// Label:
//   - result: "stored", "failed" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events handled by the dispatcher, by result.",
	},
	[]string{"result"},
)

// AuditWriteDuration measures how long persisting one audit event takes.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of a single audit event write.",
		Buckets:   prometheus.DefBuckets,
	},
)
