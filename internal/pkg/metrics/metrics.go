// Package metrics defines and registers all custom Prometheus metrics for
// the NeuroCare portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "neurocare_portal"

// ── Upstream gateway metrics ─────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the remote detection service.
// Labels:
//   - operation: logical endpoint name (e.g. "login", "scan_mri")
//   - outcome: "success", "upstream_error" (non-2xx) or "network_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the detection service.",
	},
	[]string{"operation", "outcome"},
)

// UpstreamRequestDuration measures end-to-end latency per logical operation.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the detection service.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionsActive tracks sessions with an armed auto-logout timer.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of sessions currently holding a valid credential.",
	},
)

// AutoLogoutsTotal counts sessions terminated by credential expiry.
var AutoLogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auto_logouts_total",
		Help:      "Total number of sessions ended by the auto-logout timer.",
	},
)

// ── Audit metrics ────────────────────────────────────────────────────────────

// AuditRecordsTotal counts persisted audit entries.
// Labels:
//   - action: audit action name (e.g. "login", "scan_submitted")
//   - outcome: "success" or "failure" of the audited action itself
var AuditRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_records_total",
		Help:      "Total number of audit entries written.",
	},
	[]string{"action", "outcome"},
)

// AuditErrorsTotal counts audit entries that failed to persist.
var AuditErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit entries that failed processing.",
	},
	[]string{"reason"},
)

// AuditQueueDepth tracks entries waiting in each dispatcher worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending per dispatcher worker.",
	},
	[]string{"worker_id"},
)
