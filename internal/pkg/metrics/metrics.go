// Package metrics defines and registers all custom Prometheus metrics for the
// CMS API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default registry at package init through
// promauto; the /metrics endpoint exposes them alongside the echo request
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cms"

// ── View counter ──────────────────────────────────────────────────────────────

// ViewIncrementsTotal counts background view increments by outcome.
// Label:
//   - result: "ok", "error" or "dropped"
var ViewIncrementsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_increments_total",
		Help:      "Total number of view increments, labelled by result (ok/error/dropped).",
	},
	[]string{"result"},
)

// ViewQueueDepth tracks the number of increments waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1")
var ViewQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "view_queue_depth",
		Help:      "Current number of view increments pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Access control ────────────────────────────────────────────────────────────

// AccessDeniedTotal counts policy denials.
// Labels:
//   - collection: "posts", "users" or "media"
//   - operation: "read", "create", "update" or "delete"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of operations refused by an access policy.",
	},
	[]string{"collection", "operation"},
)

// ── Content ───────────────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created posts.
// Label:
//   - status: initial status, "draft" or "published"
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created, by initial status.",
	},
	[]string{"status"},
)

// LoginFailuresTotal counts rejected logins.
// Label:
//   - reason: "bad_password", "locked" or "unknown_user"
var LoginFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of failed login attempts, by reason.",
	},
	[]string{"reason"},
)
