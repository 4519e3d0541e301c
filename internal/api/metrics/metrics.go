// Package metrics defines and registers all custom Prometheus metrics for
// the marketplace API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry via
// promauto at package load.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Operation metrics ────────────────────────────────────────────────────────

// OperationDuration measures how long a single core operation takes,
// labelled by the operation name (e.g. "product.create", "user.update").
// This is the explicit replacement for per-endpoint timing instrumentation.
var OperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Duration of core service operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// Time starts a timer for the named operation. Use as:
//
//	defer metrics.Time("product.create")()
func Time(operation string) func() {
	start := time.Now()
	return func() {
		OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// ── Business metrics ─────────────────────────────────────────────────────────

// ProductsCreatedTotal counts products created successfully.
var ProductsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products created.",
	},
)

// ProductsSoldTotal counts successful client assignments.
var ProductsSoldTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_sold_total",
		Help:      "Total number of client assignments (purchases).",
	},
)

// ProductsReturnedTotal counts client removals (return/refund workflow).
var ProductsReturnedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_returned_total",
		Help:      "Total number of client removals (returns).",
	},
)

// ValidationFailuresTotal counts role-constraint rejections.
// Label:
//   - reason: "not_found" (dangling user reference) or "role_mismatch"
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of role-constraint validation failures.",
	},
	[]string{"reason"},
)

// CascadeDeletesTotal counts documents removed by store-layer cascades.
// Label:
//   - entity: the entity type swept by the cascade ("user" or "product")
var CascadeDeletesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_deletes_total",
		Help:      "Total number of documents deleted by cascade policies.",
	},
	[]string{"entity"},
)
