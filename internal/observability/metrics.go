package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOpLatency records in-memory store operation latency by operation and table.
	StoreOpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "plaza_store_op_latency_seconds",
		Help:    "Store operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LikeToggles counts like toggles by outcome (liked / unliked).
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plaza_like_toggles_total",
		Help: "Total number of like toggles by outcome",
	}, []string{"outcome"})

	// CascadeRowsRemoved counts rows removed by cascade deletes per table.
	CascadeRowsRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plaza_cascade_rows_removed_total",
		Help: "Total number of rows removed by cascade deletes",
	}, []string{"table"})

	// PostViews counts view-count bumps from detail reads.
	PostViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plaza_post_views_total",
		Help: "Total number of post detail views",
	})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plaza_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// ObserveStoreOp records the latency of a store operation.
func ObserveStoreOp(operation, table string, start time.Time) {
	StoreOpLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackStoreOp returns a function that records operation latency when called
// (e.g. defer).
func TrackStoreOp(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveStoreOp(operation, table, start)
	}
}
