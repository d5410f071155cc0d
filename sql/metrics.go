package sql

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spacemeshos/go-ledger/metrics"
)

const subsystem = "database"

var (
	queryDuration = metrics.NewHistogramWithBuckets(
		"query_duration_seconds",
		subsystem,
		"Duration of the query in seconds",
		[]string{},
		prometheus.ExponentialBuckets(0.00001, 2, 20),
	).WithLabelValues()
	connWaitLatency = metrics.NewHistogramWithBuckets(
		"conn_wait_latency_seconds",
		subsystem,
		"Latency of waiting for a connection from the pool",
		[]string{},
		prometheus.ExponentialBuckets(0.00001, 2, 20),
	).WithLabelValues()
)
