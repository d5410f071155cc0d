package ledger

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spacemeshos/go-ledger/metrics"
)

const subsystem = "engine"

var (
	submitted = metrics.NewCounter(
		"transactions",
		subsystem,
		"number of submitted transactions by type and outcome",
		[]string{"type", "reason"},
	)
	journalFailures = metrics.NewCounter(
		"journal_failures",
		subsystem,
		"number of applied transactions that were not archived",
		[]string{},
	).WithLabelValues()
	accountsGauge = metrics.NewSimpleGauge(
		"accounts",
		subsystem,
		"number of accounts known to the ledger",
	)
	historyGauge = metrics.NewSimpleGauge(
		"history_length",
		subsystem,
		"number of applied transactions",
	)
	supplyGauge = metrics.NewSimpleGauge(
		"total_supply",
		subsystem,
		"sum of all balances",
	)
	submitDuration = metrics.NewHistogramWithBuckets(
		"submit_duration_seconds",
		subsystem,
		"time spent in submit including waiting for the lock",
		[]string{"type"},
		prometheus.ExponentialBuckets(0.00001, 4, 10),
	)
)

func reportState(s *state) {
	accountsGauge.Set(float64(len(s.accounts)))
	historyGauge.Set(float64(len(s.history)))
	supplyGauge.Set(float64(s.supply))
}
