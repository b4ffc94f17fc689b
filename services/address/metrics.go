package address

import (
	"sync"

	"github.com/dashbook/dashbook/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusAddressSnapshotDuration prometheus.Histogram
	prometheusAddressStrategy         *prometheus.CounterVec
	prometheusAddressRowFailures      prometheus.Counter
	prometheusAddressUtxoFailures     prometheus.Counter
)

var prometheusMetricsInitOnce sync.Once

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusAddressSnapshotDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "dashbook",
			Subsystem: "address",
			Name:      "snapshot_duration_seconds",
			Help:      "Duration of address snapshot aggregation",
			Buckets:   util.MetricsBucketsMilliLongSeconds,
		},
	)

	prometheusAddressStrategy = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "address",
			Name:      "strategy",
			Help:      "Number of snapshots computed with each delta strategy",
		},
		[]string{"strategy"},
	)

	prometheusAddressRowFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "address",
			Name:      "row_failures",
			Help:      "Number of history rows degraded to a zero delta",
		},
	)

	prometheusAddressUtxoFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "address",
			Name:      "utxo_failures",
			Help:      "Number of utxo fetches that failed and were returned empty",
		},
	)
}
