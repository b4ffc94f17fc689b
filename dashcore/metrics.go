package dashcore

import (
	"strconv"
	"sync"

	"github.com/dashbook/dashbook/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusDashcoreCalls        *prometheus.CounterVec
	prometheusDashcoreCallDuration *prometheus.HistogramVec
)

var prometheusMetricsInitOnce sync.Once

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusDashcoreCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "dashcore",
			Name:      "calls",
			Help:      "Number of json-rpc calls made to the node, by method and result category",
		},
		[]string{"method", "result"},
	)

	prometheusDashcoreCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dashbook",
			Subsystem: "dashcore",
			Name:      "call_duration_seconds",
			Help:      "Duration of json-rpc calls made to the node",
			Buckets:   util.MetricsBucketsMilliSeconds,
		},
		[]string{"method"},
	)
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
