package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusCacheHits          *prometheus.CounterVec
	prometheusCacheMisses        *prometheus.CounterVec
	prometheusCacheStaleWrites   *prometheus.CounterVec
	prometheusCacheInvalidations *prometheus.CounterVec
)

var prometheusMetricsInitOnce sync.Once

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "cache",
			Name:      "hits",
			Help:      "Number of cache hits",
		},
		[]string{"cache"},
	)

	prometheusCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "cache",
			Name:      "misses",
			Help:      "Number of cache misses",
		},
		[]string{"cache"},
	)

	prometheusCacheStaleWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "cache",
			Name:      "stale_writes",
			Help:      "Number of inserts dropped because the cache was invalidated after the read started",
		},
		[]string{"cache"},
	)

	prometheusCacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "cache",
			Name:      "invalidations",
			Help:      "Number of full cache invalidations",
		},
		[]string{"cache"},
	)
}
