package live

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusLiveEventsPublished *prometheus.CounterVec
	prometheusLiveEventsDropped   prometheus.Counter
	prometheusLiveSubscribers     prometheus.Gauge
	prometheusLivePollerTicks     prometheus.Counter
	prometheusLivePollerErrors    *prometheus.CounterVec
	prometheusLiveTipHeight       prometheus.Gauge
)

var prometheusMetricsInitOnce sync.Once

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusLiveEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "live",
			Name:      "events_published",
			Help:      "Number of events published on the live bus",
		},
		[]string{"type"},
	)

	prometheusLiveEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "live",
			Name:      "events_dropped",
			Help:      "Number of events lost by lagging subscribers",
		},
	)

	prometheusLiveSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dashbook",
			Subsystem: "live",
			Name:      "subscribers",
			Help:      "Number of live bus subscribers",
		},
	)

	prometheusLivePollerTicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "live",
			Name:      "poller_ticks",
			Help:      "Number of poller ticks",
		},
	)

	prometheusLivePollerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "live",
			Name:      "poller_errors",
			Help:      "Number of failed node calls made by the poller",
		},
		[]string{"method"},
	)

	prometheusLiveTipHeight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dashbook",
			Subsystem: "live",
			Name:      "tip_height",
			Help:      "Last tip height seen by the poller",
		},
	)
}
