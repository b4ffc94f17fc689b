package httpimpl

import (
	"strconv"
	"sync"
	"time"

	"github.com/dashbook/dashbook/util"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusAssetHTTPRequests        *prometheus.CounterVec
	prometheusAssetHTTPRequestDuration *prometheus.HistogramVec
	prometheusAssetWSConnections       prometheus.Gauge
	prometheusAssetWSEvents            *prometheus.CounterVec
	prometheusAssetWSLagged            prometheus.Counter
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusAssetHTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "asset",
			Name:      "http_requests",
			Help:      "Number of HTTP requests by route and status",
		},
		[]string{
			"route",  // echo route pattern
			"status", // response status code
		},
	)

	prometheusAssetHTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dashbook",
			Subsystem: "asset",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route",
			Buckets:   util.MetricsBucketsMilliSeconds,
		},
		[]string{"route"},
	)

	prometheusAssetWSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dashbook",
			Subsystem: "asset",
			Name:      "ws_connections",
			Help:      "Number of open live event WebSocket connections",
		},
	)

	prometheusAssetWSEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "asset",
			Name:      "ws_events",
			Help:      "Number of live events written to WebSocket clients",
		},
		[]string{"type"},
	)

	prometheusAssetWSLagged = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dashbook",
			Subsystem: "asset",
			Name:      "ws_lagged_events",
			Help:      "Number of live events WebSocket clients missed by lagging",
		},
	)
}

// requestMetricsMiddleware counts every routed request once it has been written.
func requestMetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			route := c.Path()

			prometheusAssetHTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
			prometheusAssetHTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
