package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fare_engine",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	// Fare estimation and promo validation are pure arithmetic plus at most
	// one DB round trip, so the buckets skew toward the low milliseconds.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fare_engine",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route", "status"},
	)
)

// Metrics records per-route request counts and latencies. Unmatched paths are
// collapsed into a single label so probes cannot explode the cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		requestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		requestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}
