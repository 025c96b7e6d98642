package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "code"},
	)

	requestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "code"},
	)

	requestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)
)

// Infra endpoints are excluded to keep cardinality down; probe traffic has no
// business value.
func shouldCollectMetrics(path string) bool {
	for _, skip := range []string{"/health", "/metrics"} {
		if strings.HasPrefix(path, skip) {
			return false
		}
	}
	return true
}

func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		method := c.Request.Method
		// Route template, not the raw URL, so path params don't explode labels.
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		if !shouldCollectMetrics(path) {
			c.Next()
			return
		}

		requestsInFlight.WithLabelValues(method, path).Inc()

		c.Next()

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(c.Writer.Status())

		requestDuration.WithLabelValues(method, path, code).Observe(duration)
		requestTotal.WithLabelValues(method, path, code).Inc()
		requestsInFlight.WithLabelValues(method, path).Dec()
	}
}
