package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mlregistry"

// Metrics holds the registry's prometheus collectors.
type Metrics struct {
	requests          *prometheus.CounterVec
	duration          *prometheus.HistogramVec
	modelsTotal       prometheus.Gauge
	modelsByStatus    *prometheus.GaugeVec
	modelsByFramework *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		modelsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "models_total",
			Help:      "Registered models.",
		}),
		modelsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "models",
			Help:      "Registered models by deployment status.",
		}, []string{"status"}),
		modelsByFramework: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "models_by_framework",
			Help:      "Registered models by framework.",
		}, []string{"framework"}),
	}

	reg.MustRegister(m.requests, m.duration, m.modelsTotal, m.modelsByStatus, m.modelsByFramework)
	return m
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveStats publishes a stats snapshot. Labels missing from the snapshot
// are dropped so gauges never report stale counts.
func (m *Metrics) ObserveStats(total int64, byStatus, byFramework map[string]int64) {
	m.modelsTotal.Set(float64(total))

	m.modelsByStatus.Reset()
	for status, n := range byStatus {
		m.modelsByStatus.WithLabelValues(status).Set(float64(n))
	}

	m.modelsByFramework.Reset()
	for framework, n := range byFramework {
		m.modelsByFramework.WithLabelValues(framework).Set(float64(n))
	}
}
