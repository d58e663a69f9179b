// Package metrics exposes fulfillment counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"order-fulfillment/internal/domain/payment"
	"order-fulfillment/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "order_fulfillment"

// Registry owns its collectors so tests can build as many as they need.
type Registry struct {
	reg           *prometheus.Registry
	notifications *prometheus.CounterVec
	expired       *prometheus.CounterVec
	payments      *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Registry{
		reg: reg,
		notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Peer notifications by event and outcome.",
		}, []string{"event", "outcome"}),
		expired: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_expired_total",
			Help:      "Aggregates expired by the reconciliation sweep.",
		}, []string{"aggregate"}),
		payments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_processed_total",
			Help:      "Gateway payment attempts by method and outcome.",
		}, []string{"method", "outcome"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "Duration of HTTP requests in ms.",
			Buckets:   []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
		}, []string{"method", "path"}),
	}
}

var _ shared.Metrics = (*Registry)(nil)

func (r *Registry) NotificationSent(event, outcome string) {
	r.notifications.WithLabelValues(event, outcome).Inc()
}

func (r *Registry) Expired(aggregate string, n int) {
	if n <= 0 {
		return
	}
	r.expired.WithLabelValues(aggregate).Add(float64(n))
}

func (r *Registry) PaymentProcessed(method payment.Method, outcome string) {
	r.payments.WithLabelValues(method.String(), outcome).Inc()
}

// Handler serves the exposition format for /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Middleware records request count and latency per route template.
func (r *Registry) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		r.httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		r.httpDuration.WithLabelValues(c.Request.Method, path).Observe(float64(time.Since(start).Milliseconds()))
	}
}
