package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the registry's Prometheus collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Domain metrics
	PublishesTotal     *prometheus.CounterVec
	RateLimitedTotal   *prometheus.CounterVec
	ReviewMutations    *prometheus.CounterVec
	WebhookDeliveries  *prometheus.CounterVec
	WebhookDeliveryDur prometheus.Histogram
}

// New creates collectors on a private registry so several instances can coexist in tests.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registry_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "registry_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		PublishesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registry_publishes_total",
				Help: "Publish attempts by outcome",
			},
			[]string{"result"},
		),
		RateLimitedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registry_rate_limited_total",
				Help: "Requests rejected by a rate limiter",
			},
			[]string{"class"},
		),
		ReviewMutations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registry_review_mutations_total",
				Help: "Review upserts and deletes",
			},
			[]string{"op"},
		),
		WebhookDeliveries: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registry_webhook_deliveries_total",
				Help: "Webhook delivery attempts by event and outcome",
			},
			[]string{"event", "outcome"},
		),
		WebhookDeliveryDur: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "registry_webhook_delivery_duration_seconds",
				Help:    "Outbound webhook call duration in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Metrics) ObserveRequest(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *Metrics) ObservePublish(result string) {
	if m == nil {
		return
	}
	m.PublishesTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRateLimited(class string) {
	if m == nil {
		return
	}
	m.RateLimitedTotal.WithLabelValues(class).Inc()
}

func (m *Metrics) ObserveReviewMutation(op string) {
	if m == nil {
		return
	}
	m.ReviewMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveDelivery(event, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.WebhookDeliveries.WithLabelValues(event, outcome).Inc()
	m.WebhookDeliveryDur.Observe(d.Seconds())
}
