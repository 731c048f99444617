// Package metrics exposes Prometheus counters for renders and provider calls.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "render_api"

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Collector owns a private registry so tests can build as many as they like.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry         *prometheus.Registry
	rendersTotal     *prometheus.CounterVec
	attemptsTotal    *prometheus.CounterVec
	attemptDuration  *prometheus.HistogramVec
	tempCleanupFails prometheus.Counter
}

// NewCollector registers the render metrics plus the Go runtime collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		rendersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "renders_total",
				Help:      "Render requests by final outcome.",
			},
			[]string{"outcome"},
		),
		attemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_attempts_total",
				Help:      "Calls made to image providers.",
			},
			[]string{"provider", "outcome"},
		),
		attemptDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_attempt_duration_seconds",
				Help:      "Latency of image provider calls.",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
			},
			[]string{"provider"},
		),
		tempCleanupFails: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "temp_cleanup_failures_total",
				Help:      "Temporary uploads that could not be removed.",
			},
		),
	}
	reg.MustRegister(
		c.rendersTotal,
		c.attemptsTotal,
		c.attemptDuration,
		c.tempCleanupFails,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveRender counts a finished render request.
func (c *Collector) ObserveRender(outcome string) {
	if c == nil {
		return
	}
	c.rendersTotal.WithLabelValues(outcome).Inc()
}

// ObserveAttempt counts one provider call and its latency.
func (c *Collector) ObserveAttempt(provider, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.attemptsTotal.WithLabelValues(provider, outcome).Inc()
	c.attemptDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// ObserveCleanupFailure counts a temp file that survived its request.
func (c *Collector) ObserveCleanupFailure() {
	if c == nil {
		return
	}
	c.tempCleanupFails.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
