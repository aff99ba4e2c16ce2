package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// advisory service.
type Metrics struct {
	PlansComputed *prometheus.CounterVec // labels: mode={historical,forecast}, outcome={success,no_data,error}
	PlanDuration  prometheus.Histogram
	ServiceReady  prometheus.Gauge

	// Weather provider metrics.
	ProviderRequests *prometheus.CounterVec   // labels: provider, outcome={success,error,empty}
	ProviderDuration *prometheus.HistogramVec // labels: provider

	// Plan publishing metrics.
	PlansPublished *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PlansComputed,
		m.PlanDuration,
		m.ServiceReady,
		m.ProviderRequests,
		m.ProviderDuration,
		m.PlansPublished,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PlansComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spray_advisor",
			Name:      "plans_total",
			Help:      "Total plan computations by mode and outcome.",
		}, []string{"mode", "outcome"}),
		PlanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "spray_advisor",
			Name:      "plan_duration_seconds",
			Help:      "Duration of a complete fetch-aggregate-schedule cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ServiceReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "spray_advisor",
			Name:      "ready",
			Help:      "1 once the service has produced at least one plan.",
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spray_advisor",
			Name:      "provider_requests_total",
			Help:      "Weather provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "spray_advisor",
			Name:      "provider_request_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		PlansPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spray_advisor",
			Name:      "plans_published_total",
			Help:      "Plans published to the sink topic by outcome.",
		}, []string{"outcome"}),
	}
}
