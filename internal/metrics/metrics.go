// Package metrics defines the Prometheus collectors of the forecast service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Forecast outcomes used as the "outcome" label.
const (
	OutcomeSuccess          = "success"
	OutcomeCached           = "cached"
	OutcomeModelUnavailable = "model_unavailable"
	OutcomeInvalidDate      = "invalid_date"
	OutcomeInferenceFailed  = "inference_failed"
)

// Metrics groups the service collectors.
type Metrics struct {
	forecasts       *prometheus.CounterVec
	forecastLatency prometheus.Histogram
	forwardLatency  prometheus.Histogram
	modelReady      prometheus.Gauge
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		forecasts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "load_forecast_requests_total",
			Help: "Daily forecast requests by outcome.",
		}, []string{"outcome"}),
		forecastLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "load_forecast_duration_seconds",
			Help:    "Time to produce a daily forecast.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		forwardLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "load_forecast_forward_pass_seconds",
			Help:    "Time spent in a single model forward pass, including lock wait.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		modelReady: f.NewGauge(prometheus.GaugeOpts{
			Name: "load_forecast_model_ready",
			Help: "1 when the model artifacts loaded at startup, 0 otherwise.",
		}),
	}
}

// Forecast counts one request with the given outcome.
func (m *Metrics) Forecast(outcome string) {
	if m == nil {
		return
	}
	m.forecasts.WithLabelValues(outcome).Inc()
}

// ObserveForecast records the duration of a whole daily forecast.
func (m *Metrics) ObserveForecast(d time.Duration) {
	if m == nil {
		return
	}
	m.forecastLatency.Observe(d.Seconds())
}

// ObserveForward records the duration of one forward pass.
func (m *Metrics) ObserveForward(d time.Duration) {
	if m == nil {
		return
	}
	m.forwardLatency.Observe(d.Seconds())
}

// SetModelReady publishes the model readiness flag.
func (m *Metrics) SetModelReady(ready bool) {
	if m == nil {
		return
	}
	if ready {
		m.modelReady.Set(1)
	} else {
		m.modelReady.Set(0)
	}
}
