package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Forecast(OutcomeSuccess)
	m.Forecast(OutcomeSuccess)
	m.Forecast(OutcomeInvalidDate)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.forecasts.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.forecasts.WithLabelValues(OutcomeInvalidDate)))

	m.SetModelReady(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.modelReady))
	m.SetModelReady(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.modelReady))

	m.ObserveForecast(20 * time.Millisecond)
	m.ObserveForward(time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "load_forecast_requests_total")
	assert.Contains(t, names, "load_forecast_duration_seconds")
	assert.Contains(t, names, "load_forecast_forward_pass_seconds")
	assert.Contains(t, names, "load_forecast_model_ready")
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Forecast(OutcomeSuccess)
		m.ObserveForecast(time.Second)
		m.ObserveForward(time.Second)
		m.SetModelReady(true)
	})
}
