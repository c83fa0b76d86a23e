package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

type recordingConn struct {
	subject string
	data    []byte
	err     error
}

func (c *recordingConn) Publish(subject string, data []byte) error {
	c.subject = subject
	c.data = data
	return c.err
}

func TestPublisher_PublishForecast(t *testing.T) {
	conn := &recordingConn{}
	p := NewPublisher(conn, SubjectForecastCompleted)

	ev := model.ForecastEvent{
		ID:          "e1",
		Date:        "2025-07-15",
		Forecast:    model.DailyForecast{PeakLoad: 17000, PeakHour: 18},
		Fingerprint: "abc",
		At:          time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishForecast(context.Background(), ev))
	assert.Equal(t, "forecast.completed", conn.subject)

	var got model.ForecastEvent
	require.NoError(t, json.Unmarshal(conn.data, &got))
	assert.Equal(t, ev, got)
}

func TestPublisher_Errors(t *testing.T) {
	conn := &recordingConn{err: errors.New("nats: connection closed")}
	p := NewPublisher(conn, SubjectForecastCompleted)
	err := p.PublishForecast(context.Background(), model.ForecastEvent{ID: "e2"})
	assert.ErrorContains(t, err, "connection closed")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	conn.data = nil
	err = p.PublishForecast(ctx, model.ForecastEvent{ID: "e3"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, conn.data)
}

func TestConnect_Unreachable(t *testing.T) {
	_, _, err := Connect(Config{URL: "nats://127.0.0.1:1", ConnectTimeout: 200 * time.Millisecond})
	assert.Error(t, err)
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{URL: "nats://localhost:4222"}.withDefaults()
	assert.Equal(t, "forecaster", cfg.Name)
	assert.Equal(t, 2*time.Second, cfg.ReconnectWait)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, nats.DefaultMaxReconnect, cfg.MaxReconnects, "unset must not disable reconnects")

	forever := Config{MaxReconnects: -1}.withDefaults()
	assert.Equal(t, -1, forever.MaxReconnects)

	custom := Config{Name: "svc", MaxReconnects: 5, ReconnectWait: time.Second}.withDefaults()
	assert.Equal(t, "svc", custom.Name)
	assert.Equal(t, 5, custom.MaxReconnects)
	assert.Equal(t, time.Second, custom.ReconnectWait)
}
