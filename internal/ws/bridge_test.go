package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumesh-12/energy-demand-prediction/internal/forecast"
	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

var _ forecast.Publisher = (*Bridge)(nil)

func newTestBridge() (*Bridge, *Client) {
	hub := NewHub(nil)
	client := &Client{hub: hub, send: make(chan []byte, 256)}
	hub.Register(client)
	bridge := NewBridge(hub)
	return bridge, client
}

func receiveEnvelope(t *testing.T, c *Client) Envelope {
	t.Helper()
	msg := <-c.send
	var env Envelope
	require.NoError(t, json.Unmarshal(msg, &env))
	return env
}

func TestBridge_PublishForecast(t *testing.T) {
	bridge, client := newTestBridge()

	err := bridge.PublishForecast(context.Background(), model.ForecastEvent{
		ID:       "ev-1",
		Date:     "2025-07-15",
		Forecast: model.DailyForecast{PeakLoad: 18250.5, PeakHour: 19},
		Cached:   true,
		At:       time.Date(2025, 7, 14, 8, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	env := receiveEnvelope(t, client)
	assert.Equal(t, TypeForecastCompleted, env.Type)

	var p ForecastCompletedPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	assert.Equal(t, ForecastCompletedPayload{
		ID:       "ev-1",
		Date:     "2025-07-15",
		PeakLoad: 18250.5,
		PeakHour: 19,
		Cached:   true,
	}, p)
}
