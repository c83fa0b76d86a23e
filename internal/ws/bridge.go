package ws

import (
	"context"

	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

// Bridge implements forecast.Publisher and broadcasts events to the hub.
type Bridge struct {
	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

func (b *Bridge) PublishForecast(_ context.Context, ev model.ForecastEvent) error {
	msg, err := NewEnvelope(TypeForecastCompleted, CompletedFromEvent(ev))
	if err != nil {
		return err
	}
	b.hub.Broadcast(msg)
	return nil
}
