package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sumesh-12/energy-demand-prediction/internal/forecast"
	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Forecaster is the part of forecast.Service the handler uses.
type Forecaster interface {
	Forecast(ctx context.Context, req model.ForecastRequest) (model.DailyForecast, error)
	Ready() bool
	Fingerprint() string
}

// Handler manages WebSocket connections and routes requests to the forecaster.
type Handler struct {
	hub      *Hub
	forecast Forecaster
	log      *zap.Logger
}

func NewHandler(hub *Hub, f Forecaster, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{hub: hub, forecast: f, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	h.sendModelStatus(client)

	h.readPump(r.Context(), client)
}

func (h *Handler) readPump(ctx context.Context, c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("websocket read error", zap.Error(err))
			}
			return
		}

		h.handleMessage(ctx, c, msg)
	}
}

func (h *Handler) handleMessage(ctx context.Context, c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.log.Debug("invalid message", zap.Error(err))
		h.reply(c, TypeForecastResult, ForecastResultPayload{
			Error:    "malformed message",
			Category: model.CategoryBadRequest,
		})
		return
	}

	switch env.Type {
	case TypeForecastRequest:
		var p ForecastRequestPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.reply(c, TypeForecastResult, ForecastResultPayload{
				RequestID: p.RequestID,
				Error:     "day and month must be integers",
				Category:  model.CategoryBadRequest,
			})
			return
		}
		f, err := h.forecast.Forecast(ctx, model.ForecastRequest{Day: p.Day, Month: p.Month})
		if err != nil {
			category, message := forecast.Classify(err)
			h.reply(c, TypeForecastResult, ForecastResultPayload{
				RequestID: p.RequestID,
				Error:     message,
				Category:  category,
			})
			return
		}
		h.reply(c, TypeForecastResult, ResultFromForecast(p.RequestID, f))

	default:
		h.log.Debug("unknown message type", zap.String("type", env.Type))
	}
}

func (h *Handler) reply(c *Client, msgType string, payload any) {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		h.log.Error("marshal websocket reply", zap.String("type", msgType), zap.Error(err))
		return
	}
	h.hub.trySend(c, msg)
}

func (h *Handler) sendModelStatus(c *Client) {
	h.reply(c, TypeModelStatus, ModelStatusPayload{
		Ready:       h.forecast.Ready(),
		Fingerprint: h.forecast.Fingerprint(),
	})
}
