package ws

import (
	"encoding/json"

	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message types.
const (
	// Client -> Server
	TypeForecastRequest = "forecast:request"

	// Server -> Client
	TypeModelStatus       = "model:status"
	TypeForecastResult    = "forecast:result"
	TypeForecastCompleted = "forecast:completed"
)

// Client -> Server messages

type ForecastRequestPayload struct {
	RequestID string `json:"request_id,omitempty"`
	Day       int    `json:"day"`
	Month     int    `json:"month"`
}

// Server -> Client messages

type ModelStatusPayload struct {
	Ready       bool   `json:"ready"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

type ForecastResultPayload struct {
	RequestID  string    `json:"request_id,omitempty"`
	Success    bool      `json:"success"`
	PeakLoad   float64   `json:"peak_load,omitempty"`
	PeakHour   int       `json:"peak_hour"`
	HourlyData []float64 `json:"hourly_data,omitempty"`
	Error      string    `json:"error,omitempty"`
	Category   string    `json:"category,omitempty"`
}

type ForecastCompletedPayload struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	PeakLoad float64 `json:"peak_load"`
	PeakHour int     `json:"peak_hour"`
	Cached   bool    `json:"cached"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

// ResultFromForecast builds a successful forecast:result payload.
func ResultFromForecast(requestID string, f model.DailyForecast) ForecastResultPayload {
	return ForecastResultPayload{
		RequestID:  requestID,
		Success:    true,
		PeakLoad:   f.PeakLoad,
		PeakHour:   f.PeakHour,
		HourlyData: f.Hourly(),
	}
}

// CompletedFromEvent builds a forecast:completed payload.
func CompletedFromEvent(ev model.ForecastEvent) ForecastCompletedPayload {
	return ForecastCompletedPayload{
		ID:       ev.ID,
		Date:     ev.Date,
		PeakLoad: ev.Forecast.PeakLoad,
		PeakHour: ev.Forecast.PeakHour,
		Cached:   ev.Cached,
	}
}
