package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

// PredictResponse is the body of a successful POST /predict.
type PredictResponse struct {
	Success    bool      `json:"success"`
	RequestID  string    `json:"request_id"`
	Prediction string    `json:"prediction"`
	PeakLoad   float64   `json:"peak_load"`
	PeakHour   int       `json:"peak_hour"`
	HourlyData []float64 `json:"hourly_data"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
	Category  string `json:"category"`
}

// MessageResponse is the body of account and contact endpoints.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	ID      string `json:"id,omitempty"`
}

// StatusFor maps an error category to its HTTP status.
func StatusFor(category string) int {
	switch category {
	case model.CategoryModelUnavailable:
		return http.StatusServiceUnavailable
	case model.CategoryInvalidDate, model.CategoryBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PredictionText renders the human-readable summary of a forecast.
func PredictionText(f model.DailyForecast) string {
	peak := decimal.NewFromFloat(f.PeakLoad).StringFixed(2)
	return fmt.Sprintf("Predicted Peak Load: %s MWh at hour %d:00", peak, f.PeakHour)
}

func newPredictResponse(requestID string, f model.DailyForecast) PredictResponse {
	return PredictResponse{
		Success:    true,
		RequestID:  requestID,
		Prediction: PredictionText(f),
		PeakLoad:   f.PeakLoad,
		PeakHour:   f.PeakHour,
		HourlyData: f.Hourly(),
	}
}

func abortWithError(c *gin.Context, category, message string) {
	c.AbortWithStatusJSON(StatusFor(category), ErrorResponse{
		RequestID: RequestID(c),
		Error:     message,
		Category:  category,
	})
}
