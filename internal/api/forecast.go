package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sumesh-12/energy-demand-prediction/internal/forecast"
	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

// Forecaster is the part of forecast.Service the API uses.
type Forecaster interface {
	Forecast(ctx context.Context, req model.ForecastRequest) (model.DailyForecast, error)
	Ready() bool
	Fingerprint() string
}

// flexInt accepts a JSON integer or a string holding one.
type flexInt struct {
	set   bool
	value int
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	n, err := strconv.Atoi(string(bytes.TrimSpace(data)))
	if err != nil {
		return fmt.Errorf("not an integer: %s", data)
	}
	f.set, f.value = true, n
	return nil
}

type predictRequest struct {
	Day   flexInt `json:"day"`
	Month flexInt `json:"month"`
}

type forecastHandler struct {
	forecast Forecaster
	log      *zap.Logger
}

// Predict handles POST /predict.
func (h *forecastHandler) Predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, model.CategoryBadRequest, "day and month must be integers")
		return
	}
	if !req.Day.set || !req.Month.set {
		abortWithError(c, model.CategoryBadRequest, "day and month are required")
		return
	}

	f, err := h.forecast.Forecast(c.Request.Context(), model.ForecastRequest{
		Day:   req.Day.value,
		Month: req.Month.value,
	})
	if err != nil {
		category, message := forecast.Classify(err)
		h.log.Info("prediction rejected",
			zap.String("request_id", RequestID(c)),
			zap.String("category", category),
			zap.Error(err),
		)
		abortWithError(c, category, message)
		return
	}
	c.JSON(http.StatusOK, newPredictResponse(RequestID(c), f))
}

// Ready handles GET /ready.
func (h *forecastHandler) Ready(c *gin.Context) {
	if !h.forecast.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ready": true, "fingerprint": h.forecast.Fingerprint()})
}
