package forecast

import (
	"errors"

	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

// Classify maps a Forecast error to its category and the message shown to
// callers. Inference failures get a generic message; the detail is logged.
func Classify(err error) (category, message string) {
	var (
		unavailable *model.ModelUnavailableError
		invalid     *model.InvalidDateError
	)
	switch {
	case errors.As(err, &unavailable):
		return model.CategoryModelUnavailable, "Prediction model is not available."
	case errors.As(err, &invalid):
		return model.CategoryInvalidDate, invalid.Error()
	default:
		return model.CategoryInferenceFailed, "An internal error occurred during prediction."
	}
}
