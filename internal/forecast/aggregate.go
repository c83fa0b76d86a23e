package forecast

import (
	"fmt"
	"math"

	"github.com/sumesh-12/energy-demand-prediction/internal/model"
	"github.com/sumesh-12/energy-demand-prediction/internal/scaling"
)

// Aggregate converts 24 scaled model outputs into load values and finds the
// peak. Ties go to the earliest hour.
func Aggregate(raw []float64, target *scaling.TargetTransform) (model.DailyForecast, error) {
	var out model.DailyForecast
	if len(raw) != model.HoursPerDay {
		return out, &model.InferenceError{
			Stage: model.StageAggregate,
			Hour:  -1,
			Err:   fmt.Errorf("got %d hourly outputs, want %d", len(raw), model.HoursPerDay),
		}
	}

	for h, r := range raw {
		load := target.Invert(r)
		if math.IsNaN(load) || math.IsInf(load, 0) {
			return model.DailyForecast{}, &model.InferenceError{
				Stage: model.StageAggregate,
				Hour:  h,
				Err:   fmt.Errorf("non-finite load %v from scaled output %v", load, r),
			}
		}
		out.HourlyData[h] = load
		if h == 0 || load > out.PeakLoad {
			out.PeakLoad = load
			out.PeakHour = h
		}
	}
	return out, nil
}
