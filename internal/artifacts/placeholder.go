package artifacts

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/sumesh-12/energy-demand-prediction/internal/features"
	"github.com/sumesh-12/energy-demand-prediction/internal/predictor"
	"github.com/sumesh-12/energy-demand-prediction/internal/scaling"
)

// Placeholder sizes for an untrained bundle.
const (
	placeholderHidden = 16
	placeholderDense  = 8
)

// Placeholder builds an untrained bundle for local development: random
// weights from seed, feature scalers fitted to the reconstructed vectors of
// every hour of year, and a target scaler centred on the mean climatology
// load. Forecasts from it are shaped like real ones but carry no skill.
func Placeholder(year int, seed uint64) (*Bundle, error) {
	rng := rand.New(rand.NewPCG(seed, 0))
	m := predictor.NewSequenceModel(predictor.WindowLength, features.Count,
		placeholderHidden, []int{placeholderDense, 1}, rng)

	b := features.NewBuilder(func() time.Time {
		return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	})
	columns := make([][]float64, features.Count)
	var loadSum float64
	var days int
	for d := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() == year; d = d.AddDate(0, 0, 1) {
		for _, v := range b.Day(d) {
			for i, x := range v {
				columns[i] = append(columns[i], x)
			}
		}
		loadSum += features.Lookup(int(d.Month())).Load
		days++
	}

	fitted := make(map[string]scaling.Scaler, features.Count)
	for i, name := range features.Schema {
		fitted[name] = scaling.FitStandard(columns[i])
	}
	scalers, err := scaling.NewScalerSet(fitted)
	if err != nil {
		return nil, err
	}

	target, err := scaling.NewTargetTransform(scaling.StandardScaler{
		Mean:  math.Log(loadSum / float64(days)),
		Scale: 0.05,
	})
	if err != nil {
		return nil, err
	}

	return &Bundle{Model: m, Scalers: scalers, Target: target, Fingerprint: "placeholder"}, nil
}
