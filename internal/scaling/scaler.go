// Package scaling holds the fitted per-feature normalization transforms and
// the inverse target transform applied to model output.
package scaling

import (
	"encoding/json"
	"fmt"
	"math"
)

// Scaler is an invertible univariate transform.
type Scaler interface {
	Transform(x float64) float64
	Inverse(y float64) float64
}

// Scaler kinds as they appear in artifact files.
const (
	KindStandard = "standard"
	KindMinMax   = "minmax"
)

// StandardScaler is a z-score transform: (x - Mean) / Scale.
type StandardScaler struct {
	Mean  float64 `json:"mean"`
	Scale float64 `json:"scale"`
}

func (s StandardScaler) Transform(x float64) float64 { return (x - s.Mean) / s.Scale }
func (s StandardScaler) Inverse(y float64) float64   { return y*s.Scale + s.Mean }

// MinMaxScaler maps x to x*Scale + Min, matching the fitted min/scale pair of
// a range scaler.
type MinMaxScaler struct {
	Min   float64 `json:"min"`
	Scale float64 `json:"scale"`
}

func (s MinMaxScaler) Transform(x float64) float64 { return x*s.Scale + s.Min }
func (s MinMaxScaler) Inverse(y float64) float64   { return (y - s.Min) / s.Scale }

// FitStandard computes z-score parameters from values. A zero spread is
// replaced by 1 so the transform stays invertible.
func FitStandard(values []float64) StandardScaler {
	if len(values) == 0 {
		return StandardScaler{Scale: 1}
	}
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	std := math.Sqrt(variance / n)

	// Guard against zero std.
	if std < 1e-10 {
		std = 1
	}
	return StandardScaler{Mean: mean, Scale: std}
}

// scalerJSON is the on-disk form of a single scaler.
type scalerJSON struct {
	Kind  string  `json:"kind"`
	Mean  float64 `json:"mean,omitempty"`
	Min   float64 `json:"min,omitempty"`
	Scale float64 `json:"scale"`
}

func decodeScaler(raw scalerJSON) (Scaler, error) {
	if raw.Scale == 0 || math.IsNaN(raw.Scale) || math.IsInf(raw.Scale, 0) {
		return nil, fmt.Errorf("scale must be finite and non-zero, got %v", raw.Scale)
	}
	switch raw.Kind {
	case KindStandard:
		return StandardScaler{Mean: raw.Mean, Scale: raw.Scale}, nil
	case KindMinMax:
		return MinMaxScaler{Min: raw.Min, Scale: raw.Scale}, nil
	default:
		return nil, fmt.Errorf("unknown scaler kind %q", raw.Kind)
	}
}

func encodeScaler(s Scaler) (scalerJSON, error) {
	switch v := s.(type) {
	case StandardScaler:
		return scalerJSON{Kind: KindStandard, Mean: v.Mean, Scale: v.Scale}, nil
	case MinMaxScaler:
		return scalerJSON{Kind: KindMinMax, Min: v.Min, Scale: v.Scale}, nil
	default:
		return scalerJSON{}, fmt.Errorf("unsupported scaler type %T", s)
	}
}

// MarshalScaler serializes a single scaler.
func MarshalScaler(s Scaler) ([]byte, error) {
	raw, err := encodeScaler(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}
