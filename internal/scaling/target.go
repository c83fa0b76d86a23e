package scaling

import (
	"encoding/json"
	"fmt"
	"math"
)

// TargetTransform maps the model's scaled output back to load. The target was
// log-transformed and then scaled during training, so Invert undoes the
// scaler and exponentiates.
type TargetTransform struct {
	scaler Scaler
}

// NewTargetTransform wraps the fitted target scaler.
func NewTargetTransform(s Scaler) (*TargetTransform, error) {
	if s == nil {
		return nil, fmt.Errorf("nil target scaler")
	}
	return &TargetTransform{scaler: s}, nil
}

// Invert recovers an absolute load value from a raw model output.
func (t *TargetTransform) Invert(raw float64) float64 {
	return math.Exp(t.scaler.Inverse(raw))
}

// Transform maps an absolute load to the model's output space.
func (t *TargetTransform) Transform(load float64) float64 {
	return t.scaler.Transform(math.Log(load))
}

// ParseTargetTransform decodes a target scaler artifact.
func ParseTargetTransform(data []byte) (*TargetTransform, error) {
	var raw scalerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding target scaler: %w", err)
	}
	sc, err := decodeScaler(raw)
	if err != nil {
		return nil, fmt.Errorf("target scaler: %w", err)
	}
	return NewTargetTransform(sc)
}

// MarshalJSON serializes the wrapped scaler.
func (t *TargetTransform) MarshalJSON() ([]byte, error) {
	return MarshalScaler(t.scaler)
}
