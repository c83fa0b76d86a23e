package scaling

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sumesh-12/energy-demand-prediction/internal/features"
)

// ScalerSet maps schema columns to their fitted scalers. It is read-only
// after construction. Columns without a scaler pass through unchanged.
type ScalerSet struct {
	byIndex []Scaler
	names   []string
}

// NewScalerSet validates scalers against features.Schema. Unknown feature
// names are rejected.
func NewScalerSet(scalers map[string]Scaler) (*ScalerSet, error) {
	set := &ScalerSet{byIndex: make([]Scaler, features.Count)}
	for name, s := range scalers {
		idx, ok := features.Index(name)
		if !ok {
			return nil, fmt.Errorf("scaler for unknown feature %q", name)
		}
		if s == nil {
			return nil, fmt.Errorf("nil scaler for feature %q", name)
		}
		set.byIndex[idx] = s
		set.names = append(set.names, name)
	}
	sort.Strings(set.names)
	return set, nil
}

// Len returns the number of scaled features.
func (s *ScalerSet) Len() int { return len(s.names) }

// Names returns the scaled feature names, sorted.
func (s *ScalerSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Scaler returns the scaler registered for name.
func (s *ScalerSet) Scaler(name string) (Scaler, bool) {
	idx, ok := features.Index(name)
	if !ok || s.byIndex[idx] == nil {
		return nil, false
	}
	return s.byIndex[idx], true
}

// Apply returns a new vector with every registered column transformed.
// Each value is scaled on its own; columns never influence each other.
func (s *ScalerSet) Apply(v features.Vector) (features.Vector, error) {
	if len(v) != len(s.byIndex) {
		return nil, fmt.Errorf("vector width %d, schema width %d", len(v), len(s.byIndex))
	}
	out := v.Clone()
	for i, sc := range s.byIndex {
		if sc != nil {
			out[i] = sc.Transform(v[i])
		}
	}
	return out, nil
}

// Invert undoes Apply.
func (s *ScalerSet) Invert(v features.Vector) (features.Vector, error) {
	if len(v) != len(s.byIndex) {
		return nil, fmt.Errorf("vector width %d, schema width %d", len(v), len(s.byIndex))
	}
	out := v.Clone()
	for i, sc := range s.byIndex {
		if sc != nil {
			out[i] = sc.Inverse(v[i])
		}
	}
	return out, nil
}

type scalerSetJSON struct {
	Scalers map[string]scalerJSON `json:"scalers"`
}

// ParseScalerSet decodes a feature scaler artifact.
func ParseScalerSet(data []byte) (*ScalerSet, error) {
	var raw scalerSetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding feature scalers: %w", err)
	}
	scalers := make(map[string]Scaler, len(raw.Scalers))
	for name, r := range raw.Scalers {
		sc, err := decodeScaler(r)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", name, err)
		}
		scalers[name] = sc
	}
	return NewScalerSet(scalers)
}

// MarshalJSON serializes the set in the artifact format read by ParseScalerSet.
func (s *ScalerSet) MarshalJSON() ([]byte, error) {
	raw := scalerSetJSON{Scalers: make(map[string]scalerJSON, len(s.names))}
	for _, name := range s.names {
		sc, _ := s.Scaler(name)
		enc, err := encodeScaler(sc)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", name, err)
		}
		raw.Scalers[name] = enc
	}
	return json.Marshal(raw)
}
