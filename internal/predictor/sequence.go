// Package predictor holds the pretrained sequence model: a recurrent encoder
// over a fixed-length window of feature rows followed by a dense head.
package predictor

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
)

// SequenceModel maps a (1, WindowLength, InputWidth) window to one scaled
// load value. Forward reuses internal buffers and is not safe for concurrent
// use; callers serialize access.
type SequenceModel struct {
	WindowLength int        `json:"window_length"`
	InputWidth   int        `json:"input_width"`
	Encoder      *Recurrent `json:"encoder"`
	Head         *Network   `json:"head"`
}

// NewSequenceModel creates an untrained model with random weights. headSizes
// lists the dense layer widths after the encoder, ending in 1.
func NewSequenceModel(windowLength, inputWidth, hidden int, headSizes []int, rng *rand.Rand) *SequenceModel {
	sizes := append([]int{hidden}, headSizes...)
	return &SequenceModel{
		WindowLength: windowLength,
		InputWidth:   inputWidth,
		Encoder:      NewRecurrent(inputWidth, hidden, rng),
		Head:         NewNetwork(sizes, rng),
	}
}

// Validate checks that the declared shapes and the weights agree.
func (m *SequenceModel) Validate() error {
	if m.WindowLength <= 0 {
		return fmt.Errorf("window_length must be positive, got %d", m.WindowLength)
	}
	if m.Encoder == nil || m.Head == nil {
		return fmt.Errorf("model requires both encoder and head")
	}
	if got := m.Encoder.InputSize(); got != m.InputWidth {
		return fmt.Errorf("encoder input width %d, declared input_width %d", got, m.InputWidth)
	}
	if err := m.Head.Validate(); err != nil {
		return fmt.Errorf("head: %w", err)
	}
	if got := m.Head.InputSize(); got != m.Encoder.Hidden() {
		return fmt.Errorf("head input width %d, encoder hidden size %d", got, m.Encoder.Hidden())
	}
	if got := m.Head.OutputSize(); got != 1 {
		return fmt.Errorf("head must produce one output, got %d", got)
	}
	return nil
}

// Forward runs one window through the model and returns the scaled output.
func (m *SequenceModel) Forward(w *Window) (float64, error) {
	shape := w.Shape()
	if shape[1] != m.WindowLength || shape[2] != m.InputWidth {
		return 0, fmt.Errorf("window shape %v, model expects [1 %d %d]", shape, m.WindowLength, m.InputWidth)
	}
	h := m.Encoder.Encode(w)
	out := m.Head.Forward(h)[0]
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, fmt.Errorf("non-finite model output %v", out)
	}
	return out, nil
}

// Save serializes the model to JSON.
func (m *SequenceModel) Save() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// LoadSequenceModel deserializes and validates a model.
func LoadSequenceModel(data []byte) (*SequenceModel, error) {
	var m SequenceModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
