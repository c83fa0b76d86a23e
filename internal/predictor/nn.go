package predictor

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
)

// Layer represents a fully-connected neural network layer.
type Layer struct {
	Weights [][]float64 `json:"weights"` // [out][in]
	Biases  []float64   `json:"biases"`

	// Evaluation buffer reused across calls (not serialized).
	output []float64
}

// Network is a feedforward neural network with ReLU hidden layers and linear output.
type Network struct {
	Layers []Layer `json:"layers"`
}

// NewNetwork creates a network with He initialization.
// sizes specifies the number of neurons in each layer, e.g. [32, 16, 1].
func NewNetwork(sizes []int, rng *rand.Rand) *Network {
	n := &Network{
		Layers: make([]Layer, len(sizes)-1),
	}
	for i := 0; i < len(sizes)-1; i++ {
		in, out := sizes[i], sizes[i+1]
		stddev := math.Sqrt(2.0 / float64(in)) // He init
		layer := Layer{
			Weights: make([][]float64, out),
			Biases:  make([]float64, out),
		}
		for j := 0; j < out; j++ {
			layer.Weights[j] = make([]float64, in)
			for k := 0; k < in; k++ {
				layer.Weights[j][k] = rng.NormFloat64() * stddev
			}
		}
		n.Layers[i] = layer
	}
	return n
}

// InputSize returns the width of the first layer's input.
func (n *Network) InputSize() int {
	if len(n.Layers) == 0 || len(n.Layers[0].Weights) == 0 {
		return 0
	}
	return len(n.Layers[0].Weights[0])
}

// OutputSize returns the width of the last layer's output.
func (n *Network) OutputSize() int {
	if len(n.Layers) == 0 {
		return 0
	}
	return len(n.Layers[len(n.Layers)-1].Weights)
}

// Validate checks that layer shapes chain together.
func (n *Network) Validate() error {
	if len(n.Layers) == 0 {
		return fmt.Errorf("network has no layers")
	}
	in := n.InputSize()
	for i, l := range n.Layers {
		if len(l.Weights) == 0 {
			return fmt.Errorf("layer %d has no outputs", i)
		}
		if len(l.Biases) != len(l.Weights) {
			return fmt.Errorf("layer %d: %d biases for %d outputs", i, len(l.Biases), len(l.Weights))
		}
		for j, row := range l.Weights {
			if len(row) != in {
				return fmt.Errorf("layer %d row %d: width %d, want %d", i, j, len(row), in)
			}
		}
		in = len(l.Weights)
	}
	return nil
}

// Forward computes the network output.
// Hidden layers use ReLU; the output layer is linear. The returned slice is
// an internal buffer that the next call overwrites, so Forward is not safe
// for concurrent use.
func (n *Network) Forward(input []float64) []float64 {
	x := input
	for i := range n.Layers {
		l := &n.Layers[i]

		out := len(l.Weights)
		if len(l.output) != out {
			l.output = make([]float64, out)
		}
		y := l.output
		for j := 0; j < out; j++ {
			sum := l.Biases[j]
			for k, w := range l.Weights[j] {
				sum += w * x[k]
			}
			y[j] = sum
		}

		// ReLU for all layers except the last (linear output).
		if i < len(n.Layers)-1 {
			for j := range y {
				if y[j] < 0 {
					y[j] = 0
				}
			}
		}

		x = y
	}
	return x
}

// MarshalJSON serializes the network weights and biases.
func (n *Network) MarshalJSON() ([]byte, error) {
	type layerJSON struct {
		Weights [][]float64 `json:"weights"`
		Biases  []float64   `json:"biases"`
	}
	layers := make([]layerJSON, len(n.Layers))
	for i, l := range n.Layers {
		layers[i] = layerJSON{Weights: l.Weights, Biases: l.Biases}
	}
	return json.Marshal(struct {
		Layers []layerJSON `json:"layers"`
	}{Layers: layers})
}

// UnmarshalJSON deserializes network weights and biases.
func (n *Network) UnmarshalJSON(data []byte) error {
	type layerJSON struct {
		Weights [][]float64 `json:"weights"`
		Biases  []float64   `json:"biases"`
	}
	var raw struct {
		Layers []layerJSON `json:"layers"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n.Layers = make([]Layer, len(raw.Layers))
	for i, l := range raw.Layers {
		n.Layers[i] = Layer{Weights: l.Weights, Biases: l.Biases}
	}
	return nil
}
