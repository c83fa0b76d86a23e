package predictor

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNetwork_ForwardDimensions(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	net := NewNetwork([]int{5, 32, 16, 1}, rng)
	require.NoError(t, net.Validate())
	assert.Equal(t, 5, net.InputSize())
	assert.Equal(t, 1, net.OutputSize())

	input := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	output := net.Forward(input)

	assert.Len(t, output, 1, "output should have 1 element")
	assert.False(t, math.IsNaN(output[0]), "output should not be NaN")
}

func TestNetwork_ReLUAndLinearOutput(t *testing.T) {
	net := &Network{Layers: []Layer{
		{Weights: [][]float64{{1}, {-1}}, Biases: []float64{0, 0}},
		{Weights: [][]float64{{2, 3}}, Biases: []float64{-1}},
	}}
	// x=2: hidden = relu(2), relu(-2) = 2, 0 -> 2*2 + 3*0 - 1 = 3
	assert.Equal(t, 3.0, net.Forward([]float64{2})[0])
	// x=-2: hidden = 0, 2 -> 0 + 6 - 1 = 5
	assert.Equal(t, 5.0, net.Forward([]float64{-2})[0])
	// Linear output can go negative.
	net.Layers[1].Biases[0] = -10
	assert.Equal(t, -7.0, net.Forward([]float64{-1})[0])
}

func TestNetwork_Validate(t *testing.T) {
	assert.Error(t, (&Network{}).Validate())

	bad := &Network{Layers: []Layer{
		{Weights: [][]float64{{1, 2}}, Biases: []float64{0}},
		{Weights: [][]float64{{1, 2}}, Biases: []float64{0}}, // expects 1 input
	}}
	assert.Error(t, bad.Validate())

	missingBias := &Network{Layers: []Layer{{Weights: [][]float64{{1}}}}}
	assert.Error(t, missingBias.Validate())
}

func TestNetwork_SaveLoadRoundtrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	net := NewNetwork([]int{5, 32, 16, 1}, rng)

	input := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	outputBefore := net.Forward(input)[0]

	data, err := json.Marshal(net)
	require.NoError(t, err)

	var loaded Network
	err = json.Unmarshal(data, &loaded)
	require.NoError(t, err)

	outputAfter := loaded.Forward(input)[0]
	assert.Equal(t, outputBefore, outputAfter, "output should be identical after roundtrip")
}

func TestAssemble(t *testing.T) {
	v := []float64{1, 2, 3}
	w := Assemble(v, WindowLength)

	assert.Equal(t, [3]int{1, WindowLength, 3}, w.Shape())
	assert.Equal(t, WindowLength, w.Steps())
	assert.Equal(t, 3, w.Width())
	for s := 0; s < w.Steps(); s++ {
		assert.Equal(t, v, w.Step(s))
	}
	assert.Equal(t, 2.0, w.At(0, 167, 1))
	assert.Panics(t, func() { w.At(1, 0, 0) })

	v[0] = 99
	assert.Equal(t, 1.0, w.At(0, 0, 0), "window must not alias the source vector")
}

func TestRecurrent_HandComputed(t *testing.T) {
	r := &Recurrent{
		Wx: mat.NewDense(1, 1, []float64{1}),
		Wh: mat.NewDense(1, 1, []float64{0.5}),
		B:  mat.NewVecDense(1, []float64{0.1}),
	}
	r.initBuffers()

	w := Assemble([]float64{0.2}, 2)
	h1 := math.Tanh(0.2 + 0.1)
	h2 := math.Tanh(0.2 + 0.5*h1 + 0.1)
	got := r.Encode(w)
	require.Len(t, got, 1)
	assert.InDelta(t, h2, got[0], 1e-12)

	// State is reset on every call.
	again := r.Encode(w)
	assert.InDelta(t, h2, again[0], 1e-12)
}

func TestRecurrent_JSONRoundtrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 0))
	r := NewRecurrent(4, 6, rng)
	r.B.SetVec(2, 0.25)
	w := Assemble([]float64{0.1, -0.2, 0.3, 0.4}, 10)
	before := append([]float64(nil), r.Encode(w)...)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var loaded Recurrent
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, 6, loaded.Hidden())
	assert.Equal(t, 4, loaded.InputSize())
	assert.Equal(t, before, loaded.Encode(w))
}

func TestRecurrent_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no biases", `{"input_weights":[[1]],"recurrent_weights":[[1]],"biases":[]}`},
		{"row count", `{"input_weights":[[1],[2]],"recurrent_weights":[[1]],"biases":[0]}`},
		{"ragged", `{"input_weights":[[1,2],[3]],"recurrent_weights":[[1,0],[0,1]],"biases":[0,0]}`},
		{"recurrent not square", `{"input_weights":[[1]],"recurrent_weights":[[1,2]],"biases":[0]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Recurrent
			assert.Error(t, json.Unmarshal([]byte(tt.data), &r))
		})
	}
}

func testModel(t *testing.T, width int) *SequenceModel {
	t.Helper()
	rng := rand.New(rand.NewPCG(42, 0))
	m := NewSequenceModel(WindowLength, width, 8, []int{4, 1}, rng)
	require.NoError(t, m.Validate())
	return m
}

func TestSequenceModel_ForwardDeterministic(t *testing.T) {
	m := testModel(t, 5)
	w := Assemble([]float64{0.1, 0.2, 0.3, 0.4, 0.5}, WindowLength)

	first, err := m.Forward(w)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := m.Forward(w)
		require.NoError(t, err)
		assert.Equal(t, first, again, "no hidden state carried between calls")
	}
}

func TestSequenceModel_ForwardShapeMismatch(t *testing.T) {
	m := testModel(t, 5)

	_, err := m.Forward(Assemble([]float64{1, 2, 3}, WindowLength))
	assert.Error(t, err)

	_, err = m.Forward(Assemble([]float64{1, 2, 3, 4, 5}, 24))
	assert.Error(t, err)
}

func TestSequenceModel_SaveLoadRoundtrip(t *testing.T) {
	m := testModel(t, 5)
	w := Assemble([]float64{0.5, -0.5, 0.25, 0, 1}, WindowLength)
	before, err := m.Forward(w)
	require.NoError(t, err)

	data, err := m.Save()
	require.NoError(t, err)

	loaded, err := LoadSequenceModel(data)
	require.NoError(t, err)
	after, err := loaded.Forward(w)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLoadSequenceModel_ValidationErrors(t *testing.T) {
	m := testModel(t, 5)

	m.InputWidth = 6
	data, err := m.Save()
	require.NoError(t, err)
	_, err = LoadSequenceModel(data)
	assert.ErrorContains(t, err, "input_width")

	m = testModel(t, 5)
	m.WindowLength = 0
	data, err = m.Save()
	require.NoError(t, err)
	_, err = LoadSequenceModel(data)
	assert.Error(t, err)

	_, err = LoadSequenceModel([]byte(`{"window_length":168,"input_width":5}`))
	assert.Error(t, err)

	_, err = LoadSequenceModel([]byte(`not json`))
	assert.Error(t, err)
}

func TestSequenceModel_HeadMustBeScalar(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 0))
	m := NewSequenceModel(WindowLength, 3, 4, []int{2}, rng)
	assert.ErrorContains(t, m.Validate(), "one output")
}
