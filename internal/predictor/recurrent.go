package predictor

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Recurrent is an Elman (tanh) recurrent encoder:
//
//	h_t = tanh(Wx·x_t + Wh·h_{t-1} + b), h_0 = 0
//
// Encode returns the final hidden state. The state and scratch vectors are
// reused between calls.
type Recurrent struct {
	Wx *mat.Dense    // [hidden][in]
	Wh *mat.Dense    // [hidden][hidden]
	B  *mat.VecDense // [hidden]

	state   *mat.VecDense
	next    *mat.VecDense
	scratch *mat.VecDense
}

// NewRecurrent creates an encoder with Xavier-scaled input weights and small
// recurrent weights so the tanh units start out of saturation.
func NewRecurrent(in, hidden int, rng *rand.Rand) *Recurrent {
	wx := make([]float64, hidden*in)
	xStd := math.Sqrt(1.0 / float64(in))
	for i := range wx {
		wx[i] = rng.NormFloat64() * xStd
	}
	wh := make([]float64, hidden*hidden)
	hStd := 0.5 / math.Sqrt(float64(hidden))
	for i := range wh {
		wh[i] = rng.NormFloat64() * hStd
	}
	r := &Recurrent{
		Wx: mat.NewDense(hidden, in, wx),
		Wh: mat.NewDense(hidden, hidden, wh),
		B:  mat.NewVecDense(hidden, nil),
	}
	r.initBuffers()
	return r
}

func (r *Recurrent) initBuffers() {
	h := r.Hidden()
	r.state = mat.NewVecDense(h, nil)
	r.next = mat.NewVecDense(h, nil)
	r.scratch = mat.NewVecDense(h, nil)
}

// Hidden returns the hidden state size.
func (r *Recurrent) Hidden() int {
	h, _ := r.Wx.Dims()
	return h
}

// InputSize returns the per-step input width.
func (r *Recurrent) InputSize() int {
	_, in := r.Wx.Dims()
	return in
}

// Encode runs the window through the encoder and returns the final hidden
// state. The returned slice is an internal buffer.
func (r *Recurrent) Encode(w *Window) []float64 {
	r.state.Zero()
	for s := 0; s < w.Steps(); s++ {
		x := mat.NewVecDense(w.Width(), w.Step(s))
		r.next.MulVec(r.Wx, x)
		r.scratch.MulVec(r.Wh, r.state)
		r.next.AddVec(r.next, r.scratch)
		r.next.AddVec(r.next, r.B)
		for i := 0; i < r.next.Len(); i++ {
			r.next.SetVec(i, math.Tanh(r.next.AtVec(i)))
		}
		r.state.CopyVec(r.next)
	}
	return r.state.RawVector().Data
}

type recurrentJSON struct {
	InputWeights     [][]float64 `json:"input_weights"`
	RecurrentWeights [][]float64 `json:"recurrent_weights"`
	Biases           []float64   `json:"biases"`
}

// MarshalJSON serializes the weights as nested rows.
func (r *Recurrent) MarshalJSON() ([]byte, error) {
	return json.Marshal(recurrentJSON{
		InputWeights:     denseRows(r.Wx),
		RecurrentWeights: denseRows(r.Wh),
		Biases:           append([]float64(nil), r.B.RawVector().Data...),
	})
}

// UnmarshalJSON decodes and shape-checks the weights.
func (r *Recurrent) UnmarshalJSON(data []byte) error {
	var raw recurrentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	hidden := len(raw.Biases)
	if hidden == 0 {
		return fmt.Errorf("recurrent layer has no hidden units")
	}
	wx, err := rowsDense(raw.InputWeights, hidden, -1)
	if err != nil {
		return fmt.Errorf("input_weights: %w", err)
	}
	wh, err := rowsDense(raw.RecurrentWeights, hidden, hidden)
	if err != nil {
		return fmt.Errorf("recurrent_weights: %w", err)
	}
	r.Wx = wx
	r.Wh = wh
	r.B = mat.NewVecDense(hidden, append([]float64(nil), raw.Biases...))
	r.initBuffers()
	return nil
}

func denseRows(m *mat.Dense) [][]float64 {
	rows, cols := m.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		mat.Row(out[i], i, m)
	}
	return out
}

// rowsDense builds a dense matrix from rows. cols < 0 accepts any uniform width.
func rowsDense(rows [][]float64, wantRows, cols int) (*mat.Dense, error) {
	if len(rows) != wantRows {
		return nil, fmt.Errorf("%d rows, want %d", len(rows), wantRows)
	}
	if cols < 0 {
		cols = len(rows[0])
	}
	if cols == 0 {
		return nil, fmt.Errorf("zero-width rows")
	}
	data := make([]float64, 0, wantRows*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d: width %d, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(wantRows, cols, data), nil
}
