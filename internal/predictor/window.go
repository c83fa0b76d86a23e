package predictor

import "fmt"

// WindowLength is the number of time steps the sequence model consumes.
const WindowLength = 168

// Window is a (1, Steps, Width) input tensor stored row-major.
type Window struct {
	steps int
	width int
	data  []float64
}

// Assemble tiles one feature vector across length time steps.
//
// The model expects a week of history but only the current snapshot is
// known, so every step repeats it: the recent past is assumed to look
// exactly like now.
func Assemble(vector []float64, length int) *Window {
	w := &Window{
		steps: length,
		width: len(vector),
		data:  make([]float64, length*len(vector)),
	}
	for s := 0; s < length; s++ {
		copy(w.data[s*w.width:(s+1)*w.width], vector)
	}
	return w
}

// Shape returns (batch, steps, width). Batch is always 1.
func (w *Window) Shape() [3]int {
	return [3]int{1, w.steps, w.width}
}

// Steps returns the number of time steps.
func (w *Window) Steps() int { return w.steps }

// Width returns the number of features per step.
func (w *Window) Width() int { return w.width }

// Step returns the feature row at time step i. The slice aliases the window.
func (w *Window) Step(i int) []float64 {
	return w.data[i*w.width : (i+1)*w.width]
}

// At returns the value at (batch, step, feature).
func (w *Window) At(batch, step, feature int) float64 {
	if batch != 0 {
		panic(fmt.Sprintf("predictor: batch index %d out of range", batch))
	}
	return w.data[step*w.width+feature]
}
