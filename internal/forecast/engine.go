package forecast

import (
	"fmt"
	"sync"
	"time"

	"github.com/sumesh-12/energy-demand-prediction/internal/metrics"
	"github.com/sumesh-12/energy-demand-prediction/internal/predictor"
)

// Forwarder runs one window through a model. predictor.SequenceModel
// implements it; implementations need not be safe for concurrent use.
type Forwarder interface {
	Forward(w *predictor.Window) (float64, error)
}

// Engine owns the loaded model and serializes forward passes through it.
// The model reuses its evaluation buffers between calls.
type Engine struct {
	mu      sync.Mutex
	model   Forwarder
	metrics *metrics.Metrics
}

// NewEngine wraps m. met may be nil.
func NewEngine(m Forwarder, met *metrics.Metrics) *Engine {
	return &Engine{model: m, metrics: met}
}

// Forward returns the scaled prediction for one window. A panic inside the
// model is returned as an error and leaves the engine usable.
func (e *Engine) Forward(w *predictor.Window) (out float64, err error) {
	start := time.Now()
	defer func() { e.metrics.ObserveForward(time.Since(start)) }()

	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			out, err = 0, fmt.Errorf("panic: %v", r)
		}
	}()
	return e.model.Forward(w)
}
