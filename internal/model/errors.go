package model

import "fmt"

// Category strings reported to callers alongside a failure.
const (
	CategoryModelUnavailable = "model_unavailable"
	CategoryInvalidDate      = "invalid_date"
	CategoryInferenceFailed  = "inference_failed"
	CategoryBadRequest       = "bad_request"
)

// ModelUnavailableError means the model artifacts failed to load at startup.
type ModelUnavailableError struct {
	Cause error
}

func (e *ModelUnavailableError) Error() string {
	if e.Cause == nil {
		return "forecast model unavailable"
	}
	return fmt.Sprintf("forecast model unavailable: %v", e.Cause)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Cause }

// InvalidDateError means (year, month, day) is not a real calendar date.
type InvalidDateError struct {
	Year, Month, Day int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %04d-%02d-%02d", e.Year, e.Month, e.Day)
}

// Inference pipeline stages, used in InferenceError.
const (
	StageBuild     = "build"
	StageNormalize = "normalize"
	StageForward   = "forward"
	StageAggregate = "aggregate"
)

// InferenceError is an unexpected failure inside the pipeline. Hour is -1
// when the failure is not tied to a single hour.
type InferenceError struct {
	Stage string
	Hour  int
	Err   error
}

func (e *InferenceError) Error() string {
	if e.Hour < 0 {
		return fmt.Sprintf("inference failed at %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("inference failed at %s (hour %d): %v", e.Stage, e.Hour, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }
