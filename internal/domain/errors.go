package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBudgetExceeded      = errors.New("budget exceeded")
	ErrUnknownModelPricing = errors.New("unknown model pricing")
	ErrFileUnavailable     = errors.New("file unavailable")
	ErrFetchBatchFailed    = errors.New("fetch batch failed")
)

// ModelError wraps a transport-level failure from the model collaborator.
// Unlike parse fallbacks, it is unrecoverable and aborts the run.
type ModelError struct {
	Model string
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Model, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}
