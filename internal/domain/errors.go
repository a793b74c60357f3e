package domain

import (
	"errors"
	"fmt"
)

var (
	ErrChoiceNotFound      = fmt.Errorf("%w: choice not found in active scenario", ErrValidation)
	ErrInvalidPhase        = errors.New("operation not allowed in current phase")
	ErrInvalidSetup        = fmt.Errorf("%w: invalid session setup", ErrValidation)
	ErrNoSession           = errors.New("no active session")
	ErrOperationInProgress = errors.New("another operation is in progress")
	ErrSessionNotFound     = errors.New("session not found")
	ErrStaleResult         = errors.New("result discarded: session changed while waiting")
	ErrValidation          = errors.New("validation failed")
)

// ProviderError reports a failure signalled by the scenario provider.
// The session that issued the call is left untouched.
type ProviderError struct {
	Op      string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// NewProviderError builds a ProviderError from an operation name and a cause
func NewProviderError(op string, err error) *ProviderError {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return &ProviderError{Op: op, Message: pe.Message}
	}
	return &ProviderError{Op: op, Message: err.Error()}
}
