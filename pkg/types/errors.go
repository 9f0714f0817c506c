package types

import (
	"errors"
	"fmt"
)

// Error categories recognized at the command boundary.
var (
	ErrValidation      = errors.New("invalid field value")
	ErrNotFound        = errors.New("contact not found")
	ErrMissingArgument = errors.New("missing argument")
)

// Snapshot errors returned when restoring persisted state.
var (
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrMalformedSnapshot  = errors.New("malformed snapshot")
)

// ValidationError reports a value rejected by a field constructor. Reason is
// the human-readable format description shown to the user.
type ValidationError struct {
	Kind   Kind
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(kind Kind, value, reason string) *ValidationError {
	return &ValidationError{Kind: kind, Value: value, Reason: reason}
}

// NotFoundError wraps ErrNotFound with the name or value that was looked up.
func NotFoundError(key string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, key)
}
