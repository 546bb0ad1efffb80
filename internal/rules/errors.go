package rules

import (
	"errors"
	"fmt"
)

// Validation errors. All are recoverable: the caller re-prompts or rejects
// the candidate without touching the rule collection.
var (
	ErrInvalidDistance = errors.New("invalid distance")
	ErrInvalidCode     = errors.New("invalid amino acid code")
	ErrEmptyGroup      = errors.New("empty amino acid group")
	ErrRuleLimit       = errors.New("rule limit exceeded")
)

// ValidationError describes why a candidate rule was rejected, naming the
// offending field and value so the caller can build a precise message.
type ValidationError struct {
	Err   error
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(err error, field, value string) error {
	return &ValidationError{Err: err, Field: field, Value: value}
}
