package validation

import (
	"errors"
	"strings"
)

// ErrMissingRequiredFields is matched by every Errors value.
var ErrMissingRequiredFields = errors.New("missing required fields")

// FieldError is one unmet required rule.
type FieldError struct {
	Field string
	Label string
	Hint  string
}

// String renders "<Label>: <Hint>".
func (e FieldError) String() string {
	return e.Label + ": " + e.Hint
}

// Errors collects every unmet required rule.
type Errors []FieldError

func (e Errors) Error() string {
	return ErrMissingRequiredFields.Error() + ": " + strings.Join(e.Messages(), "; ")
}

// Is lets errors.Is match ErrMissingRequiredFields.
func (e Errors) Is(target error) bool {
	return target == ErrMissingRequiredFields
}

// Messages renders each entry as "<Label>: <Hint>".
func (e Errors) Messages() []string {
	out := make([]string, len(e))
	for i, fe := range e {
		out[i] = fe.String()
	}
	return out
}

// Labels returns the failing labels in order.
func (e Errors) Labels() []string {
	out := make([]string, len(e))
	for i, fe := range e {
		out[i] = fe.Label
	}
	return out
}
