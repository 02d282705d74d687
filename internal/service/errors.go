package service

import "fmt"

// ValidationError reports a single invalid field of a credential about to
// be saved. The message is user-facing; the record is never partially
// written when validation fails.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
