package model

import "fmt"

// SerializeError represents document generation errors with format context
type SerializeError struct {
	Format  Format
	Field   string
	Message string
	Cause   error
}

func (e *SerializeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Format, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Format, e.Field, e.Message)
}

func (e *SerializeError) Unwrap() error {
	return e.Cause
}

// NewSerializeError creates a new serialize error
func NewSerializeError(format Format, field, message string, cause error) *SerializeError {
	return &SerializeError{
		Format:  format,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError represents validation failures on a record field
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// MissingFieldError signals a record that is incomplete for a target format.
// Distinct from ValidationError: the field is absent, not malformed. A
// partial regulatory document has no value downstream, so serializers fail
// instead of emitting one.
type MissingFieldError struct {
	Format Format
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record incomplete for %s: missing %s", e.Format, e.Field)
}

// NewMissingFieldError creates a new missing field error
func NewMissingFieldError(format Format, field string) *MissingFieldError {
	return &MissingFieldError{
		Format: format,
		Field:  field,
	}
}
