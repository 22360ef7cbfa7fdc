package util

import "fmt"

// FormError carries per-field validation messages keyed by JSON field name.
type FormError struct {
	Message string
	Errors  map[string]string
}

func NewFormError(message string, fields map[string]string) *FormError {
	return &FormError{Message: message, Errors: fields}
}

func (e *FormError) Error() string {
	return fmt.Sprintf("form error: %s", e.Message)
}
