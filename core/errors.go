package core

import "github.com/pkg/errors"

// FieldError ties a validation message to the JSON field it concerns.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries per-field messages for a rejected request body.
// The API layer renders it as a 400 with a field -> message map.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdownError marks a state the server cannot recover from in place.
// The error handler signals a graceful shutdown when it sees one.
type shutdownError struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdownError{message: msg}
}

func (s shutdownError) Error() string {
	return s.message
}

// IsShutdown reports whether err (or its cause) requests a shutdown.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdownError)
	return ok
}
