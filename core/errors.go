package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// LoadError marks a failed read from the backing query service. Callers must
// short-circuit to an empty state instead of working on partial data.
type LoadError struct {
	Op  string
	Err error
}

func NewLoadError(op string, err error) error {
	return &LoadError{Op: op, Err: err}
}

func (err LoadError) Error() string {
	return "loading " + err.Op + ": " + err.Err.Error()
}

func (err LoadError) Unwrap() error { return err.Err }

func IsLoadError(err error) bool {
	_, ok := errors.Cause(err).(*LoadError)
	return ok
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
