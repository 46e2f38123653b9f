// Package domainerrors carries coded errors across layer boundaries.
//
// Stores return sentinel errors; services translate them into coded errors with
// New or Wrap; transport maps codes to status codes. Codes, not messages, are the
// contract: callers branch with HasCode and never on error text.
package domainerrors

import (
	"errors"
	"sort"
)

// Code identifies an error class.
type Code string

const (
	CodeValidation         Code = "validation_error"
	CodeStateConflict      Code = "state_conflict"
	CodeNotFound           Code = "not_found"
	CodeAccessDenied       Code = "access_denied"
	CodeDependency         Code = "dependency_failure"
	CodeTimeout            Code = "timeout"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeInvariantViolation Code = "invariant_violation"
	CodeConflict           Code = "conflict"
	CodeInternal           Code = "internal_error"
)

// Error is a coded domain error. Fields holds field-level validation detail;
// State holds the authoritative entity for conflicts so callers can reconcile.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	State   any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code to an underlying error. A nil err yields nil.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// WithField adds field-level detail.
func (e *Error) WithField(field, detail string) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = detail
	return e
}

// WithState attaches the current authoritative state of the contested entity.
func (e *Error) WithState(state any) *Error {
	e.State = state
	return e
}

// As extracts the outermost coded error from a chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether any coded error in the chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// Is is an alias of HasCode kept for call sites that read better with it.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeInternal
}

// FieldNames returns the sorted field names carrying detail.
func (e *Error) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
