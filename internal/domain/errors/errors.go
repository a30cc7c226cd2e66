package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Domain errors
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Error codes carried in response bodies.
const (
	CodeInvalidInput     = "ERR_INVALID_INPUT"
	CodeValidationFailed = "ERR_VALIDATION_FAILED"
	CodeConflict         = "ERR_CONFLICT"
	CodeIdempotencyReuse = "ERR_IDEMPOTENCY_KEY_REUSED"
	CodeCreationFailed   = "ERR_CREATION_FAILED"
	CodeQueryFailed      = "ERR_QUERY_FAILED"
	CodeInternalError    = "ERR_INTERNAL"
)

// MaxDetailLength bounds store fault text surfaced to clients.
const MaxDetailLength = 80

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrConflict)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// FieldViolation is one failed constraint on one input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v FieldViolation) String() string {
	return v.Field + ": " + v.Message
}

// ValidationError lists every constraint an input violated.
type ValidationError struct {
	Violations []FieldViolation
}

// NewValidationError builds a ValidationError from one or more violations.
func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}

// Add appends a violation.
func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

// HasViolations reports whether anything was recorded.
func (e *ValidationError) HasViolations() bool {
	return e != nil && len(e.Violations) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Store operations named in StoreError.
const (
	OpCreate = "create"
	OpList   = "list"
)

// StoreError wraps a store fault raised while running Op.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err as a fault of op.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Summary(), Truncate(errText(e.Err), MaxDetailLength))
}

func (e *StoreError) Unwrap() error { return e.Err }

// Summary is the generic, client-facing description of the failure.
func (e *StoreError) Summary() string {
	if e.Op == OpCreate {
		return "creation failed"
	}
	return "query failed"
}

// Status is the HTTP status a StoreError maps to: creation faults are reported as 400.
func (e *StoreError) Status() int {
	if e.Op == OpCreate {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Code is the response error code for the operation.
func (e *StoreError) Code() string {
	if e.Op == OpCreate {
		return CodeCreationFailed
	}
	return CodeQueryFailed
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
