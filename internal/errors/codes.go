package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a class of time parsing failure.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeUnparseableTime indicates no recognizer matched the input.
	ErrCodeUnparseableTime ErrorCode = "UNPARSEABLE_TIME"
	// ErrCodeContextCanceled indicates the operation was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
)

// TimeError is a structured error for time parsing operations.
type TimeError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *TimeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *TimeError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *TimeError) WithContext(key string, value interface{}) *TimeError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *TimeError {
	return &TimeError{Code: ErrCodeInvalidArgument, Message: msg}
}

// UnparseableTime creates an error for input no recognizer understood.
func UnparseableTime(input string, cause error) *TimeError {
	e := &TimeError{Code: ErrCodeUnparseableTime, Message: "unable to parse time", Cause: cause}
	return e.WithContext("input", input)
}

// ContextCanceled creates a context canceled error.
func ContextCanceled(cause error) *TimeError {
	return &TimeError{Code: ErrCodeContextCanceled, Message: "operation canceled", Cause: cause}
}

// Wrap wraps an existing error with a code.
func Wrap(cause error, code ErrorCode, msg string) *TimeError {
	return &TimeError{Code: code, Message: msg, Cause: cause}
}

// IsCode reports whether err, or anything it wraps, carries code.
func IsCode(err error, code ErrorCode) bool {
	return GetCodeFromError(err, "") == code
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if no TimeError is in the chain.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	var tErr *TimeError
	if stderrors.As(err, &tErr) {
		return tErr.Code
	}
	return defaultCode
}
