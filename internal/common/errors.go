package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes for the extraction pipeline. Every component-level failure is
// converted to one of these at its origin; an AppError crossing a component
// boundary is a value, never a panic.
const (
	CodeNoImage         = "NO_IMAGE"
	CodeOCRFailure      = "OCR_FAILURE"
	CodeModelCall       = "MODEL_CALL_FAILURE"
	CodeResponseParse   = "RESPONSE_PARSE_FAILURE"
	CodeUnknownDocument = "UNKNOWN_DOCUMENT_TYPE"
	CodeInternal        = "INTERNAL"
)

// Common application errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrModelCall    = errors.New("model call failed")
	ErrOCREmpty     = errors.New("ocr produced no usable text")
)

// NewAppError builds an AppError with an explicit code.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// CodeOf returns the AppError code for err, or CodeInternal when err is not
// an AppError.
func CodeOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// MessageOf returns the user-facing message for err. Non-AppError failures
// map to a generic message so internals never leak to the caller.
func MessageOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Unexpected error"
}
