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

// Common application errors
var (
	// ErrConfig marks invalid profile data. Fatal: raised at load time,
	// before any document is processed.
	ErrConfig = errors.New("configuration error")
	// ErrExtraction marks an unrecoverable per-document failure (layout
	// extractor or regex engine). Other documents are unaffected.
	ErrExtraction   = errors.New("extraction failure")
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func ConfigError(message string, cause error) error {
	return &AppError{Code: "CONFIG_ERROR", Message: message, Cause: errors.Join(ErrConfig, cause)}
}

func ConfigErrorf(format string, args ...interface{}) error {
	return ConfigError(fmt.Sprintf(format, args...), nil)
}

func ExtractionError(message string, cause error) error {
	return &AppError{Code: "EXTRACTION_FAILURE", Message: message, Cause: errors.Join(ErrExtraction, cause)}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
