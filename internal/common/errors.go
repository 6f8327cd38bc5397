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
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDatabase     = errors.New("database error")
	ErrValidation   = errors.New("validation failed")

	// ErrRendererUnavailable means PDF submissions cannot be processed in
	// this deployment. An ops problem, not a user one.
	ErrRendererUnavailable = errors.New("pdf renderer unavailable")

	// ErrCorruptDocument means the submitted document could not be decoded.
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrEvaluationInProgress means another receipt for the same order is
	// still being evaluated.
	ErrEvaluationInProgress = errors.New("evaluation already in progress")
)

// Error constructors
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
