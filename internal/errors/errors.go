package errors

import (
	stderrors "errors"
	"fmt"

	"lastmile/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeMissingSource     = "MISSING_SOURCE"
	CodeUnparseableSource = "UNPARSEABLE_SOURCE"
	CodeUnresolvedField   = "UNRESOLVED_FIELD"
	CodeEmptyDataset      = "EMPTY_DATASET"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeNotFound          = "NOT_FOUND"
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

// FromDomain maps a pipeline error onto a coded AppError so the HTTP
// boundary can pick a status without knowing domain sentinels.
func FromDomain(err error) *AppError {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, core.ErrMissingSource):
		return &AppError{Code: CodeMissingSource, Message: "dataset file not found", Cause: err}
	case stderrors.Is(err, core.ErrUnparseableSource):
		return &AppError{Code: CodeUnparseableSource, Message: "dataset file is not parseable", Cause: err}
	case stderrors.Is(err, core.ErrUnresolvedField):
		return &AppError{Code: CodeUnresolvedField, Message: "required column could not be resolved", Cause: err}
	case stderrors.Is(err, core.ErrEmptyDataset):
		return &AppError{Code: CodeEmptyDataset, Message: "dataset is empty after cleaning", Cause: err}
	case stderrors.Is(err, core.ErrUnknownField):
		return &AppError{Code: CodeInvalidInput, Message: "unknown field", Cause: err}
	case stderrors.Is(err, core.ErrSessionNotFound):
		return &AppError{Code: CodeNotFound, Message: "session not found", Cause: err}
	default:
		return &AppError{Code: CodeInternalError, Message: "internal error", Cause: err}
	}
}
