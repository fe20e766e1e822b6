package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller passed something the engine cannot use
	CodeInvalidArgument Code = "invalid_argument"

	// CodeInvalidSelection indicates a menu index or name outside the offered choices
	CodeInvalidSelection Code = "invalid_selection"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeInsufficientGold indicates the character cannot afford the action
	CodeInsufficientGold Code = "insufficient_gold"

	// CodeAlreadyPurchased indicates the item name is already in the purchase record
	CodeAlreadyPurchased Code = "already_purchased"

	// CodePersistenceRead indicates stored state exists but could not be read back
	CodePersistenceRead Code = "persistence_read"

	// CodePersistenceWrite indicates state could not be written to storage
	CodePersistenceWrite Code = "persistence_write"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"

	// CodeValidation indicates a validation error
	CodeValidation Code = "validation"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context.
// A wrapped *Error keeps its code; anything else becomes CodeUnknown.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var gameErr *Error
	if errors.As(err, &gameErr) {
		return &Error{
			Code:    gameErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(gameErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// Helper functions for common error types

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// InvalidSelectionf creates a formatted invalid selection error
func InvalidSelectionf(format string, args ...any) *Error {
	return Newf(CodeInvalidSelection, format, args...)
}

// InsufficientGoldf creates a formatted insufficient gold error
func InsufficientGoldf(format string, args ...any) *Error {
	return Newf(CodeInsufficientGold, format, args...)
}

// AlreadyPurchasedf creates a formatted already purchased error
func AlreadyPurchasedf(format string, args ...any) *Error {
	return Newf(CodeAlreadyPurchased, format, args...)
}

// PersistenceRead wraps a storage read failure
func PersistenceRead(err error, message string) *Error {
	if err == nil {
		return New(CodePersistenceRead, message)
	}
	return WrapWithCode(err, CodePersistenceRead, message)
}

// PersistenceWrite wraps a storage write failure
func PersistenceWrite(err error, message string) *Error {
	if err == nil {
		return New(CodePersistenceWrite, message)
	}
	return WrapWithCode(err, CodePersistenceWrite, message)
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var gameErr *Error
	if errors.As(err, &gameErr) {
		return gameErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsInvalidSelection checks if the error is an invalid selection error
func IsInvalidSelection(err error) bool {
	return Is(err, CodeInvalidSelection)
}

// IsInsufficientGold checks if the error is an insufficient gold error
func IsInsufficientGold(err error) bool {
	return Is(err, CodeInsufficientGold)
}

// IsAlreadyPurchased checks if the error is an already purchased error
func IsAlreadyPurchased(err error) bool {
	return Is(err, CodeAlreadyPurchased)
}

// IsPersistenceRead checks if the error is a storage read failure
func IsPersistenceRead(err error) bool {
	return Is(err, CodePersistenceRead)
}

// IsPersistenceWrite checks if the error is a storage write failure
func IsPersistenceWrite(err error) bool {
	return Is(err, CodePersistenceWrite)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var gameErr *Error
	if errors.As(err, &gameErr) {
		return gameErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var gameErr *Error
	if errors.As(err, &gameErr) {
		return gameErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
