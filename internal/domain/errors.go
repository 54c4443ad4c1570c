package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Pipeline specific errors
	ErrTranslation        ErrorCode = "TRANSLATION_ERROR"
	ErrGenerationStage    ErrorCode = "GENERATION_STAGE_ERROR"
	ErrPersistence        ErrorCode = "PERSISTENCE_ERROR"
	ErrDuplicateDetection ErrorCode = "DUPLICATE_DETECTION_ERROR"

	ErrQuestionNotFound ErrorCode = "QUESTION_NOT_FOUND"
	ErrValidation       ErrorCode = "VALIDATION_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewQuestionNotFoundError(questionID string) *DomainError {
	return NewError(ErrQuestionNotFound, fmt.Sprintf("Question not found with ID: %s", questionID), nil)
}

// NewTranslationError wraps a failed language-conversion call.
// Translation failures are fatal for the current call and are never retried.
func NewTranslationError(err error) *DomainError {
	return NewError(ErrTranslation, "Failed to translate text", err)
}

// NewGenerationStageError wraps a failure of one of the text-generation stages.
func NewGenerationStageError(stage string, err error) *DomainError {
	return NewError(ErrGenerationStage, fmt.Sprintf("Generation stage %q failed", stage), err)
}

// NewPersistenceError wraps a store failure inside one unit of work.
func NewPersistenceError(message string, err error) *DomainError {
	return NewError(ErrPersistence, message, err)
}

// NewDuplicateDetectionError wraps a failed duplicate lookup. Callers must
// treat this as non-fatal: the question was already committed when it occurs.
func NewDuplicateDetectionError(err error) *DomainError {
	return NewError(ErrDuplicateDetection, "Duplicate detection failed", err)
}

// ValidationError represents a validation error
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func NewValidationError(message string) error {
	return &ValidationError{message: message}
}

// FieldError describes one invalid field of an incoming request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates the field errors of one request.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewMissingFieldError(field string) FieldError {
	return FieldError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("has invalid format: %q", value)}
}

func NewOutOfRangeError(field string, value, min, max int) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("must be between %d and %d, got %d", min, max, value)}
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}
