package services

import (
	"errors"
	"fmt"

	apperrors "github.com/quizhive/quiz-service/internal/errors"
	"github.com/quizhive/quiz-service/internal/models"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrConflict         = errors.New("resource conflict")

	// Quiz specific errors
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizHasNoQuestions = errors.New("quiz has no questions")
	ErrQuestionNotFound   = errors.New("question not found in quiz")

	// Attempt specific errors
	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrAttemptInProgressExists = errors.New("an in-progress attempt already exists for this quiz")
	ErrAttemptNotCompleted     = errors.New("attempt is not completed")
	ErrAttemptBusy             = errors.New("attempt is being updated by another request")

	// State machine guard violations surface unchanged from the aggregate.
	ErrAttemptAlreadyCompleted = models.ErrAttemptCompleted
	ErrDuplicateAnswer         = models.ErrDuplicateAnswer

	// Group/User errors
	ErrGroupNotFound = errors.New("group not found")
	ErrUserNotFound  = errors.New("user not found")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID string `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %s - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewPermissionError(userID, resourceID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, ErrGroupNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsInvalidState checks if error represents a forbidden state transition.
// These are deterministic client errors, never retried.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrAttemptAlreadyCompleted) ||
		errors.Is(err, ErrDuplicateAnswer) ||
		errors.Is(err, ErrAttemptNotCompleted) ||
		errors.Is(err, ErrAttemptInProgressExists)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}

// IsPermission checks if error represents a permission failure
func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrAttemptBusy)
}
