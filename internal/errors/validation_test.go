package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("quiz_id", "must be a valid UUID", "not-a-uuid")

	assert.Equal(t, "quiz_id", err.Field)
	assert.Equal(t, "must be a valid UUID", err.Message)
	assert.Equal(t, "not-a-uuid", err.Value)
	assert.Equal(t, "validation error on field 'quiz_id': must be a valid UUID", err.Error())
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs = append(errs, *NewValidationError("quiz_id", "is required", nil))
	assert.Equal(t, "validation failed: quiz_id is required", errs.Error())

	errs = append(errs, *NewValidationError("time_spent_ms", "must be at least 0", nil))
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("question_id", "is required", "required", nil)

	assert.Equal(t, "required", err.Rule)
	assert.Equal(t, "question_id", err.Field)
}
