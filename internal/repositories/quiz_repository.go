package repositories

import (
	"context"

	"github.com/quizhive/quiz-service/internal/models"
)

// QuizRepository is the read-only quiz catalog the attempt engine consumes.
type QuizRepository interface {
	GetByID(ctx context.Context, id string) (*models.Quiz, error)

	// GetByIDWithQuestions loads the quiz with its questions ordered by
	// position; this order is canonical for next-question resolution.
	GetByIDWithQuestions(ctx context.Context, id string) (*models.Quiz, error)
}
