package repositories

import (
	"context"

	"github.com/quizhive/quiz-service/internal/models"
)

// AttemptRepository persists and retrieves quiz attempts.
//
// Update performs a version-checked write: the row is only updated when the
// stored version matches the version the attempt was loaded with, and the
// version is bumped on success. A lost race returns ErrVersionConflict so
// concurrent submissions for the same attempt can never silently drop
// points.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	GetByID(ctx context.Context, id string) (*models.QuizAttempt, error)
	Update(ctx context.Context, attempt *models.QuizAttempt) error
	Delete(ctx context.Context, id string) error

	// GetInProgressAttempt finds the active attempt for (player, quiz), used
	// to enforce at most one in-progress attempt per pair.
	GetInProgressAttempt(ctx context.Context, playerID, quizID string) (*models.QuizAttempt, error)

	List(ctx context.Context, filters AttemptFilters) ([]*models.QuizAttempt, int64, error)

	// GetCompletedAttempts returns completed attempts restricted to the given
	// quiz and user id sets; leaderboard aggregation runs over this slice.
	GetCompletedAttempts(ctx context.Context, quizIDs, userIDs []string) ([]*models.QuizAttempt, error)
}
