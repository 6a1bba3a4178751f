package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizhive/quiz-service/internal/models"
	"github.com/quizhive/quiz-service/internal/repositories"
)

type attemptRepository struct {
	db *gorm.DB
}

func newAttemptRepository(db *gorm.DB) repositories.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	if err := r.db.WithContext(ctx).Create(attempt).Error; err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}
	return nil
}

func (r *attemptRepository) GetByID(ctx context.Context, id string) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	if err := r.db.WithContext(ctx).First(&attempt, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &attempt, nil
}

// Update writes the attempt back with an optimistic version check. The row
// is matched on (id, version-as-loaded) and the version is bumped; zero rows
// affected means a concurrent writer won and the caller gets
// ErrVersionConflict instead of a lost update.
func (r *attemptRepository) Update(ctx context.Context, attempt *models.QuizAttempt) error {
	loadedVersion := attempt.Version
	attempt.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Where("id = ? AND version = ?", attempt.ID, loadedVersion).
		Select("score", "status", "question_results", "completed_at", "version", "updated_at").
		Updates(attempt)

	if result.Error != nil {
		attempt.Version = loadedVersion
		return fmt.Errorf("failed to update attempt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		attempt.Version = loadedVersion
		return repositories.ErrVersionConflict
	}
	return nil
}

func (r *attemptRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.QuizAttempt{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete attempt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *attemptRepository) GetInProgressAttempt(ctx context.Context, playerID, quizID string) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND quiz_id = ? AND status = ?", playerID, quizID, models.AttemptStatusInProgress).
		Order("started_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &attempt, nil
}

func (r *attemptRepository) List(ctx context.Context, filters repositories.AttemptFilters) ([]*models.QuizAttempt, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.QuizAttempt{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.PlayerID != nil {
		query = query.Where("player_id = ?", *filters.PlayerID)
	}
	if filters.QuizID != nil {
		query = query.Where("quiz_id = ?", *filters.QuizID)
	}
	if filters.DateFrom != nil {
		query = query.Where("started_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("started_at <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count attempts: %w", err)
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := filters.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var attempts []*models.QuizAttempt
	if err := query.Find(&attempts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list attempts: %w", err)
	}
	return attempts, total, nil
}

func (r *attemptRepository) GetCompletedAttempts(ctx context.Context, quizIDs, userIDs []string) ([]*models.QuizAttempt, error) {
	if len(quizIDs) == 0 || len(userIDs) == 0 {
		return nil, nil
	}

	var attempts []*models.QuizAttempt
	err := r.db.WithContext(ctx).
		Where("status = ? AND quiz_id IN ? AND player_id IN ?", models.AttemptStatusCompleted, quizIDs, userIDs).
		Order("completed_at ASC").
		Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get completed attempts: %w", err)
	}
	return attempts, nil
}
