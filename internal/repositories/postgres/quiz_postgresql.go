package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/quizhive/quiz-service/internal/models"
	"github.com/quizhive/quiz-service/internal/repositories"
)

type quizRepository struct {
	db *gorm.DB
}

func newQuizRepository(db *gorm.DB) repositories.QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.WithContext(ctx).First(&quiz, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &quiz, nil
}

func (r *quizRepository) GetByIDWithQuestions(ctx context.Context, id string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position ASC")
		}).
		First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &quiz, nil
}
