package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quizhive/quiz-service/internal/cache"
	"github.com/quizhive/quiz-service/internal/repositories"
	"github.com/quizhive/quiz-service/internal/utils"
)

const quizViewCacheTTL = 5 * time.Minute

type quizService struct {
	repo   repositories.Repository
	logger utils.Logger
	cache  cache.CacheService
}

func NewQuizService(repo repositories.Repository, logger utils.Logger, cacheService cache.CacheService) QuizService {
	return &quizService{
		repo:   repo,
		logger: logger,
		cache:  cacheService,
	}
}

// GetQuiz returns the player-facing view of a quiz. Correct options are
// stripped from every question before the view is cached or returned.
func (s *quizService) GetQuiz(ctx context.Context, quizID string) (*QuizView, error) {
	cacheKey := "quiz:view:" + quizID

	var cached QuizView
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Quiz cache read failed", "quiz_id", quizID, "error", err)
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	view := &QuizView{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   make([]QuestionView, 0, len(quiz.Questions)),
	}
	for i := range quiz.Questions {
		view.Questions = append(view.Questions, *newQuestionView(&quiz.Questions[i]))
	}

	if err := s.cache.Set(ctx, cacheKey, view, quizViewCacheTTL); err != nil {
		s.logger.Warn("Quiz cache write failed", "quiz_id", quizID, "error", err)
	}
	return view, nil
}
