package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quizhive/quiz-service/internal/cache"
	"github.com/quizhive/quiz-service/internal/events"
	"github.com/quizhive/quiz-service/internal/models"
	"github.com/quizhive/quiz-service/internal/repositories"
	"github.com/quizhive/quiz-service/internal/scoring"
	"github.com/quizhive/quiz-service/internal/utils"
)

type attemptService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
	locker    cache.AttemptLocker
	cache     cache.CacheService
	publisher events.EventPublisher
	opLog     *ServiceLogger
}

func NewAttemptService(
	repo repositories.Repository,
	logger utils.Logger,
	validator *utils.Validator,
	locker cache.AttemptLocker,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
) AttemptService {
	return &attemptService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		locker:    locker,
		cache:     cacheService,
		publisher: publisher,
		opLog:     NewServiceLogger(utils.ToSlogLogger(logger), LogConfig{Service: "quiz-service", Component: "attempt"}),
	}
}

// ===== CORE ATTEMPT OPERATIONS =====

func (s *attemptService) Start(ctx context.Context, req *StartAttemptRequest) (resp *StartAttemptResponse, err error) {
	started := time.Now()
	defer func() { s.opLog.LogOperation(ctx, "start_attempt", req.PlayerID, req.QuizID, "quiz", time.Since(started), err) }()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, req.QuizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if len(quiz.Questions) == 0 {
		return nil, ErrQuizHasNoQuestions
	}

	// At most one in-progress attempt per (player, quiz).
	existing, err := s.repo.Attempt().GetInProgressAttempt(ctx, req.PlayerID, req.QuizID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check for in-progress attempt: %w", err)
	}
	if existing != nil {
		return nil, ErrAttemptInProgressExists
	}

	attempt, err := models.NewQuizAttempt(req.QuizID, req.PlayerID, len(quiz.Questions))
	if err != nil {
		return nil, err
	}

	if err = s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	s.logger.Info("Quiz attempt started",
		"attempt_id", attempt.ID,
		"quiz_id", req.QuizID,
		"player_id", req.PlayerID,
		"total_questions", attempt.TotalQuestions)

	s.publish(ctx, events.NewQuizEvent(events.EventAttemptStarted, events.AttemptStartedEvent{
		AttemptID:      attempt.ID,
		QuizID:         attempt.QuizID,
		PlayerID:       attempt.PlayerID,
		TotalQuestions: attempt.TotalQuestions,
		StartedAt:      attempt.StartedAt,
	}))

	firstID, _ := attempt.NextQuestionID(quiz.OrderedQuestionIDs())
	first, _ := quiz.QuestionByID(firstID)

	return &StartAttemptResponse{
		AttemptID:      attempt.ID,
		QuizID:         attempt.QuizID,
		TotalQuestions: attempt.TotalQuestions,
		StartedAt:      attempt.StartedAt,
		FirstQuestion:  newQuestionView(first),
	}, nil
}

func (s *attemptService) SubmitAnswer(ctx context.Context, req *SubmitAnswerRequest) (resp *SubmitAnswerResponse, err error) {
	started := time.Now()
	defer func() {
		s.opLog.LogOperation(ctx, "submit_answer", req.PlayerID, req.AttemptID, "attempt", time.Since(started), err)
	}()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Serialize load-mutate-save per attempt id; a concurrent submission for
	// the same attempt waits its turn or fails fast.
	release, err := s.locker.Lock(ctx, req.AttemptID)
	if err != nil {
		if errors.Is(err, cache.ErrLockHeld) {
			return nil, ErrAttemptBusy
		}
		return nil, fmt.Errorf("failed to lock attempt: %w", err)
	}
	defer release()

	attempt, err := s.repo.Attempt().GetByID(ctx, req.AttemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	if attempt.PlayerID != req.PlayerID {
		return nil, NewPermissionError(req.PlayerID, req.AttemptID, "attempt", "submit_answer", "not owned by player")
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, attempt.QuizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	question, ok := quiz.QuestionByID(req.QuestionID)
	if !ok {
		return nil, ErrQuestionNotFound
	}

	answer := models.PlayerAnswer{
		SelectedOptions: req.SelectedOptions,
		TimeSpentMs:     req.TimeSpentMs,
	}

	result := scoring.Evaluate(question, answer)

	// Guard violations (already completed, duplicate question) surface to
	// the caller unchanged; nothing has been persisted at this point.
	if err = attempt.SubmitResult(result); err != nil {
		return nil, err
	}

	if err = s.repo.Attempt().Update(ctx, attempt); err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	s.logger.Info("Answer submitted",
		"attempt_id", attempt.ID,
		"question_id", req.QuestionID,
		"was_correct", result.WasCorrect,
		"points_earned", result.PointsEarned,
		"progress", attempt.Progress())

	s.publish(ctx, events.NewQuizEvent(events.EventAnswerSubmitted, events.AnswerSubmittedEvent{
		AttemptID:    attempt.ID,
		QuizID:       attempt.QuizID,
		PlayerID:     attempt.PlayerID,
		QuestionID:   req.QuestionID,
		WasCorrect:   result.WasCorrect,
		PointsEarned: result.PointsEarned,
		Score:        attempt.Score,
		Progress:     attempt.Progress(),
	}))

	if attempt.IsCompleted() {
		s.onAttemptCompleted(ctx, attempt)
	}

	response := &SubmitAnswerResponse{
		WasCorrect:   result.WasCorrect,
		PointsEarned: result.PointsEarned,
		Score:        attempt.Score,
		Status:       attempt.Status,
		Progress:     attempt.Progress(),
	}
	if nextID, found := attempt.NextQuestionID(quiz.OrderedQuestionIDs()); found {
		next, _ := quiz.QuestionByID(nextID)
		response.NextQuestion = newQuestionView(next)
	}
	return response, nil
}

// ===== GET OPERATIONS =====

func (s *attemptService) GetProgress(ctx context.Context, attemptID, playerID string) (*AttemptProgressResponse, error) {
	attempt, err := s.getOwnedAttempt(ctx, attemptID, playerID, "get_progress")
	if err != nil {
		return nil, err
	}

	response := &AttemptProgressResponse{
		AttemptID:      attempt.ID,
		Status:         attempt.Status,
		Score:          attempt.Score,
		Progress:       attempt.Progress(),
		AnsweredCount:  attempt.AnsweredCount(),
		TotalQuestions: attempt.TotalQuestions,
	}

	if !attempt.IsCompleted() {
		quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, attempt.QuizID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrQuizNotFound
			}
			return nil, fmt.Errorf("failed to get quiz: %w", err)
		}
		if nextID, found := attempt.NextQuestionID(quiz.OrderedQuestionIDs()); found {
			next, _ := quiz.QuestionByID(nextID)
			response.NextQuestion = newQuestionView(next)
		}
	}

	return response, nil
}

func (s *attemptService) GetSummary(ctx context.Context, attemptID, playerID string) (*AttemptSummaryResponse, error) {
	attempt, err := s.getOwnedAttempt(ctx, attemptID, playerID, "get_summary")
	if err != nil {
		return nil, err
	}

	// Summary is gated on completion: no partial or zero-filled data.
	if !attempt.IsCompleted() {
		return nil, ErrAttemptNotCompleted
	}

	return &AttemptSummaryResponse{
		AttemptID:          attempt.ID,
		QuizID:             attempt.QuizID,
		FinalScore:         attempt.Score,
		CorrectAnswers:     attempt.CorrectAnswersCount(),
		TotalQuestions:     attempt.TotalQuestions,
		AccuracyPercentage: attempt.AccuracyPercentage(),
		StartedAt:          attempt.StartedAt,
		CompletedAt:        attempt.CompletedAt,
	}, nil
}

// ===== HELPERS =====

func (s *attemptService) getOwnedAttempt(ctx context.Context, attemptID, playerID, action string) (*models.QuizAttempt, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt.PlayerID != playerID {
		return nil, NewPermissionError(playerID, attemptID, "attempt", action, "not owned by player")
	}
	return attempt, nil
}

func (s *attemptService) onAttemptCompleted(ctx context.Context, attempt *models.QuizAttempt) {
	completedAt := time.Now()
	if attempt.CompletedAt != nil {
		completedAt = *attempt.CompletedAt
	}

	s.logger.Info("Quiz attempt completed",
		"attempt_id", attempt.ID,
		"quiz_id", attempt.QuizID,
		"player_id", attempt.PlayerID,
		"final_score", attempt.Score,
		"accuracy", attempt.AccuracyPercentage())

	s.publish(ctx, events.NewQuizEvent(events.EventAttemptCompleted, events.AttemptCompletedEvent{
		AttemptID:          attempt.ID,
		QuizID:             attempt.QuizID,
		PlayerID:           attempt.PlayerID,
		FinalScore:         attempt.Score,
		CorrectAnswers:     attempt.CorrectAnswersCount(),
		TotalQuestions:     attempt.TotalQuestions,
		AccuracyPercentage: attempt.AccuracyPercentage(),
		CompletedAt:        completedAt,
	}))

	// Standings changed; drop cached leaderboards so the next read rebuilds.
	if err := s.cache.DeletePattern(ctx, "leaderboard:*"); err != nil {
		s.logger.Warn("Failed to invalidate leaderboard cache", "error", err)
	}
}

// publish is best-effort: event delivery failures are logged, never allowed
// to fail the player's request.
func (s *attemptService) publish(ctx context.Context, event *events.QuizEvent) {
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish quiz event",
			"event_type", event.Type,
			"error", err)
	}
}
