package services

import (
	"context"
	"time"

	"github.com/quizhive/quiz-service/internal/cache"
	"github.com/quizhive/quiz-service/internal/events"
	"github.com/quizhive/quiz-service/internal/models"
	"github.com/quizhive/quiz-service/internal/repositories"
	"github.com/quizhive/quiz-service/internal/utils"
)

// ===== SERVICE INTERFACES =====

type AttemptService interface {
	Start(ctx context.Context, req *StartAttemptRequest) (*StartAttemptResponse, error)
	SubmitAnswer(ctx context.Context, req *SubmitAnswerRequest) (*SubmitAnswerResponse, error)
	GetProgress(ctx context.Context, attemptID, playerID string) (*AttemptProgressResponse, error)
	GetSummary(ctx context.Context, attemptID, playerID string) (*AttemptSummaryResponse, error)
}

type QuizService interface {
	GetQuiz(ctx context.Context, quizID string) (*QuizView, error)
}

type LeaderboardService interface {
	GetGroupLeaderboard(ctx context.Context, groupID string) ([]models.GroupLeaderboardEntry, error)
	GetQuizLeaderboard(ctx context.Context, groupID, quizID string, limit int) ([]models.QuizLeaderboardEntry, error)
}

type ExportService interface {
	ExportGroupLeaderboard(ctx context.Context, groupID string) ([]byte, error)
}

// ===== REQUEST / RESPONSE STRUCTURES =====

type StartAttemptRequest struct {
	QuizID   string `json:"quiz_id" validate:"required,uuid"`
	PlayerID string `json:"player_id" validate:"required,uuid"`
}

type StartAttemptResponse struct {
	AttemptID      string        `json:"attempt_id"`
	QuizID         string        `json:"quiz_id"`
	TotalQuestions int           `json:"total_questions"`
	StartedAt      time.Time     `json:"started_at"`
	FirstQuestion  *QuestionView `json:"first_question"`
}

type SubmitAnswerRequest struct {
	AttemptID       string `json:"-" validate:"required,uuid"`
	PlayerID        string `json:"player_id" validate:"required,uuid"`
	QuestionID      string `json:"question_id" validate:"required,uuid"`
	SelectedOptions []int  `json:"selected_options" validate:"omitempty,dive,min=0"`
	TimeSpentMs     int    `json:"time_spent_ms" validate:"min=0"`
}

type SubmitAnswerResponse struct {
	WasCorrect   bool                 `json:"was_correct"`
	PointsEarned int                  `json:"points_earned"`
	Score        int                  `json:"score"`
	Status       models.AttemptStatus `json:"status"`
	Progress     int                  `json:"progress"`
	NextQuestion *QuestionView        `json:"next_question,omitempty"`
}

type AttemptProgressResponse struct {
	AttemptID      string               `json:"attempt_id"`
	Status         models.AttemptStatus `json:"status"`
	Score          int                  `json:"score"`
	Progress       int                  `json:"progress"`
	AnsweredCount  int                  `json:"answered_count"`
	TotalQuestions int                  `json:"total_questions"`
	NextQuestion   *QuestionView        `json:"next_question,omitempty"`
}

type AttemptSummaryResponse struct {
	AttemptID          string     `json:"attempt_id"`
	QuizID             string     `json:"quiz_id"`
	FinalScore         int        `json:"final_score"`
	CorrectAnswers     int        `json:"correct_answers"`
	TotalQuestions     int        `json:"total_questions"`
	AccuracyPercentage int        `json:"accuracy_percentage"`
	StartedAt          time.Time  `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at"`
}

// QuestionView is the player-facing projection of a question: the correct
// option set never leaves the service.
type QuestionView struct {
	ID               string              `json:"id"`
	Position         int                 `json:"position"`
	Type             models.QuestionType `json:"type"`
	Text             string              `json:"text"`
	Options          []string            `json:"options"`
	TimeLimitSeconds int                 `json:"time_limit_seconds"`
	BasePoints       int                 `json:"base_points"`
}

func newQuestionView(q *models.Question) *QuestionView {
	if q == nil {
		return nil
	}
	return &QuestionView{
		ID:               q.ID,
		Position:         q.Position,
		Type:             q.Type,
		Text:             q.Text,
		Options:          q.Options,
		TimeLimitSeconds: q.TimeLimitSeconds,
		BasePoints:       q.BasePoints,
	}
}

// QuizView is the player-facing projection of a whole quiz.
type QuizView struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Questions   []QuestionView `json:"questions"`
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Attempt() AttemptService
	Quiz() QuizService
	Leaderboard() LeaderboardService
	Export() ExportService
}

type serviceManager struct {
	attempt     AttemptService
	quiz        QuizService
	leaderboard LeaderboardService
	export      ExportService
}

func NewServiceManager(
	repo repositories.Repository,
	logger utils.Logger,
	validator *utils.Validator,
	locker cache.AttemptLocker,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
) ServiceManager {
	leaderboard := NewLeaderboardService(repo, logger, cacheService)
	return &serviceManager{
		attempt:     NewAttemptService(repo, logger, validator, locker, cacheService, publisher),
		quiz:        NewQuizService(repo, logger, cacheService),
		leaderboard: leaderboard,
		export:      NewExportService(repo, leaderboard, logger),
	}
}

func (m *serviceManager) Attempt() AttemptService         { return m.attempt }
func (m *serviceManager) Quiz() QuizService               { return m.quiz }
func (m *serviceManager) Leaderboard() LeaderboardService { return m.leaderboard }
func (m *serviceManager) Export() ExportService           { return m.export }
