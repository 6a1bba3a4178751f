package models

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusCompleted  AttemptStatus = "completed"
)

// Domain errors raised by the attempt state machine. They are returned, never
// swallowed; the service layer maps them to caller-facing responses.
var (
	ErrAttemptCompleted = errors.New("attempt is already completed")
	ErrDuplicateAnswer  = errors.New("question has already been answered in this attempt")
	ErrNoQuestions      = errors.New("attempt requires at least one question")
	ErrNegativePoints   = errors.New("points earned must not be negative")
)

// PlayerAnswer is the raw submission for one question: the selected option
// index (or indices for multi-select) and the time the player spent.
type PlayerAnswer struct {
	SelectedOptions []int `json:"selected_options"`
	TimeSpentMs     int   `json:"time_spent_ms"`
}

// IsEmpty reports whether the player submitted nothing (timeout).
func (a PlayerAnswer) IsEmpty() bool {
	return len(a.SelectedOptions) == 0
}

// QuestionResult binds a question to the player's answer and its evaluation.
// Immutable once recorded on an attempt.
type QuestionResult struct {
	QuestionID   string       `json:"question_id"`
	Answer       PlayerAnswer `json:"answer"`
	WasCorrect   bool         `json:"was_correct"`
	PointsEarned int          `json:"points_earned"`
	AnsweredAt   time.Time    `json:"answered_at"`
}

// QuizAttempt tracks one player's run through one quiz: progress, score,
// per-question results and completion. Results are stored in submission
// order; at most one result per question.
type QuizAttempt struct {
	ID             string        `json:"id" gorm:"primaryKey;size:36"`
	QuizID         string        `json:"quiz_id" gorm:"not null;size:36;index:idx_attempts_quiz_player"`
	PlayerID       string        `json:"player_id" gorm:"not null;size:36;index:idx_attempts_quiz_player"`
	TotalQuestions int           `json:"total_questions" gorm:"not null"`
	Score          int           `json:"score" gorm:"not null;default:0"`
	Status         AttemptStatus `json:"status" gorm:"not null;default:in_progress;index"`

	QuestionResults datatypes.JSONSlice[QuestionResult] `json:"question_results" gorm:"type:jsonb"`

	StartedAt   time.Time  `json:"started_at" gorm:"not null"`
	CompletedAt *time.Time `json:"completed_at"`

	// Version backs the optimistic compare-and-swap on save; concurrent
	// submissions for the same attempt cannot silently drop points.
	Version int `json:"-" gorm:"not null;default:1"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// NewQuizAttempt creates a fresh in-progress attempt. The question count is
// fixed at creation and acts as the progress denominator.
func NewQuizAttempt(quizID, playerID string, totalQuestions int) (*QuizAttempt, error) {
	if totalQuestions <= 0 {
		return nil, ErrNoQuestions
	}

	now := time.Now()
	return &QuizAttempt{
		ID:              uuid.New().String(),
		QuizID:          quizID,
		PlayerID:        playerID,
		TotalQuestions:  totalQuestions,
		Score:           0,
		Status:          AttemptStatusInProgress,
		QuestionResults: datatypes.JSONSlice[QuestionResult]{},
		StartedAt:       now,
		Version:         1,
	}, nil
}

// SubmitResult records the evaluated result for one question and advances the
// state machine. It fails with ErrAttemptCompleted on a terminal attempt and
// ErrDuplicateAnswer when the question already has a result; neither guard
// mutates the attempt. Completion is stamped exactly once, when every
// question has a result.
func (a *QuizAttempt) SubmitResult(result QuestionResult) error {
	if a.Status == AttemptStatusCompleted {
		return ErrAttemptCompleted
	}
	if a.HasAnswered(result.QuestionID) {
		return ErrDuplicateAnswer
	}
	if result.PointsEarned < 0 {
		return ErrNegativePoints
	}

	a.QuestionResults = append(a.QuestionResults, result)
	a.Score += result.PointsEarned

	if len(a.QuestionResults) == a.TotalQuestions {
		a.Status = AttemptStatusCompleted
		if a.CompletedAt == nil {
			now := result.AnsweredAt
			if now.IsZero() {
				now = time.Now()
			}
			a.CompletedAt = &now
		}
	}

	return nil
}

// HasAnswered reports whether a result for the question has been recorded.
func (a *QuizAttempt) HasAnswered(questionID string) bool {
	for _, r := range a.QuestionResults {
		if r.QuestionID == questionID {
			return true
		}
	}
	return false
}

// NextQuestionID returns the first unanswered question in the quiz-defined
// order (not submission order). The second return value is false when every
// question has been answered.
func (a *QuizAttempt) NextQuestionID(orderedQuestionIDs []string) (string, bool) {
	for _, id := range orderedQuestionIDs {
		if !a.HasAnswered(id) {
			return id, true
		}
	}
	return "", false
}

func (a *QuizAttempt) AnsweredCount() int {
	return len(a.QuestionResults)
}

// Progress is the percentage of questions answered, rounded to the nearest
// integer.
func (a *QuizAttempt) Progress() int {
	if a.TotalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(len(a.QuestionResults)) / float64(a.TotalQuestions) * 100))
}

func (a *QuizAttempt) IsCompleted() bool {
	return a.Status == AttemptStatusCompleted
}

func (a *QuizAttempt) CorrectAnswersCount() int {
	count := 0
	for _, r := range a.QuestionResults {
		if r.WasCorrect {
			count++
		}
	}
	return count
}

// AccuracyPercentage is correct answers over total questions, rounded to the
// nearest integer. Meaningful once the attempt is completed; the service
// layer gates summary access on completion status.
func (a *QuizAttempt) AccuracyPercentage() int {
	if a.TotalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(a.CorrectAnswersCount()) / float64(a.TotalQuestions) * 100))
}
