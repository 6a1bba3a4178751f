package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultFor(questionID string, correct bool, points int) QuestionResult {
	return QuestionResult{
		QuestionID:   questionID,
		Answer:       PlayerAnswer{SelectedOptions: []int{0}, TimeSpentMs: 1000},
		WasCorrect:   correct,
		PointsEarned: points,
		AnsweredAt:   time.Now(),
	}
}

func TestNewQuizAttempt(t *testing.T) {
	attempt, err := NewQuizAttempt("quiz-1", "player-1", 3)
	require.NoError(t, err)

	assert.NotEmpty(t, attempt.ID)
	assert.Equal(t, "quiz-1", attempt.QuizID)
	assert.Equal(t, "player-1", attempt.PlayerID)
	assert.Equal(t, 3, attempt.TotalQuestions)
	assert.Equal(t, AttemptStatusInProgress, attempt.Status)
	assert.Zero(t, attempt.Score)
	assert.Empty(t, attempt.QuestionResults)
	assert.Nil(t, attempt.CompletedAt)
	assert.Equal(t, 1, attempt.Version)
}

func TestNewQuizAttempt_RequiresQuestions(t *testing.T) {
	_, err := NewQuizAttempt("quiz-1", "player-1", 0)
	assert.ErrorIs(t, err, ErrNoQuestions)

	_, err = NewQuizAttempt("quiz-1", "player-1", -1)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestSubmitResult_AccumulatesScore(t *testing.T) {
	attempt, err := NewQuizAttempt("quiz-1", "player-1", 3)
	require.NoError(t, err)

	require.NoError(t, attempt.SubmitResult(resultFor("q1", true, 800)))
	assert.Equal(t, 800, attempt.Score)
	assert.Equal(t, AttemptStatusInProgress, attempt.Status)

	require.NoError(t, attempt.SubmitResult(resultFor("q2", false, 0)))
	assert.Equal(t, 800, attempt.Score)

	require.NoError(t, attempt.SubmitResult(resultFor("q3", true, 500)))
	assert.Equal(t, 1300, attempt.Score)
}

func TestSubmitResult_DuplicateQuestion(t *testing.T) {
	attempt, err := NewQuizAttempt("quiz-1", "player-1", 2)
	require.NoError(t, err)

	require.NoError(t, attempt.SubmitResult(resultFor("q1", true, 500)))

	err = attempt.SubmitResult(resultFor("q1", true, 900))
	assert.ErrorIs(t, err, ErrDuplicateAnswer)

	// The rejected submission must not change any state.
	assert.Equal(t, 500, attempt.Score)
	assert.Len(t, attempt.QuestionResults, 1)
	assert.Equal(t, AttemptStatusInProgress, attempt.Status)
}

func TestSubmitResult_CompletedAttempt(t *testing.T) {
	attempt, err := NewQuizAttempt("quiz-1", "player-1", 1)
	require.NoError(t, err)

	require.NoError(t, attempt.SubmitResult(resultFor("q1", true, 500)))
	require.True(t, attempt.IsCompleted())

	err = attempt.SubmitResult(resultFor("q2", true, 500))
	assert.ErrorIs(t, err, ErrAttemptCompleted)
	assert.Equal(t, 500, attempt.Score)
}

func TestSubmitResult_RejectsNegativePoints(t *testing.T) {
	attempt, err := NewQuizAttempt("quiz-1", "player-1", 1)
	require.NoError(t, err)

	err = attempt.SubmitResult(resultFor("q1", false, -10))
	assert.ErrorIs(t, err, ErrNegativePoints)
	assert.Zero(t, attempt.Score)
}

func TestSubmitResult_CompletesOnLastQuestion(t *testing.T) {
	attempt, err := NewQuizAttempt("quiz-1", "player-1", 2)
	require.NoError(t, err)

	require.NoError(t, attempt.SubmitResult(resultFor("q1", true, 500)))
	assert.False(t, attempt.IsCompleted())
	assert.Nil(t, attempt.CompletedAt)

	answeredAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	last := resultFor("q2", true, 500)
	last.AnsweredAt = answeredAt
	require.NoError(t, attempt.SubmitResult(last))

	assert.True(t, attempt.IsCompleted())
	assert.Equal(t, AttemptStatusCompleted, attempt.Status)
	require.NotNil(t, attempt.CompletedAt)
	assert.Equal(t, answeredAt, *attempt.CompletedAt)
}

func TestNextQuestionID_FollowsQuizOrder(t *testing.T) {
	attempt, err := NewQuizAttempt("quiz-1", "player-1", 3)
	require.NoError(t, err)

	order := []string{"q1", "q2", "q3"}

	next, found := attempt.NextQuestionID(order)
	require.True(t, found)
	assert.Equal(t, "q1", next)

	// Answering out of order: the next question is still the earliest
	// unanswered one in quiz order.
	require.NoError(t, attempt.SubmitResult(resultFor("q2", true, 500)))
	next, found = attempt.NextQuestionID(order)
	require.True(t, found)
	assert.Equal(t, "q1", next)

	require.NoError(t, attempt.SubmitResult(resultFor("q1", true, 500)))
	next, found = attempt.NextQuestionID(order)
	require.True(t, found)
	assert.Equal(t, "q3", next)

	require.NoError(t, attempt.SubmitResult(resultFor("q3", false, 0)))
	_, found = attempt.NextQuestionID(order)
	assert.False(t, found)
}

func TestProgress(t *testing.T) {
	attempt, err := NewQuizAttempt("quiz-1", "player-1", 3)
	require.NoError(t, err)

	assert.Zero(t, attempt.Progress())

	require.NoError(t, attempt.SubmitResult(resultFor("q1", true, 500)))
	assert.Equal(t, 33, attempt.Progress())

	require.NoError(t, attempt.SubmitResult(resultFor("q2", true, 500)))
	assert.Equal(t, 67, attempt.Progress())

	require.NoError(t, attempt.SubmitResult(resultFor("q3", true, 500)))
	assert.Equal(t, 100, attempt.Progress())
}

func TestAccuracyPercentage(t *testing.T) {
	attempt, err := NewQuizAttempt("quiz-1", "player-1", 3)
	require.NoError(t, err)

	require.NoError(t, attempt.SubmitResult(resultFor("q1", true, 500)))
	require.NoError(t, attempt.SubmitResult(resultFor("q2", false, 0)))
	require.NoError(t, attempt.SubmitResult(resultFor("q3", true, 500)))

	assert.Equal(t, 2, attempt.CorrectAnswersCount())
	assert.Equal(t, 67, attempt.AccuracyPercentage())
}
