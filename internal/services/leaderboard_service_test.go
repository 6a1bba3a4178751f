package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizhive/quiz-service/internal/models"
)

func member(userID, displayName string) *models.GroupMember {
	return &models.GroupMember{
		UserID: userID,
		User:   models.User{ID: userID, DisplayName: displayName},
	}
}

func completedAttempt(quizID, playerID string, score int) *models.QuizAttempt {
	return &models.QuizAttempt{
		QuizID:   quizID,
		PlayerID: playerID,
		Score:    score,
		Status:   models.AttemptStatusCompleted,
	}
}

func TestBuildGroupLeaderboard_Ranking(t *testing.T) {
	members := []*models.GroupMember{
		member("user-a", "Alice"),
		member("user-b", "Bob"),
		member("user-c", "Carol"),
	}
	quizIDs := []string{"quiz-1", "quiz-2"}

	// Alice and Bob both completed two quizzes with 500 total points; Carol
	// scored higher but completed only one quiz.
	attempts := []*models.QuizAttempt{
		completedAttempt("quiz-1", "user-a", 300),
		completedAttempt("quiz-2", "user-a", 200),
		completedAttempt("quiz-1", "user-b", 100),
		completedAttempt("quiz-2", "user-b", 400),
		completedAttempt("quiz-1", "user-c", 900),
	}

	entries := BuildGroupLeaderboard(members, quizIDs, attempts)
	require.Len(t, entries, 3)

	// Completed quizzes outrank total points; the tie between Alice and Bob
	// breaks on user id.
	assert.Equal(t, "user-a", entries[0].UserID)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, 2, entries[0].CompletedQuizzes)
	assert.Equal(t, 500, entries[0].TotalPoints)

	assert.Equal(t, "user-b", entries[1].UserID)
	assert.Equal(t, 2, entries[1].Position)

	assert.Equal(t, "user-c", entries[2].UserID)
	assert.Equal(t, 3, entries[2].Position)
	assert.Equal(t, 1, entries[2].CompletedQuizzes)
	assert.Equal(t, 900, entries[2].TotalPoints)
}

func TestBuildGroupLeaderboard_BestScorePerQuiz(t *testing.T) {
	members := []*models.GroupMember{member("user-a", "Alice")}
	quizIDs := []string{"quiz-1"}

	attempts := []*models.QuizAttempt{
		completedAttempt("quiz-1", "user-a", 300),
		completedAttempt("quiz-1", "user-a", 700),
		completedAttempt("quiz-1", "user-a", 500),
	}

	entries := BuildGroupLeaderboard(members, quizIDs, attempts)
	require.Len(t, entries, 1)

	// Repeat plays count once, at the best score.
	assert.Equal(t, 1, entries[0].CompletedQuizzes)
	assert.Equal(t, 700, entries[0].TotalPoints)
}

func TestBuildGroupLeaderboard_IncludesIdleMembers(t *testing.T) {
	members := []*models.GroupMember{
		member("user-a", "Alice"),
		member("user-b", "Bob"),
	}
	quizIDs := []string{"quiz-1"}

	attempts := []*models.QuizAttempt{
		completedAttempt("quiz-1", "user-a", 400),
	}

	entries := BuildGroupLeaderboard(members, quizIDs, attempts)
	require.Len(t, entries, 2)

	assert.Equal(t, "user-a", entries[0].UserID)
	assert.Equal(t, "user-b", entries[1].UserID)
	assert.Zero(t, entries[1].CompletedQuizzes)
	assert.Zero(t, entries[1].TotalPoints)
	assert.Equal(t, 2, entries[1].Position)
}

func TestBuildGroupLeaderboard_FiltersNoise(t *testing.T) {
	members := []*models.GroupMember{member("user-a", "Alice")}
	quizIDs := []string{"quiz-1"}

	inProgress := completedAttempt("quiz-1", "user-a", 999)
	inProgress.Status = models.AttemptStatusInProgress

	attempts := []*models.QuizAttempt{
		inProgress,
		completedAttempt("quiz-other", "user-a", 500), // not assigned to the group
		completedAttempt("quiz-1", "user-x", 800),     // not a member
		completedAttempt("quiz-1", "user-a", 200),
	}

	entries := BuildGroupLeaderboard(members, quizIDs, attempts)
	require.Len(t, entries, 1)

	assert.Equal(t, 1, entries[0].CompletedQuizzes)
	assert.Equal(t, 200, entries[0].TotalPoints)
}

func TestBuildQuizLeaderboard_Ranking(t *testing.T) {
	members := []*models.GroupMember{
		member("user-a", "Alice"),
		member("user-b", "Bob"),
		member("user-c", "Carol"),
	}

	attempts := []*models.QuizAttempt{
		completedAttempt("quiz-1", "user-a", 700),
		completedAttempt("quiz-1", "user-b", 700),
		completedAttempt("quiz-1", "user-c", 900),
		completedAttempt("quiz-1", "user-a", 400), // worse repeat, ignored
	}

	entries := BuildQuizLeaderboard(members, "quiz-1", attempts, 10)
	require.Len(t, entries, 3)

	assert.Equal(t, "user-c", entries[0].UserID)
	assert.Equal(t, 900, entries[0].Score)
	assert.Equal(t, 1, entries[0].Position)

	// Score tie breaks on user id.
	assert.Equal(t, "user-a", entries[1].UserID)
	assert.Equal(t, "user-b", entries[2].UserID)
	assert.Equal(t, 3, entries[2].Position)
}

func TestBuildQuizLeaderboard_Limit(t *testing.T) {
	members := []*models.GroupMember{
		member("user-a", "Alice"),
		member("user-b", "Bob"),
		member("user-c", "Carol"),
	}

	attempts := []*models.QuizAttempt{
		completedAttempt("quiz-1", "user-a", 100),
		completedAttempt("quiz-1", "user-b", 200),
		completedAttempt("quiz-1", "user-c", 300),
	}

	entries := BuildQuizLeaderboard(members, "quiz-1", attempts, 2)
	require.Len(t, entries, 2)
	assert.Equal(t, "user-c", entries[0].UserID)
	assert.Equal(t, "user-b", entries[1].UserID)
}

func TestBuildQuizLeaderboard_ExcludesNonCompleters(t *testing.T) {
	members := []*models.GroupMember{
		member("user-a", "Alice"),
		member("user-b", "Bob"),
	}

	attempts := []*models.QuizAttempt{
		completedAttempt("quiz-1", "user-a", 500),
	}

	entries := BuildQuizLeaderboard(members, "quiz-1", attempts, 10)
	require.Len(t, entries, 1)
	assert.Equal(t, "user-a", entries[0].UserID)
}
