package repositories

import (
	"context"

	"github.com/quizhive/quiz-service/internal/models"
)

type GroupRepository interface {
	GetByID(ctx context.Context, id string) (*models.Group, error)

	// GetMembers returns the group's members with user details preloaded;
	// the full cohort appears on leaderboards, including members with no
	// completed attempts.
	GetMembers(ctx context.Context, groupID string) ([]*models.GroupMember, error)

	// GetAssignedQuizIDs returns the ids of quizzes assigned to the group.
	GetAssignedQuizIDs(ctx context.Context, groupID string) ([]string, error)
}
