package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizhive/quiz-service/internal/models"
	"github.com/quizhive/quiz-service/internal/repositories"
)

type groupRepository struct {
	db *gorm.DB
}

func newGroupRepository(db *gorm.DB) repositories.GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &group, nil
}

func (r *groupRepository) GetMembers(ctx context.Context, groupID string) ([]*models.GroupMember, error) {
	var members []*models.GroupMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("group_id = ?", groupID).
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	return members, nil
}

func (r *groupRepository) GetAssignedQuizIDs(ctx context.Context, groupID string) ([]string, error) {
	var quizIDs []string
	err := r.db.WithContext(ctx).
		Model(&models.GroupQuiz{}).
		Where("group_id = ?", groupID).
		Order("assigned_at ASC").
		Pluck("quiz_id", &quizIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get assigned quiz ids: %w", err)
	}
	return quizIDs, nil
}
