package models

import (
	"time"

	"gorm.io/gorm"
)

type Group struct {
	ID          string  `json:"id" gorm:"primaryKey;size:36"`
	Name        string  `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Description *string `json:"description" gorm:"type:text"`

	CreatedBy string         `json:"created_by" gorm:"not null;size:36;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Members []GroupMember `json:"members" gorm:"foreignKey:GroupID"`
	Quizzes []GroupQuiz   `json:"quizzes" gorm:"foreignKey:GroupID"`
}

func (Group) TableName() string {
	return "groups"
}

type GroupMember struct {
	GroupID  string    `json:"group_id" gorm:"primaryKey;size:36"`
	UserID   string    `json:"user_id" gorm:"primaryKey;size:36;index"`
	JoinedAt time.Time `json:"joined_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

func (GroupMember) TableName() string {
	return "group_members"
}

// GroupQuiz assigns a quiz to a group; group leaderboards aggregate over the
// assigned quiz set.
type GroupQuiz struct {
	GroupID    string    `json:"group_id" gorm:"primaryKey;size:36"`
	QuizID     string    `json:"quiz_id" gorm:"primaryKey;size:36;index"`
	AssignedAt time.Time `json:"assigned_at"`
}

func (GroupQuiz) TableName() string {
	return "group_quizzes"
}
