package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
)

type Quiz struct {
	ID          string  `json:"id" gorm:"primaryKey;size:36"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`

	CreatedBy string         `json:"created_by" gorm:"not null;size:36;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Questions []Question `json:"questions" gorm:"foreignKey:QuizID"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// OrderedQuestionIDs returns question ids in quiz-defined order. Questions
// are loaded ordered by position; this is the canonical order the attempt
// engine walks.
func (q *Quiz) OrderedQuestionIDs() []string {
	ids := make([]string, len(q.Questions))
	for i, question := range q.Questions {
		ids[i] = question.ID
	}
	return ids
}

func (q *Quiz) QuestionByID(id string) (*Question, bool) {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i], true
		}
	}
	return nil, false
}

type Question struct {
	ID     string `json:"id" gorm:"primaryKey;size:36"`
	QuizID string `json:"quiz_id" gorm:"not null;size:36;index"`

	Position int          `json:"position" gorm:"not null"`
	Type     QuestionType `json:"type" gorm:"not null" validate:"required,question_type"`
	Text     string       `json:"text" gorm:"not null;type:text" validate:"required"`

	Options datatypes.JSONSlice[string] `json:"options" gorm:"type:jsonb"`

	TimeLimitSeconds int `json:"time_limit_seconds" gorm:"not null" validate:"required,min=1,max=600"`
	BasePoints       int `json:"base_points" gorm:"not null" validate:"min=0"`

	// Correct option indices. One entry for single-choice; the exact set for
	// multiple-choice.
	CorrectOptions datatypes.JSONSlice[int] `json:"-" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}
