package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/quizhive/quiz-service/internal/models"
)

func singleChoiceQuestion(basePoints, timeLimitSeconds int) *models.Question {
	return &models.Question{
		ID:               "q-single",
		Type:             models.SingleChoice,
		Text:             "What is the capital of France?",
		Options:          datatypes.JSONSlice[string]{"Berlin", "Paris", "Madrid", "Rome"},
		TimeLimitSeconds: timeLimitSeconds,
		BasePoints:       basePoints,
		CorrectOptions:   datatypes.JSONSlice[int]{1},
	}
}

func multipleChoiceQuestion(basePoints, timeLimitSeconds int) *models.Question {
	return &models.Question{
		ID:               "q-multi",
		Type:             models.MultipleChoice,
		Text:             "Which of these are prime?",
		Options:          datatypes.JSONSlice[string]{"2", "4", "5", "9"},
		TimeLimitSeconds: timeLimitSeconds,
		BasePoints:       basePoints,
		CorrectOptions:   datatypes.JSONSlice[int]{0, 2},
	}
}

func TestEvaluate_SingleChoice(t *testing.T) {
	question := singleChoiceQuestion(1000, 20)

	tests := []struct {
		name        string
		answer      models.PlayerAnswer
		wantCorrect bool
		wantPoints  int
	}{
		{
			name:        "instant correct answer gets full speed bonus",
			answer:      models.PlayerAnswer{SelectedOptions: []int{1}, TimeSpentMs: 0},
			wantCorrect: true,
			wantPoints:  1800,
		},
		{
			name:        "correct at the time limit gets base points only",
			answer:      models.PlayerAnswer{SelectedOptions: []int{1}, TimeSpentMs: 20000},
			wantCorrect: true,
			wantPoints:  1000,
		},
		{
			name:        "correct at half time",
			answer:      models.PlayerAnswer{SelectedOptions: []int{1}, TimeSpentMs: 10000},
			wantCorrect: true,
			wantPoints:  1280,
		},
		{
			name:        "late correct answer scores as if full time used",
			answer:      models.PlayerAnswer{SelectedOptions: []int{1}, TimeSpentMs: 25000},
			wantCorrect: true,
			wantPoints:  1000,
		},
		{
			name:        "wrong option earns nothing",
			answer:      models.PlayerAnswer{SelectedOptions: []int{0}, TimeSpentMs: 1000},
			wantCorrect: false,
			wantPoints:  0,
		},
		{
			name:        "empty answer is a timeout",
			answer:      models.PlayerAnswer{SelectedOptions: nil, TimeSpentMs: 20000},
			wantCorrect: false,
			wantPoints:  0,
		},
		{
			name:        "multiple selections on single choice are incorrect",
			answer:      models.PlayerAnswer{SelectedOptions: []int{0, 1}, TimeSpentMs: 1000},
			wantCorrect: false,
			wantPoints:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(question, tt.answer)

			assert.Equal(t, question.ID, result.QuestionID)
			assert.Equal(t, tt.wantCorrect, result.WasCorrect)
			assert.Equal(t, tt.wantPoints, result.PointsEarned)
			assert.False(t, result.AnsweredAt.IsZero())
		})
	}
}

func TestEvaluate_MultipleChoice(t *testing.T) {
	question := multipleChoiceQuestion(500, 30)

	tests := []struct {
		name        string
		selected    []int
		wantCorrect bool
	}{
		{"exact set is correct", []int{0, 2}, true},
		{"order does not matter", []int{2, 0}, true},
		{"duplicate selections collapse", []int{0, 2, 2}, true},
		{"subset is incorrect", []int{0}, false},
		{"superset is incorrect", []int{0, 1, 2}, false},
		{"disjoint set is incorrect", []int{1, 3}, false},
		{"empty answer is incorrect", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(question, models.PlayerAnswer{SelectedOptions: tt.selected, TimeSpentMs: 5000})
			assert.Equal(t, tt.wantCorrect, result.WasCorrect)
			if !tt.wantCorrect {
				assert.Zero(t, result.PointsEarned)
			}
		})
	}
}

func TestEvaluate_PointsRounding(t *testing.T) {
	// 500 base, 30s limit, 6s spent: ratio 0.8, multiplier 1 + 0.8^1.5*0.8,
	// raw 786.2 rounds up to 790.
	question := multipleChoiceQuestion(500, 30)
	result := Evaluate(question, models.PlayerAnswer{SelectedOptions: []int{0, 2}, TimeSpentMs: 6000})

	assert.True(t, result.WasCorrect)
	assert.Equal(t, 790, result.PointsEarned)
	assert.Zero(t, result.PointsEarned%10)
}

func TestEvaluate_ZeroBasePoints(t *testing.T) {
	question := singleChoiceQuestion(0, 20)
	result := Evaluate(question, models.PlayerAnswer{SelectedOptions: []int{1}, TimeSpentMs: 0})

	assert.True(t, result.WasCorrect)
	assert.Zero(t, result.PointsEarned)
}
