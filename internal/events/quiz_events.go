package events

import (
	"time"
)

// EventType represents different types of quiz events
type EventType string

const (
	// Attempt events
	EventAttemptStarted   EventType = "attempt.started"
	EventAnswerSubmitted  EventType = "attempt.answer_submitted"
	EventAttemptCompleted EventType = "attempt.completed"
)

// QuizEvent is the base event structure published for every quiz event
type QuizEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Attempt event payloads

type AttemptStartedEvent struct {
	AttemptID      string    `json:"attempt_id"`
	QuizID         string    `json:"quiz_id"`
	PlayerID       string    `json:"player_id"`
	TotalQuestions int       `json:"total_questions"`
	StartedAt      time.Time `json:"started_at"`
}

type AnswerSubmittedEvent struct {
	AttemptID    string `json:"attempt_id"`
	QuizID       string `json:"quiz_id"`
	PlayerID     string `json:"player_id"`
	QuestionID   string `json:"question_id"`
	WasCorrect   bool   `json:"was_correct"`
	PointsEarned int    `json:"points_earned"`
	Score        int    `json:"score"`
	Progress     int    `json:"progress"`
}

type AttemptCompletedEvent struct {
	AttemptID          string    `json:"attempt_id"`
	QuizID             string    `json:"quiz_id"`
	PlayerID           string    `json:"player_id"`
	FinalScore         int       `json:"final_score"`
	CorrectAnswers     int       `json:"correct_answers"`
	TotalQuestions     int       `json:"total_questions"`
	AccuracyPercentage int       `json:"accuracy_percentage"`
	CompletedAt        time.Time `json:"completed_at"`
}
