package models

// GroupLeaderboardEntry is a derived ranking row, never persisted. Positions
// are 1-based and contiguous; ties are broken deterministically by the
// aggregator before positions are assigned.
type GroupLeaderboardEntry struct {
	UserID           string `json:"user_id"`
	DisplayName      string `json:"display_name"`
	CompletedQuizzes int    `json:"completed_quizzes"`
	TotalPoints      int    `json:"total_points"`
	Position         int    `json:"position"`
}

// QuizLeaderboardEntry ranks cohort members by their best score on a single
// quiz.
type QuizLeaderboardEntry struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	Position    int    `json:"position"`
}
