// Package scoring evaluates a single answered question: correctness and a
// time-decayed point award. The policy is pure; it never touches the attempt
// or any store.
package scoring

import (
	"math"
	"time"

	"github.com/quizhive/quiz-service/internal/models"
)

const (
	// speedBonusWeight scales the bonus for fast answers: the multiplier
	// ranges from 1.0 (used the full time) to 1.8 (answered instantly).
	speedBonusWeight = 0.8

	// speedCurveExponent shapes the decay so the bonus falls off faster as
	// the time budget is consumed.
	speedCurveExponent = 1.5

	// pointsGranularity rounds the final award to the nearest multiple.
	pointsGranularity = 10
)

// Evaluate judges the player's answer against the question definition and
// returns the recorded result. An empty answer (timeout) is always incorrect
// with zero points. Elapsed time beyond the question's limit is tolerated:
// the time-left ratio is clamped to [0, 1], so a late correct answer scores
// as if the full time was used and the multiplier never drops below 1.
func Evaluate(question *models.Question, answer models.PlayerAnswer) models.QuestionResult {
	result := models.QuestionResult{
		QuestionID: question.ID,
		Answer:     answer,
		AnsweredAt: time.Now(),
	}

	if !isCorrect(question, answer) {
		return result
	}

	result.WasCorrect = true
	result.PointsEarned = points(question.BasePoints, question.TimeLimitSeconds, answer.TimeSpentMs)
	return result
}

func isCorrect(question *models.Question, answer models.PlayerAnswer) bool {
	if answer.IsEmpty() {
		return false
	}

	switch question.Type {
	case models.SingleChoice:
		return len(answer.SelectedOptions) == 1 &&
			len(question.CorrectOptions) == 1 &&
			answer.SelectedOptions[0] == question.CorrectOptions[0]
	case models.MultipleChoice:
		// Exact set equality: a subset or superset of the correct options is
		// incorrect.
		return sameOptionSet(answer.SelectedOptions, question.CorrectOptions)
	default:
		return false
	}
}

func sameOptionSet(submitted, correct []int) bool {
	if len(submitted) == 0 || len(correct) == 0 {
		return false
	}

	want := make(map[int]bool, len(correct))
	for _, idx := range correct {
		want[idx] = true
	}

	seen := make(map[int]bool, len(submitted))
	for _, idx := range submitted {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		if !want[idx] {
			return false
		}
	}
	return len(seen) == len(want)
}

func points(basePoints, timeLimitSeconds, timeSpentMs int) int {
	elapsedSeconds := float64(timeSpentMs) / 1000.0

	timeLeftRatio := (float64(timeLimitSeconds) - elapsedSeconds) / float64(timeLimitSeconds)
	timeLeftRatio = clamp(timeLeftRatio, 0, 1)

	speedMultiplier := 1 + math.Pow(timeLeftRatio, speedCurveExponent)*speedBonusWeight

	raw := float64(basePoints) * speedMultiplier
	return int(math.Round(raw/pointsGranularity)) * pointsGranularity
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
