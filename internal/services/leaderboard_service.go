package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/quizhive/quiz-service/internal/cache"
	"github.com/quizhive/quiz-service/internal/models"
	"github.com/quizhive/quiz-service/internal/repositories"
	"github.com/quizhive/quiz-service/internal/utils"
)

const leaderboardCacheTTL = 60 * time.Second

type leaderboardService struct {
	repo   repositories.Repository
	logger utils.Logger
	cache  cache.CacheService
}

func NewLeaderboardService(repo repositories.Repository, logger utils.Logger, cacheService cache.CacheService) LeaderboardService {
	return &leaderboardService{
		repo:   repo,
		logger: logger,
		cache:  cacheService,
	}
}

func (s *leaderboardService) GetGroupLeaderboard(ctx context.Context, groupID string) ([]models.GroupLeaderboardEntry, error) {
	cacheKey := "leaderboard:group:" + groupID

	var cached []models.GroupLeaderboardEntry
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Leaderboard cache read failed", "group_id", groupID, "error", err)
	}

	members, quizIDs, attempts, err := s.loadGroupData(ctx, groupID)
	if err != nil {
		return nil, err
	}

	entries := BuildGroupLeaderboard(members, quizIDs, attempts)

	if err := s.cache.Set(ctx, cacheKey, entries, leaderboardCacheTTL); err != nil {
		s.logger.Warn("Leaderboard cache write failed", "group_id", groupID, "error", err)
	}
	return entries, nil
}

func (s *leaderboardService) GetQuizLeaderboard(ctx context.Context, groupID, quizID string, limit int) ([]models.QuizLeaderboardEntry, error) {
	cacheKey := fmt.Sprintf("leaderboard:quiz:%s:%s:%d", groupID, quizID, limit)

	var cached []models.QuizLeaderboardEntry
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Leaderboard cache read failed", "group_id", groupID, "quiz_id", quizID, "error", err)
	}

	members, quizIDs, _, err := s.loadGroupData(ctx, groupID)
	if err != nil {
		return nil, err
	}

	assigned := false
	for _, id := range quizIDs {
		if id == quizID {
			assigned = true
			break
		}
	}
	if !assigned {
		return nil, ErrQuizNotFound
	}

	userIDs := make([]string, len(members))
	for i, m := range members {
		userIDs[i] = m.UserID
	}
	attempts, err := s.repo.Attempt().GetCompletedAttempts(ctx, []string{quizID}, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed attempts: %w", err)
	}

	entries := BuildQuizLeaderboard(members, quizID, attempts, limit)

	if err := s.cache.Set(ctx, cacheKey, entries, leaderboardCacheTTL); err != nil {
		s.logger.Warn("Leaderboard cache write failed", "group_id", groupID, "quiz_id", quizID, "error", err)
	}
	return entries, nil
}

func (s *leaderboardService) loadGroupData(ctx context.Context, groupID string) ([]*models.GroupMember, []string, []*models.QuizAttempt, error) {
	if _, err := s.repo.Group().GetByID(ctx, groupID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil, nil, ErrGroupNotFound
		}
		return nil, nil, nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := s.repo.Group().GetMembers(ctx, groupID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get group members: %w", err)
	}

	quizIDs, err := s.repo.Group().GetAssignedQuizIDs(ctx, groupID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get assigned quizzes: %w", err)
	}

	userIDs := make([]string, len(members))
	for i, m := range members {
		userIDs[i] = m.UserID
	}

	attempts, err := s.repo.Attempt().GetCompletedAttempts(ctx, quizIDs, userIDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get completed attempts: %w", err)
	}

	return members, quizIDs, attempts, nil
}

// ===== AGGREGATION =====

// BuildGroupLeaderboard derives group standings from completed attempts:
// best score per (user, quiz), summed per user, ranked by completed quizzes
// desc, total points desc, then user id asc as the final deterministic
// tie-break. Every cohort member appears, including those with zero
// completions, ranked last by the same rule. Positions are 1-based and
// contiguous even on ties.
func BuildGroupLeaderboard(members []*models.GroupMember, quizIDs []string, attempts []*models.QuizAttempt) []models.GroupLeaderboardEntry {
	quizSet := make(map[string]bool, len(quizIDs))
	for _, id := range quizIDs {
		quizSet[id] = true
	}
	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		memberSet[m.UserID] = true
	}

	// Best score per (user, quiz). Ties keep either attempt; only the score
	// value propagates onward.
	bestScores := make(map[string]map[string]int)
	for _, attempt := range attempts {
		if attempt.Status != models.AttemptStatusCompleted {
			continue
		}
		if !quizSet[attempt.QuizID] || !memberSet[attempt.PlayerID] {
			continue
		}
		perQuiz, ok := bestScores[attempt.PlayerID]
		if !ok {
			perQuiz = make(map[string]int)
			bestScores[attempt.PlayerID] = perQuiz
		}
		if score, ok := perQuiz[attempt.QuizID]; !ok || attempt.Score > score {
			perQuiz[attempt.QuizID] = attempt.Score
		}
	}

	entries := make([]models.GroupLeaderboardEntry, 0, len(members))
	for _, member := range members {
		entry := models.GroupLeaderboardEntry{
			UserID:      member.UserID,
			DisplayName: member.User.DisplayName,
		}
		for _, score := range bestScores[member.UserID] {
			entry.CompletedQuizzes++
			entry.TotalPoints += score
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CompletedQuizzes != entries[j].CompletedQuizzes {
			return entries[i].CompletedQuizzes > entries[j].CompletedQuizzes
		}
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}

// BuildQuizLeaderboard ranks cohort members who completed one quiz by their
// best score, descending, with user id ascending as the tie-break. limit <= 0
// means no cap.
func BuildQuizLeaderboard(members []*models.GroupMember, quizID string, attempts []*models.QuizAttempt, limit int) []models.QuizLeaderboardEntry {
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.UserID] = m.User.DisplayName
	}

	best := make(map[string]int)
	for _, attempt := range attempts {
		if attempt.Status != models.AttemptStatusCompleted || attempt.QuizID != quizID {
			continue
		}
		if _, isMember := names[attempt.PlayerID]; !isMember {
			continue
		}
		if score, ok := best[attempt.PlayerID]; !ok || attempt.Score > score {
			best[attempt.PlayerID] = attempt.Score
		}
	}

	entries := make([]models.QuizLeaderboardEntry, 0, len(best))
	for userID, score := range best {
		entries = append(entries, models.QuizLeaderboardEntry{
			UserID:      userID,
			DisplayName: names[userID],
			Score:       score,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID < entries[j].UserID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}
