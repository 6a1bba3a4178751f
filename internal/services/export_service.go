package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/quizhive/quiz-service/internal/repositories"
	"github.com/quizhive/quiz-service/internal/utils"
)

type exportService struct {
	repo        repositories.Repository
	leaderboard LeaderboardService
	logger      utils.Logger
}

func NewExportService(repo repositories.Repository, leaderboard LeaderboardService, logger utils.Logger) ExportService {
	return &exportService{
		repo:        repo,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// ExportGroupLeaderboard renders the current group standings as an xlsx
// workbook.
func (s *exportService) ExportGroupLeaderboard(ctx context.Context, groupID string) ([]byte, error) {
	group, err := s.repo.Group().GetByID(ctx, groupID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	entries, err := s.leaderboard.GetGroupLeaderboard(ctx, groupID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Leaderboard"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Position", "Player", "Completed Quizzes", "Total Points"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, entry := range entries {
		row := []interface{}{entry.Position, entry.DisplayName, entry.CompletedQuizzes, entry.TotalPoints}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported group leaderboard",
		"group_id", groupID,
		"group_name", group.Name,
		"entries", len(entries))

	return buf.Bytes(), nil
}
