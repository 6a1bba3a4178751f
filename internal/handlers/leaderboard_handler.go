package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quizhive/quiz-service/internal/services"
	"github.com/quizhive/quiz-service/internal/utils"
)

const defaultQuizLeaderboardLimit = 10

type LeaderboardHandler struct {
	BaseHandler
	leaderboardService services.LeaderboardService
	exportService      services.ExportService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService, exportService services.ExportService, logger utils.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		BaseHandler:        NewBaseHandler(logger),
		leaderboardService: leaderboardService,
		exportService:      exportService,
	}
}

// GetGroupLeaderboard handles GET /api/v1/groups/:id/leaderboard
func (h *LeaderboardHandler) GetGroupLeaderboard(c *gin.Context) {
	groupID, ok := ParseIDParam(c, &h.BaseHandler, "id")
	if !ok {
		return
	}

	entries, err := h.leaderboardService.GetGroupLeaderboard(c.Request.Context(), groupID)
	if err != nil {
		HandleServiceError(c, &h.BaseHandler, err, "get group leaderboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group_id": groupID,
		"entries":  entries,
	})
}

// GetQuizLeaderboard handles GET /api/v1/groups/:id/quizzes/:quiz_id/leaderboard
func (h *LeaderboardHandler) GetQuizLeaderboard(c *gin.Context) {
	groupID, ok := ParseIDParam(c, &h.BaseHandler, "id")
	if !ok {
		return
	}
	quizID, ok := ParseIDParam(c, &h.BaseHandler, "quiz_id")
	if !ok {
		return
	}

	limit := defaultQuizLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid limit parameter", err)
			return
		}
		limit = parsed
	}

	entries, err := h.leaderboardService.GetQuizLeaderboard(c.Request.Context(), groupID, quizID, limit)
	if err != nil {
		HandleServiceError(c, &h.BaseHandler, err, "get quiz leaderboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group_id": groupID,
		"quiz_id":  quizID,
		"entries":  entries,
	})
}

// ExportGroupLeaderboard handles GET /api/v1/groups/:id/leaderboard/export
func (h *LeaderboardHandler) ExportGroupLeaderboard(c *gin.Context) {
	groupID, ok := ParseIDParam(c, &h.BaseHandler, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting group leaderboard", "group_id", groupID)

	data, err := h.exportService.ExportGroupLeaderboard(c.Request.Context(), groupID)
	if err != nil {
		HandleServiceError(c, &h.BaseHandler, err, "export group leaderboard")
		return
	}

	filename := fmt.Sprintf("leaderboard_%s_%s.xlsx", groupID, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
