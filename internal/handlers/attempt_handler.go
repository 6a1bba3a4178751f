package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizhive/quiz-service/internal/services"
	"github.com/quizhive/quiz-service/internal/utils"
)

type AttemptHandler struct {
	BaseHandler
	attemptService services.AttemptService
}

func NewAttemptHandler(attemptService services.AttemptService, logger utils.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		attemptService: attemptService,
	}
}

// StartAttempt handles POST /api/v1/attempts
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	playerID, ok := PlayerIDFromRequest(c, &h.BaseHandler)
	if !ok {
		return
	}

	var req services.StartAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.PlayerID = playerID

	h.LogRequest(c, "Starting quiz attempt", "quiz_id", req.QuizID, "player_id", playerID)

	resp, err := h.attemptService.Start(c.Request.Context(), &req)
	if err != nil {
		HandleServiceError(c, &h.BaseHandler, err, "start attempt")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// SubmitAnswer handles POST /api/v1/attempts/:id/answers
func (h *AttemptHandler) SubmitAnswer(c *gin.Context) {
	attemptID, ok := ParseIDParam(c, &h.BaseHandler, "id")
	if !ok {
		return
	}
	playerID, ok := PlayerIDFromRequest(c, &h.BaseHandler)
	if !ok {
		return
	}

	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.AttemptID = attemptID
	req.PlayerID = playerID

	h.LogRequest(c, "Submitting answer",
		"attempt_id", attemptID,
		"question_id", req.QuestionID,
		"player_id", playerID)

	resp, err := h.attemptService.SubmitAnswer(c.Request.Context(), &req)
	if err != nil {
		HandleServiceError(c, &h.BaseHandler, err, "submit answer")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProgress handles GET /api/v1/attempts/:id/progress
func (h *AttemptHandler) GetProgress(c *gin.Context) {
	attemptID, ok := ParseIDParam(c, &h.BaseHandler, "id")
	if !ok {
		return
	}
	playerID, ok := PlayerIDFromRequest(c, &h.BaseHandler)
	if !ok {
		return
	}

	resp, err := h.attemptService.GetProgress(c.Request.Context(), attemptID, playerID)
	if err != nil {
		HandleServiceError(c, &h.BaseHandler, err, "get attempt progress")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetSummary handles GET /api/v1/attempts/:id/summary
func (h *AttemptHandler) GetSummary(c *gin.Context) {
	attemptID, ok := ParseIDParam(c, &h.BaseHandler, "id")
	if !ok {
		return
	}
	playerID, ok := PlayerIDFromRequest(c, &h.BaseHandler)
	if !ok {
		return
	}

	resp, err := h.attemptService.GetSummary(c.Request.Context(), attemptID, playerID)
	if err != nil {
		HandleServiceError(c, &h.BaseHandler, err, "get attempt summary")
		return
	}

	c.JSON(http.StatusOK, resp)
}
