package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizhive/quiz-service/internal/services"
	"github.com/quizhive/quiz-service/internal/utils"
)

type QuizHandler struct {
	BaseHandler
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
	}
}

// GetQuiz handles GET /api/v1/quizzes/:id
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID, ok := ParseIDParam(c, &h.BaseHandler, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.GetQuiz(c.Request.Context(), quizID)
	if err != nil {
		HandleServiceError(c, &h.BaseHandler, err, "get quiz")
		return
	}

	c.JSON(http.StatusOK, quiz)
}
