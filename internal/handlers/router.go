package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizhive/quiz-service/internal/repositories"
	"github.com/quizhive/quiz-service/internal/services"
	"github.com/quizhive/quiz-service/internal/utils"
)

// HandlerManager wires HTTP handlers to the service layer and owns route
// registration.
type HandlerManager struct {
	attempt     *AttemptHandler
	quiz        *QuizHandler
	leaderboard *LeaderboardHandler

	repo   repositories.Repository
	logger utils.Logger
}

func NewHandlerManager(serviceManager services.ServiceManager, repo repositories.Repository, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		attempt:     NewAttemptHandler(serviceManager.Attempt(), logger),
		quiz:        NewQuizHandler(serviceManager.Quiz(), logger),
		leaderboard: NewLeaderboardHandler(serviceManager.Leaderboard(), serviceManager.Export(), logger),
		repo:        repo,
		logger:      logger,
	}
}

func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(utils.LoggerMiddleware(hm.logger))

	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")
	{
		quizzes := v1.Group("/quizzes")
		{
			quizzes.GET("/:id", hm.quiz.GetQuiz)
		}

		attempts := v1.Group("/attempts")
		{
			attempts.POST("", hm.attempt.StartAttempt)
			attempts.POST("/:id/answers", hm.attempt.SubmitAnswer)
			attempts.GET("/:id/progress", hm.attempt.GetProgress)
			attempts.GET("/:id/summary", hm.attempt.GetSummary)
		}

		groups := v1.Group("/groups")
		{
			groups.GET("/:id/leaderboard", hm.leaderboard.GetGroupLeaderboard)
			groups.GET("/:id/leaderboard/export", hm.leaderboard.ExportGroupLeaderboard)
			groups.GET("/:id/quizzes/:quiz_id/leaderboard", hm.leaderboard.GetQuizLeaderboard)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		hm.logger.LogError(err, "Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "quiz-service"})
}
