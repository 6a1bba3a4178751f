package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quizhive/quiz-service/internal/cache"
	"github.com/quizhive/quiz-service/internal/config"
	"github.com/quizhive/quiz-service/internal/handlers"
	"github.com/quizhive/quiz-service/internal/repositories/postgres"
	"github.com/quizhive/quiz-service/internal/services"
	"github.com/quizhive/quiz-service/internal/utils"
	"github.com/quizhive/quiz-service/pkg"
)

const attemptLockTTL = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.LogError(err, "Failed to connect to Redis")
		os.Exit(1)
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.LogError(err, "Failed to create event publisher")
		os.Exit(1)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	defer repo.Close()

	cacheService := cache.NewRedisCache(redisClient, slogger)
	locker := cache.NewRedisAttemptLocker(redisClient, attemptLockTTL)
	validator := utils.NewValidator()

	serviceManager := services.NewServiceManager(repo, logger, validator, locker, cacheService, publisher)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handlerManager := handlers.NewHandlerManager(serviceManager, repo, logger)
	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting quiz service", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError(err, "Server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.LogError(err, "Forced shutdown")
	}
	logger.Info("Server stopped")
}
