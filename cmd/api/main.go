package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-triagem-backend/config"
	_ "go-triagem-backend/docs" // Important for Swagger
	v1 "go-triagem-backend/internal/delivery/http/v1"
	"go-triagem-backend/internal/delivery/http/middleware"
	"go-triagem-backend/internal/repository/postgres"
	"go-triagem-backend/internal/usecase"
	"go-triagem-backend/pkg/database"
	"go-triagem-backend/pkg/logger"
	"go-triagem-backend/pkg/redis"
	"go-triagem-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           Triagem Backend API
// @version         1.0
// @description     Candidate screening administration backend.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting triagem backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresPool(context.Background(), cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting degrades to in-memory)
	redisClient, err := redis.New(context.Background(), redis.Config{
		URL:      cfg.RedisURL,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		logger.Log.Warn("Redis unavailable, login rate limiting is per-instance only", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, userRepo, validate, cfg.StatusOnAssign)
	userUC := usecase.NewUserUsecase(userRepo, candidateRepo, validate, cfg.StatusOnAssign)

	// 7. Login rate limiter
	loginLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Limit:     cfg.RateLimitLoginThreshold,
		Window:    time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		KeyPrefix: "rl:login:",
	})

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		CandidateUC:  candidateUC,
		UserUC:       userUC,
		LoginLimiter: loginLimiter,
		Config:       cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
