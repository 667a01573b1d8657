// @title QuizDeck API
// @version 1.0
// @description Multiple-choice quiz service: configurable attempts, scoring, history and leaderboard.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizdeck/internal/adapter"
	"quizdeck/internal/cache"
	"quizdeck/internal/config"
	"quizdeck/internal/database"
	"quizdeck/internal/handler"
	"quizdeck/internal/logger"
	"quizdeck/internal/middleware"
	"quizdeck/internal/repository"
	"quizdeck/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Successfully connected to postgres")

	// Initialize repositories
	questionRepository := repository.NewSQLXQuestionRepository(db)
	resultRepository := repository.NewSQLXResultRepository(db)
	userRepository := repository.NewSQLXUserRepository(db)

	// Initialize Redis client and cache adapter
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize services
	sessionStore := service.NewAttemptSessionStore(cacheAdapter, cfg.Quiz.AttemptTTL)
	quizService := service.NewQuizService(questionRepository, resultRepository, sessionStore, cfg)
	userService := service.NewUserService(userRepository, resultRepository, questionRepository)
	leaderboardService := service.NewLeaderboardService(resultRepository, cacheAdapter, cfg)
	adminService := service.NewAdminService(questionRepository)

	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService, cfg)
	authHandler := handler.NewAuthHandler(authService, cfg)
	userHandler := handler.NewUserHandler(userService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	adminHandler := handler.NewAdminHandler(adminService)
	validationMiddleware := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")

	// Public routes
	apiGroup.Get("/home/stats", userHandler.GetHomeStats)
	apiGroup.Get("/leaderboard", middleware.OptionalAuth(authService), leaderboardHandler.GetLeaderboard)

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)

	// Quiz routes (all protected)
	quizGroup := apiGroup.Group("/quiz", middleware.Protected(authService))
	quizGroup.Post("/attempts", quizHandler.StartAttempt)
	quizGroup.Get("/attempts/:attemptId", quizHandler.GetAttempt)
	quizGroup.Put("/attempts/:attemptId/answers", quizHandler.RecordAnswer)
	quizGroup.Post("/attempts/:attemptId/submit", quizHandler.SubmitAttempt)
	quizGroup.Delete("/attempts/:attemptId", quizHandler.AbandonAttempt)
	quizGroup.Get("/results/:resultId", quizHandler.GetResult)

	// User routes (all protected)
	userGroup := apiGroup.Group("/users", middleware.Protected(authService))
	userGroup.Get("/me", userHandler.GetMyProfile)
	userGroup.Put("/me", userHandler.UpdateMyProfile)
	userGroup.Get("/me/history", userHandler.GetMyHistory)
	userGroup.Get("/me/stats", userHandler.GetMyStats)

	// Admin routes (protected, admin flag required)
	adminGroup := apiGroup.Group("/admin", middleware.Protected(authService), middleware.AdminOnly())
	adminGroup.Post("/questions", adminHandler.CreateQuestion)
	adminGroup.Get("/questions", validationMiddleware.ValidateQuestionListParams(20), adminHandler.ListQuestions)
	adminGroup.Get("/questions/:questionId", adminHandler.GetQuestion)
	adminGroup.Put("/questions/:questionId", adminHandler.UpdateQuestion)
	adminGroup.Delete("/questions/:questionId", adminHandler.DeleteQuestion)
	adminGroup.Post("/questions/bulk-delete", adminHandler.BulkDeleteQuestions)
	adminGroup.Post("/questions/bulk-activate", adminHandler.BulkActivateQuestions)
	adminGroup.Post("/questions/bulk-deactivate", adminHandler.BulkDeactivateQuestions)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
