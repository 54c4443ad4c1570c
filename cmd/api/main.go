package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizforge/internal/adapter"
	"quizforge/internal/adapter/textgen"
	"quizforge/internal/adapter/translate"
	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/database"
	"quizforge/internal/handler"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/repository"
	"quizforge/internal/service"

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

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
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
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Oracle")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	statusStore := adapter.NewGenerationStatusStore(cacheAdapter)

	// Initialize external services
	translator := translate.NewHTTPTranslator(cfg.Translator)
	appLogger.Info("Translator initialized", zap.String("server_url", cfg.Translator.ServerURL))

	llmClient, err := textgen.NewClient(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	appLogger.Info("LLM client initialized",
		zap.String("server_url", cfg.LLM.ServerURL),
		zap.String("model", cfg.LLM.Model))

	summarizer := textgen.NewSummarizer(llmClient)
	keywordExtractor := textgen.NewKeywordExtractor(llmClient)
	distractorGenerator := textgen.NewDistractorGenerator(llmClient)
	questionGenerator := textgen.NewQuestionGenerator(llmClient)

	// Initialize repositories
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	feedbackRepository := repository.NewFeedbackDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize services
	detector := service.NewDuplicateDetectorService(questionRepository)
	persister := service.NewPersistenceCoordinator(
		translator, questionRepository, txManager, detector,
		cfg.Translator.UserLang, cfg.Translator.WorkingLang)
	generationService := service.NewGenerationService(
		translator, summarizer, keywordExtractor, distractorGenerator, questionGenerator,
		persister, statusStore, cfg.Translator, cfg.Generation)
	questionService := service.NewQuestionService(
		questionRepository, feedbackRepository, txManager, statusStore)

	// Initialize handlers
	questionHandler := handler.NewQuestionHandler(generationService, questionService)
	validationMiddleware := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")

	apiGroup.Post("/questions/generate", questionHandler.Generate)
	apiGroup.Post("/questions/generate/batch", questionHandler.GenerateBatch)
	apiGroup.Get("/questions", questionHandler.ListQuestions)
	apiGroup.Delete("/questions", questionHandler.DeleteTopic)
	apiGroup.Put("/questions/:id", validationMiddleware.ValidateQuestionID(), questionHandler.UpdateQuestion)
	apiGroup.Delete("/questions/:id", validationMiddleware.ValidateQuestionID(), questionHandler.DeleteQuestion)
	apiGroup.Post("/questions/:id/comments", validationMiddleware.ValidateQuestionID(), questionHandler.AddComment)
	apiGroup.Post("/questions/:id/ratings", validationMiddleware.ValidateQuestionID(), questionHandler.AddRating)
	apiGroup.Get("/users/:id/generation-status", questionHandler.GenerationStatus)

	// Start server
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
