// @title AskLab Survey API
// @version 1.0
// @description Survey-administration API: researchers configure question groups, participants answer simulated AI prompts and rate the responses.
// @host localhost:8090
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"asklab/internal/adapter"
	"asklab/internal/cache"
	"asklab/internal/config"
	"asklab/internal/database"
	"asklab/internal/handler"
	"asklab/internal/logger"
	"asklab/internal/middleware"
	"asklab/internal/repository"
	"asklab/internal/service"
	"asklab/internal/util"

	_ "asklab/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()
		requestID := util.NewULID()
		c.Locals("request_id", requestID)

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
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
	appLogger.Info("Successfully connected to Postgres")

	// Initialize repositories
	groupRepository := repository.NewGroupDatabaseAdapter(db)
	sequenceRepository := repository.NewSequenceDatabaseAdapter(db)
	ratingRepository := repository.NewRatingDatabaseAdapter(db)
	surveyRepository := repository.NewSurveyDatabaseAdapter(db)
	projectRepository := repository.NewProjectDatabaseAdapter(db)

	// Initialize Redis client and cache adapter
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize services
	catalogService := service.NewCatalogService(groupRepository, cacheAdapter, cfg.Catalog.CacheTTL)
	answerService := service.NewAnswerService(catalogService)
	ratingService := service.NewRatingService(ratingRepository, catalogService)
	groupService := service.NewGroupService(groupRepository, sequenceRepository)
	surveyService := service.NewSurveyService(surveyRepository, cacheAdapter, cfg.Notify.CompletionChannel)
	projectService := service.NewProjectService(projectRepository, sequenceRepository)

	// Initialize handlers
	groupHandler := handler.NewGroupHandler(groupService)
	surveyHandler := handler.NewSurveyHandler(catalogService, answerService, ratingService, surveyService)
	projectHandler := handler.NewProjectHandler(projectService)
	validationMiddleware := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	// Researcher group-configuration routes
	app.Get("/research-groups/all", groupHandler.ListGroups)
	groupConfig := app.Group("/research-groups/:groupId/config", validationMiddleware.ValidateGroupID())
	groupConfig.Get("/", groupHandler.GetGroup)
	groupConfig.Put("/", groupHandler.SaveGroup)
	groupConfig.Delete("/", groupHandler.DeleteQuestion)

	// Participant survey routes
	app.Get("/fixed-questions", surveyHandler.ListQuestions)
	app.Post("/ask", surveyHandler.Ask)
	app.Post("/rate", surveyHandler.Rate)
	app.Get("/ratings", surveyHandler.ListRatings)

	// Administrator routes
	app.Get("/survey-status", surveyHandler.GetStatus)
	app.Post("/survey-status", surveyHandler.SetStatus)
	app.Post("/incrementSurveyCounter", surveyHandler.IncrementCounter)
	app.Get("/getSurveyCounter", surveyHandler.GetCounter)
	app.Post("/projects", projectHandler.CreateProject)
	app.Get("/projects", projectHandler.ListProjects)
	app.Post("/projects/:projectId/researchers", projectHandler.AssignResearcher)

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
