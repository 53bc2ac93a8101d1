package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "inboxagent/docs" // This is required for swag to find your docs
	"inboxagent/internal/api"
	"inboxagent/internal/config"
	"inboxagent/internal/database"
	"inboxagent/internal/repository"
	"inboxagent/internal/services"
	"inboxagent/internal/utils"
)

// @title Inbox Agent API
// @version 1.0
// @description Mock inbox ingestion with AI categorization, summaries, action items, chat and reply drafts.

// @host localhost:8000
// @BasePath /
func main() {
	// Load configuration
	cfg, cfgErr := config.Load()

	utils.InitLogger(cfg.LogLevel, os.Getenv("APP_ENV") == "development")
	defer utils.Sync()

	mainLogger := utils.NewLogger("Main")
	if cfgErr != nil {
		mainLogger.Warn("Ignoring env file: %v", cfgErr)
	}
	mainLogger.Info("Starting Inbox Agent with log level: %s", cfg.LogLevel)

	// Initialize database
	dbConfig := database.Config{
		Driver:   cfg.Database.Driver,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	}

	if err := database.Initialize(dbConfig); err != nil {
		mainLogger.Error("Failed to initialize database: %v", err)
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()

	// Initialize repositories
	emailRepo := repository.NewEmailRepository(db)
	promptRepo := repository.NewPromptRepository(db)

	// Initialize AI service; the server still starts without it
	aiService := initAIService(cfg.AI, mainLogger)

	ingestService := services.NewIngestService(emailRepo, promptRepo, aiService,
		cfg.Ingest.PrimaryPath, cfg.Ingest.FallbackPath)

	// Initialize API handler
	apiHandler := api.NewAPIHandler(emailRepo, promptRepo, aiService, ingestService)
	router := api.NewRouter(apiHandler)

	// Create HTTP server
	srv := &http.Server{
		Addr:    cfg.ServerAddress(),
		Handler: router,
	}

	// Setup graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		mainLogger.Info("Server is running on http://%s", cfg.ServerAddress())
		fmt.Printf("Server is running on http://%s\n", cfg.ServerAddress())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			mainLogger.Error("Server failed to start: %v", err)
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	mainLogger.Info("Shutting down server...")

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		mainLogger.Error("Server forced to shutdown: %v", err)
	}

	mainLogger.Info("Server shutdown complete")
}

func initAIService(cfg config.AIConfig, logger *utils.Logger) *services.AIService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	aiService, err := services.NewAIService(ctx, cfg, utils.NewLogger("AIService"))
	if err != nil {
		logger.Warn("Failed to initialize AI service: %v", err)
		return services.DisabledAIService(err)
	}
	logger.Info("AI service initialized successfully (%s, %s)", cfg.Channel, cfg.Model)
	return aiService
}
