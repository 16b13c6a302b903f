package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cardsight/internal/api"
	"cardsight/internal/api/handlers"
	"cardsight/internal/repository"
	"cardsight/internal/service"
	"cardsight/pkg/config"
	"cardsight/pkg/logger"

	"go.uber.org/zap"
)

// @title Cardsight API
// @version 1.0
// @description Credit card statement parser: uploads a statement PDF, extracts its text, and runs structured extraction through a hosted model.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting cardsight service")

	if cfg.AI.APIKey == "" {
		appLogger.Warn("No model API key configured, parse requests will fail until AI_API_KEY is set")
	}

	// Initialize session store
	store := repository.NewSessionStore(cfg.Session.TTL, appLogger)
	defer store.Close()

	// Initialize services
	modelClient, err := service.NewModelClient(&cfg.AI, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize model client", zap.Error(err))
	}
	defer modelClient.Close()

	extractService := service.NewExtractService(appLogger)
	parserService := service.NewParserService(appLogger)
	stmtService := service.NewStatementService(
		extractService,
		parserService,
		modelClient,
		store,
		cfg.Extract.MaxPromptChars,
		appLogger,
	)

	// Initialize handlers
	stmtHandler := handlers.NewStatementHandler(stmtService, appLogger)

	// Setup router
	app := api.SetupRouter(stmtHandler, cfg, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
