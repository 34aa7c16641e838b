package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pupilplay/game-engine/internal/config"
	"github.com/pupilplay/game-engine/internal/engine"
	"github.com/pupilplay/game-engine/internal/handlers"
	"github.com/pupilplay/game-engine/internal/logger"
	"github.com/pupilplay/game-engine/internal/middleware"
	"github.com/pupilplay/game-engine/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting PupilPlay Game Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"game_type", cfg.GameType,
		"llm_provider", cfg.LLMProvider,
		"primary_model", cfg.PrimaryModel,
		"fast_model", cfg.FastModel)

	var llmService services.LLMService
	switch strings.ToLower(cfg.LLMProvider) {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Error("Gemini API key is required when using gemini provider")
			os.Exit(1)
		}
		llmService = services.NewGeminiService(cfg.GeminiAPIKey, cfg.PrimaryModel, cfg.FastModel, log)
		log.Info("Using Gemini LLM provider")
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Error("Anthropic API key is required when using anthropic provider")
			os.Exit(1)
		}
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.PrimaryModel, cfg.FastModel, log)
		log.Info("Using Anthropic LLM provider")
	case "mock":
		llmService = services.NewMockLLM()
		log.Warn("Using mock LLM provider; responses are canned")
	default:
		log.Error("Invalid LLM provider specified",
			"provider", cfg.LLMProvider,
			"supported", []string{"gemini", "anthropic", "mock"})
		os.Exit(1)
	}

	var storage services.Storage = services.NewRedisStorage(cfg.RedisURL, cfg.SessionTTL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := storage.Ping(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	initCtx, initCancel := context.WithTimeout(context.Background(), time.Minute)
	defer initCancel()
	if err := llmService.InitModel(initCtx); err != nil {
		log.Error("Failed to initialize LLM models", "error", err)
		os.Exit(1)
	}

	eng := engine.New(cfg, llmService, storage, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(storage, log)
	mux.Handle("/health", healthHandler)

	interactionHandler := handlers.NewInteractionHandler(eng, log)
	mux.Handle("/v1/interact", interactionHandler)

	sessionHandler := handlers.NewSessionHandler(storage, log)
	mux.Handle("/v1/sessions/", sessionHandler)

	handler := middleware.Logger(log, mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := storage.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
