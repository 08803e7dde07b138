package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mockexam-backend/internal/config"
	"mockexam-backend/internal/handlers"
	"mockexam-backend/internal/logging"
	"mockexam-backend/internal/router"
	"mockexam-backend/internal/services"
)

func main() {
	cfg := config.Load()
	logger := logging.New("mockexam-backend", cfg.Env)

	if cfg.OpenAIAPIKey == "" {
		logger.Warn().Msg("OPENAI_API_KEY is not set; completion requests will fail until it is provided")
	}

	completionClient := services.NewCompletionClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)
	extractService := services.NewExtractService(logger)
	paperService := services.NewPaperService(completionClient, extractService, cfg.MaxDocChars, cfg.MaxCorpusChars, logger)

	paperHandler := handlers.NewPaperHandler(paperService, logger)

	r := router.New(paperHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info().Msg("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	logger.Info().Str("port", cfg.Port).Str("model", cfg.OpenAIModel).Msg("mockexam backend ready")

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server error")
	}
}
