package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/api"
	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/config"
	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/crypto"
	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/email"
	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/summarizer"
)

func main() {
	// ── Logger ────────────────────────────────────────────────────────────────
	// JSON in production, pretty text in development.
	var logger *slog.Logger
	if os.Getenv("ENV") == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// ── Config ────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Info("config loaded", "env", cfg.Env, "port", cfg.Port)

	// ── Cipher ────────────────────────────────────────────────────────────────
	// The key is fixed for the process lifetime: taken from ENCRYPTION_KEY
	// when set, otherwise generated once here. The cipher built from it is
	// immutable and shared read-only by every request.
	key := cfg.EncryptionKey
	if key == "" {
		key, err = crypto.GenerateKey()
		if err != nil {
			return fmt.Errorf("encryption: %w", err)
		}
		logger.Info("generated new encryption key")
	}
	cipher, err := crypto.New(key)
	if err != nil {
		return fmt.Errorf("encryption: %w", err)
	}

	processor := email.NewProcessor(cipher, logger)

	// ── Summarizer ────────────────────────────────────────────────────────────
	// Groq is primary. The OpenAI-compatible provider is the fallback when
	// FALLBACK_API_KEY is also set. In production, set both keys for maximum
	// resilience.
	var sum summarizer.Summarizer
	switch {
	case cfg.GroqAPIKey != "" && cfg.FallbackAPIKey != "":
		primary := summarizer.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel)
		secondary := summarizer.NewOpenAIClient(cfg.FallbackAPIKey, cfg.FallbackBaseURL, cfg.FallbackModel)
		sum = summarizer.NewFallbackSummarizer(primary, secondary, logger)
		logger.Info("summarizer: using Groq with fallback provider")
	case cfg.GroqAPIKey != "":
		sum = summarizer.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel)
		logger.Info("summarizer: using Groq only")
	default:
		sum = summarizer.NewOpenAIClient(cfg.FallbackAPIKey, cfg.FallbackBaseURL, cfg.FallbackModel)
		logger.Info("summarizer: using fallback provider only")
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.NewServer(processor, sum, api.Config{
		ExtensionID: cfg.ExtensionID,
		Env:         cfg.Env,
	}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second, // generous — the provider call can be slow
		IdleTimeout:  120 * time.Second,
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	// Root context cancelled by OS signal.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until either a signal arrives or the server dies unexpectedly.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	// Give in-flight requests up to 20 seconds to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
