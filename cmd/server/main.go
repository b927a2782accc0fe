package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"cleaning-intake/internal/config"
	"cleaning-intake/internal/llm"
	"cleaning-intake/internal/logger"
	"cleaning-intake/internal/metrics"
	"cleaning-intake/internal/notify"
	"cleaning-intake/internal/relay"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	logger := logger.NewLogger(cfg.Debug)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := llm.NewFactory(cfg).CreateClient(cfg.LLMProvider, cfg.OpenAIModel)
	if err != nil {
		logger.Fatal("failed to create llm client", zap.Error(err))
	}

	m := metrics.NewMetrics()

	var transport notify.Transport
	if recipient := cfg.Recipient(); recipient != "" {
		transport, err = notify.NewTransport(ctx, cfg)
		if err != nil {
			logger.Fatal("failed to create notification transport",
				zap.String("transport", string(cfg.NotifyTransport)),
				zap.Error(err),
			)
		}
	} else {
		logger.Warn("no notification recipient configured, summaries will not be delivered")
	}
	notifier := notify.New(transport, cfg.FromEmail, cfg.Recipient(), logger, m)

	s := relay.New(cfg, client, notifier, logger, m)

	logger.Info("cleaning intake relay starting",
		zap.String("provider", string(cfg.LLMProvider)),
		zap.String("model", cfg.OpenAIModel),
		zap.String("notify_transport", string(cfg.NotifyTransport)),
		zap.Bool("notifications", notifier.Enabled()),
		zap.Bool("strip_internal_summary", cfg.StripInternalSummary),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Run() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("relay server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}
}
