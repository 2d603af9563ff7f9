package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/pscheid92/moodreact/internal/adapter/httpserver"
	"github.com/pscheid92/moodreact/internal/adapter/language"
	"github.com/pscheid92/moodreact/internal/adapter/metrics"
	"github.com/pscheid92/moodreact/internal/adapter/slack"
	"github.com/pscheid92/moodreact/internal/app"
	"github.com/pscheid92/moodreact/internal/emoji"
	"github.com/pscheid92/moodreact/internal/platform/config"
	"github.com/pscheid92/moodreact/internal/platform/logging"
	"github.com/pscheid92/moodreact/internal/platform/version"
	"github.com/pscheid92/moodreact/internal/sentiment"
)

func runGracefulShutdown(srv *httpserver.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, draining requests...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupEmojiTable(cfg *config.Config) *emoji.Table {
	table, err := emoji.Load(cfg.EmojiTablePath)
	if err != nil {
		slog.Error("Failed to load emoji table", "path", cfg.EmojiTablePath, "error", err)
		os.Exit(1)
	}
	slog.Info("Emoji table loaded", "path", cfg.EmojiTablePath, "sizes", table.Size())
	return table
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", version.Version)

	table := setupEmojiTable(cfg)

	analyzer := language.NewClient(cfg.SentimentAPIURL, cfg.GCPKey, cfg.OutboundTimeout)
	classifier := sentiment.NewClassifier(analyzer)
	chat := slack.NewClient(cfg.SlackOAuthToken, cfg.SlackAPIURL, cfg.OutboundTimeout)

	registry := metrics.NewRegistry()
	reactionMetrics := metrics.NewReactionMetrics(registry)

	reactor := app.NewReactor(classifier, table, chat, reactionMetrics, clock, cfg.LongMessageThreshold)

	if cfg.SlackVerificationToken == "" {
		slog.Warn("SLACK_VERIFICATION_TOKEN not set, inbound events are not authenticated")
	}

	srv := httpserver.NewServer(httpserver.Options{
		Port:     cfg.Port,
		Events:   reactor,
		Verifier: slack.NewTokenVerifier(cfg.SlackVerificationToken),
		Registry: registry,
		HealthChecks: []httpserver.HealthCheck{
			{Name: "emoji_table", Check: table.Check},
		},
		Clock: clock,
	})

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
