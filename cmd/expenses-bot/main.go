package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"expenses/internal/backup"
	"expenses/internal/bot"
	"expenses/internal/config"
	"expenses/internal/events"
	"expenses/internal/services"
	"expenses/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	token, err := cfg.Token()
	if err != nil {
		slog.Error("Failed to resolve Telegram token", "error", err)
		os.Exit(1)
	}

	// Snapshot the store before touching it, matching the old daily routine
	// of copying the file aside and pruning stale copies.
	if _, err := os.Stat(cfg.SQLiteDBPath); err == nil {
		path, err := backup.Snapshot(cfg.SQLiteDBPath, cfg.BackupDir)
		if err != nil {
			slog.Error("Failed to snapshot database", "error", err)
			os.Exit(1)
		}
		slog.Info("Database snapshot created", "path", path)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to open expense store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var publisher services.Publisher
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Error("Failed to connect to AMQP, events disabled", "error", err)
		} else {
			defer client.Close()
			publisher = client
			slog.Info("Connected to AMQP", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to initialize Telegram client", "error", err)
		os.Exit(1)
	}
	slog.Info("Authorized on Telegram", "account", api.Self.UserName)

	service := services.NewExpenseService(repo, publisher)
	b := bot.New(api, service, bot.NewWatermark(cfg.WatermarkFile))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting poll loop", "interval", cfg.PollInterval.String())
		return b.Run(ctx, cfg.PollInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Bot stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("Bot stopped gracefully")
}
