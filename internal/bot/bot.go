// Package bot is the Telegram polling surface. Each poll fetches the updates
// after the stored watermark, funnels every text message through the parser
// and the expense service, replies with a batch summary, and advances the
// watermark once per batch.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"expenses/internal/core"
	"expenses/internal/services"
)

// DeleteMarker routes a message to deletion. The marker is stripped wherever
// it appears before parsing.
const DeleteMarker = "DELETE"

// telegramAPI is the slice of *tgbotapi.BotAPI the bot needs.
type telegramAPI interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api       telegramAPI
	service   *services.ExpenseService
	watermark *Watermark
}

func New(api telegramAPI, service *services.ExpenseService, watermark *Watermark) *Bot {
	return &Bot{api: api, service: service, watermark: watermark}
}

// Run polls until the context is cancelled. A failed poll is logged and
// retried on the next tick; messages within one batch are handled strictly
// sequentially.
func (b *Bot) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := b.PollOnce(ctx); err != nil {
		slog.ErrorContext(ctx, "Poll failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := b.PollOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Poll failed", "error", err)
			}
		}
	}
}

// PollOnce fetches and handles one batch of updates.
func (b *Bot) PollOnce(ctx context.Context) error {
	last, ok, err := b.watermark.Load()
	if err != nil {
		return err
	}

	cfg := tgbotapi.NewUpdate(0)
	if ok {
		cfg.Offset = last + 1
	}

	updates, err := b.api.GetUpdates(cfg)
	if err != nil {
		return fmt.Errorf("get updates: %w", err)
	}
	if len(updates) == 0 {
		return nil
	}

	var (
		messages []string
		chatID   int64
		maxID    int
	)
	for _, u := range updates {
		if u.UpdateID > maxID {
			maxID = u.UpdateID
		}
		if u.Message == nil || u.Message.Text == "" {
			continue
		}
		messages = append(messages, u.Message.Text)
		chatID = u.Message.Chat.ID
	}

	result := b.processBatch(ctx, messages)
	if chatID != 0 {
		b.reply(ctx, chatID, result)
	}

	// Whole-batch advancement: the watermark moves only after every message
	// of the batch has been handled.
	if err := b.watermark.Save(maxID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Batch processed",
		"updates", len(updates),
		"added", len(result.added),
		"deleted", len(result.deleted),
		"failed", len(result.failedAdd)+len(result.failedDelete),
		"watermark", maxID)

	return nil
}

type batchResult struct {
	added        []string
	failedAdd    []string
	deleted      []string
	failedDelete []string
}

func (b *Bot) processBatch(ctx context.Context, messages []string) batchResult {
	var res batchResult
	for _, msg := range messages {
		if strings.Contains(msg, DeleteMarker) {
			payload := strings.ReplaceAll(msg, DeleteMarker, "")
			if b.deleteOne(ctx, payload) {
				res.deleted = append(res.deleted, payload)
			} else {
				res.failedDelete = append(res.failedDelete, payload)
			}
			continue
		}
		if b.addOne(ctx, msg) {
			res.added = append(res.added, msg)
		} else {
			res.failedAdd = append(res.failedAdd, msg)
		}
	}
	return res
}

func (b *Bot) addOne(ctx context.Context, msg string) bool {
	rec, err := core.Parse(msg)
	if err != nil {
		slog.DebugContext(ctx, "Rejected message", "message", msg, "error", err)
		return false
	}
	if err := b.service.Add(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "Failed to store expense", "message", msg, "error", err)
		return false
	}
	return true
}

func (b *Bot) deleteOne(ctx context.Context, payload string) bool {
	rec, err := core.Parse(payload)
	if err != nil {
		slog.DebugContext(ctx, "Rejected delete message", "message", payload, "error", err)
		return false
	}
	deleted, err := b.service.Delete(ctx, rec)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to delete expense", "message", payload, "error", err)
		return false
	}
	return deleted
}

func (b *Bot) reply(ctx context.Context, chatID int64, res batchResult) {
	sections := []struct {
		header   string
		messages []string
	}{
		{"THE FOLLOWING EXPENSES WERE ADDED:", res.added},
		{"COULDN'T ADD THE FOLLOWING EXPENSES:", res.failedAdd},
		{"THE FOLLOWING EXPENSES WERE DELETED:", res.deleted},
		{"COULDN'T DELETE THE FOLLOWING EXPENSES:", res.failedDelete},
	}
	for _, s := range sections {
		if len(s.messages) == 0 {
			continue
		}
		text := s.header + "\n" + strings.Join(s.messages, "\n")
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			slog.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
		}
	}
}
