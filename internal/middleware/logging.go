package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Logging returns middleware that logs every processed update with its
// routing key and handling time.
func Logging() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			start := time.Now()

			next(ctx, b, update)

			kind, key := describeUpdate(update)
			slog.Debug("update processed",
				"type", kind,
				"key", key,
				"chat_id", ChatID(update),
				"duration", time.Since(start),
			)
		}
	}
}

func describeUpdate(update *models.Update) (kind, key string) {
	switch {
	case update.CallbackQuery != nil:
		return "callback_query", update.CallbackQuery.Data
	case update.Message != nil:
		switch {
		case update.Message.Document != nil:
			return "message", "document"
		case len(update.Message.Photo) > 0:
			return "message", "photo"
		default:
			return "message", "text"
		}
	default:
		return "other", ""
	}
}
