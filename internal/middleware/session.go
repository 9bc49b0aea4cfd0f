package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/mn-works/earnbot/internal/service"
)

type ctxKey string

const UserKey ctxKey = "user"

// GetUser extracts the authenticated platform user from context. Nil when the
// chat is not logged in.
func GetUser(ctx context.Context) *domain.User {
	u, ok := ctx.Value(UserKey).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// ChatID extracts the private chat ID from an update, or 0 when absent.
func ChatID(update *models.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil {
		return update.CallbackQuery.Message.Message.Chat.ID
	}
	return 0
}

// SessionLoader returns middleware that attaches the chat's authenticated
// user to the context when one is cached. It never makes a network call;
// screens that need fresh data hydrate explicitly.
func SessionLoader(sessions *service.SessionService) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			chatID := ChatID(update)
			if chatID != 0 {
				if user := sessions.CachedUser(chatID); user != nil {
					ctx = context.WithValue(ctx, UserKey, user)
				}
			}
			next(ctx, b, update)
		}
	}
}
