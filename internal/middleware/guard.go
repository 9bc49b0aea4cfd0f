package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/config"
	"github.com/mn-works/earnbot/internal/service"
	"github.com/mn-works/earnbot/internal/telegram"
)

// Guard wraps handlers with authentication and admin checks, the route
// protection of the client.
type Guard struct {
	sessions *service.SessionService
	cfg      *config.Config
}

func NewGuard(sessions *service.SessionService, cfg *config.Config) *Guard {
	return &Guard{sessions: sessions, cfg: cfg}
}

// Private requires a logged-in session. Unauthenticated chats get a login
// prompt instead of the screen.
func (g *Guard) Private(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := ChatID(update)
		if chatID == 0 {
			return
		}
		if !g.sessions.IsAuthenticated(ctx, chatID) {
			answerCallback(ctx, b, update)
			_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "🔒 Please log in to continue.",
				ReplyMarkup: telegram.InlineKeyboard(
					telegram.ButtonRow(
						telegram.InlineButton("🔑 Login", "login"),
						telegram.InlineButton("📝 Register", "register"),
					),
				),
			})
			return
		}
		next(ctx, b, update)
	}
}

// Admin requires a logged-in session whose account is an admin, or a
// Telegram ID from ADMIN_IDS.
func (g *Guard) Admin(next bot.HandlerFunc) bot.HandlerFunc {
	return g.Private(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := ChatID(update)
		user := GetUser(ctx)
		if user == nil {
			if u, err := g.sessions.User(ctx, chatID); err == nil {
				user = u
			}
		}

		allowed := g.cfg.IsAdmin(telegramID(update))
		if !allowed && user != nil {
			allowed = user.IsAdmin
		}
		if !allowed {
			answerCallback(ctx, b, update)
			_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "⛔ This section is for administrators only.",
			})
			return
		}
		next(ctx, b, update)
	})
}

func telegramID(update *models.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	if update.CallbackQuery != nil {
		return update.CallbackQuery.From.ID
	}
	return 0
}

func answerCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		_, _ = b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}
