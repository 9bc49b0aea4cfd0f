package handler

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/api"
	"github.com/mn-works/earnbot/internal/config"
	"github.com/mn-works/earnbot/internal/middleware"
	"github.com/mn-works/earnbot/internal/service"
	"github.com/mn-works/earnbot/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot         *bot.Bot
	cfg         *config.Config
	api         *api.Client
	sessions    *service.SessionService
	flows       *service.FlowStore
	runner      *service.TaskRunner
	preview     *service.PreviewService
	guard       *middleware.Guard
	notifier    *telegram.Notifier
	tgLogger    *telegram.TelegramLogger
	botUsername string

	// Referral codes captured from /start deep links before the chat has an
	// account; consumed by the registration flow.
	refMu       sync.Mutex
	pendingRefs map[int64]string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot         *bot.Bot
	Cfg         *config.Config
	API         *api.Client
	Sessions    *service.SessionService
	Flows       *service.FlowStore
	Runner      *service.TaskRunner
	Preview     *service.PreviewService
	Guard       *middleware.Guard
	Notifier    *telegram.Notifier
	TgLogger    *telegram.TelegramLogger
	BotUsername string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:         deps.Bot,
		cfg:         deps.Cfg,
		api:         deps.API,
		sessions:    deps.Sessions,
		flows:       deps.Flows,
		runner:      deps.Runner,
		preview:     deps.Preview,
		guard:       deps.Guard,
		notifier:    deps.Notifier,
		tgLogger:    deps.TgLogger,
		botUsername: deps.BotUsername,
		pendingRefs: make(map[int64]string),
	}
}

func (h *Handler) setPendingReferral(chatID int64, code string) {
	h.refMu.Lock()
	h.pendingRefs[chatID] = code
	h.refMu.Unlock()
}

func (h *Handler) takePendingReferral(chatID int64) string {
	h.refMu.Lock()
	defer h.refMu.Unlock()
	code := h.pendingRefs[chatID]
	delete(h.pendingRefs, chatID)
	return code
}

// token resolves the chat's bearer token; handlers behind the Private guard
// can assume it succeeds.
func (h *Handler) token(ctx context.Context, chatID int64) (string, bool) {
	token, err := h.sessions.Token(ctx, chatID)
	if err != nil {
		h.notifier.Error(ctx, chatID, "Your session expired. Please log in again.")
		return "", false
	}
	return token, true
}

func chatIDOf(update *models.Update) int64 {
	return middleware.ChatID(update)
}

func (h *Handler) answerCallback(ctx context.Context, update *models.Update) {
	if update.CallbackQuery != nil {
		_, _ = h.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}
