package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/config"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/mn-works/earnbot/internal/middleware"
	"github.com/mn-works/earnbot/internal/telegram"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}
	chatID := update.Message.Chat.ID

	// Parse deep link payload: /start r_<referralCode>
	parts := strings.SplitN(update.Message.Text, " ", 2)
	if len(parts) > 1 && strings.HasPrefix(parts[1], config.ReferralPayloadPrefix) {
		code := strings.TrimPrefix(parts[1], config.ReferralPayloadPrefix)
		if code != "" && !h.sessions.IsAuthenticated(ctx, chatID) {
			h.setPendingReferral(chatID, code)
			h.notifier.Info(ctx, chatID, "Referral code applied! Register to give your friend the bonus.")
		}
	}

	h.sendMenu(ctx, chatID, update.Message.From.FirstName)
}

func (h *Handler) handleMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	name := ""
	if update.CallbackQuery != nil {
		name = update.CallbackQuery.From.FirstName
	}
	h.sendMenu(ctx, chatID, name)
}

func (h *Handler) sendMenu(ctx context.Context, chatID int64, firstName string) {
	if !h.sessions.IsAuthenticated(ctx, chatID) {
		text := fmt.Sprintf(
			"👋 Welcome%s!\n\n"+
				"*MN Works* lets you earn by completing simple daily tasks.\n\n"+
				"📦 Buy a package to unlock daily tasks\n"+
				"💰 Earn a fixed reward per completed task\n"+
				"👥 Invite friends and earn referral bonuses\n"+
				"💸 Withdraw to NayaPay, JazzCash, Easypaisa and more\n\n"+
				"Log in or create an account to get started.",
			nameSuffix(firstName),
		)
		_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(
			telegram.ButtonRow(
				telegram.InlineButton("🔑 Login", "login"),
				telegram.InlineButton("📝 Register", "register"),
			),
		))
		return
	}

	user := h.sessions.CachedUser(chatID)
	text := fmt.Sprintf("🏠 *Main Menu*%s\n\nWhat would you like to do?", nameSuffix(firstName))

	rows := telegram.Grid(2,
		telegram.InlineButton("📊 Dashboard", "dashboard"),
		telegram.InlineButton("✅ Tasks", "tasks"),
		telegram.InlineButton("📦 Packages", "packages"),
		telegram.InlineButton("💸 Withdraw", "withdraw"),
		telegram.InlineButton("👥 Referrals", "referrals"),
		telegram.InlineButton("📜 History", "history"),
	)
	if (user != nil && user.IsAdmin) || h.cfg.IsAdmin(chatID) {
		rows = append(rows, telegram.ButtonRow(telegram.InlineButton("🛠 Admin", "admin")))
	}
	rows = append(rows, telegram.ButtonRow(telegram.InlineButton("🚪 Logout", "logout")))

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(rows...))
}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	text := "📋 *Commands*\n\n" +
		"/start — Main menu\n" +
		"/dashboard — Balance and package overview\n" +
		"/tasks — Today's tasks\n" +
		"/packages — Earning packages\n" +
		"/withdraw — Request a withdrawal\n" +
		"/referrals — Your referral link\n" +
		"/history — Transaction history\n" +
		"/logout — Sign out"
	_ = telegram.SendLongMessage(ctx, h.bot, update.Message.Chat.ID, text, nil)
}

func (h *Handler) handleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}

	ok := h.notifier.Confirm(ctx, chatID, "🚪 Log out of your account?", telegram.ConfirmOptions{
		ConfirmText: "Logout",
		CancelText:  "Stay",
	})
	if !ok {
		return
	}

	h.runner.Cancel(chatID)
	h.flows.End(chatID)
	if err := h.sessions.Logout(ctx, chatID); err != nil {
		h.notifier.Error(ctx, chatID, "Could not log out. Please try again.")
		return
	}
	h.notifier.Success(ctx, chatID, "Logged out. See you soon!")
	h.sendMenu(ctx, chatID, "")
}

// user returns the context user, falling back to the session cache.
func (h *Handler) user(ctx context.Context, chatID int64) *domain.User {
	if u := middleware.GetUser(ctx); u != nil {
		return u
	}
	return h.sessions.CachedUser(chatID)
}

func nameSuffix(firstName string) string {
	if firstName == "" {
		return ""
	}
	return ", *" + firstName + "*"
}
