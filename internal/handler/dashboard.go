package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/mn-works/earnbot/internal/telegram"
)

// handleDashboard renders the balance, package and stats overview. The user
// snapshot is re-hydrated so figures are fresh.
func (h *Handler) handleDashboard(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}

	user, err := h.sessions.Hydrate(ctx, chatID)
	if err != nil {
		h.notifier.Error(ctx, chatID, "Could not load your profile. Please log in again.")
		return
	}

	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}
	stats, err := h.api.TransactionStats(ctx, token)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load your stats."))
		return
	}

	text := fmt.Sprintf(
		"📊 *Dashboard*\n\n"+
			"👤 *%s*\n"+
			"💰 Balance: *₨%s*\n"+
			"📈 Total earnings: ₨%s\n"+
			"👥 Referral earnings: ₨%s\n"+
			"⏳ Pending withdrawals: ₨%s\n"+
			"✅ Tasks completed: %d\n",
		user.Username,
		user.Wallet.Balance.StringFixed(0),
		stats.Earnings.Total.StringFixed(0),
		stats.Referrals.Total.StringFixed(0),
		stats.Withdrawals.Pending.StringFixed(0),
		user.TasksCompleted,
	)

	text += "\n" + packageSummary(user)

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(
		telegram.ButtonRow(
			telegram.InlineButton("✅ Tasks", "tasks"),
			telegram.InlineButton("💸 Withdraw", "withdraw"),
		),
		telegram.ButtonRow(
			telegram.InlineButton("🏠 Menu", "menu"),
		),
	))
}

func packageSummary(user *domain.User) string {
	status := user.PackageStatus.Display()
	pkg := user.ActivePackage()
	if pkg == nil {
		return "📦 Package: none yet. Buy one to start earning!"
	}

	text := fmt.Sprintf("📦 Package: *%s* %s %s\n"+
		"▫️ %d tasks/day × ₨%s\n",
		pkg.Name, status.Emoji, status.Label,
		pkg.TasksPerDay, pkg.RewardPerTask.StringFixed(0),
	)
	if until := user.PackageValidUntil(); until != nil {
		text += fmt.Sprintf("▫️ Valid until %s\n", until.Format("2 Jan 2006"))
	}
	if user.PackageStatus == domain.PackageStatusPending {
		text += "▫️ Awaiting payment approval\n"
	}
	return text
}
