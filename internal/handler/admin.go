package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/mn-works/earnbot/internal/telegram"
)

func (h *Handler) handleAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	dash, err := h.api.AdminDashboard(ctx, token)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load the admin dashboard."))
		return
	}

	text := fmt.Sprintf(
		"🛠 *Admin Console*\n\n"+
			"👥 Users: *%d* (%d active)\n"+
			"💸 Pending withdrawals: *%d*\n"+
			"📦 Pending packages: *%d*\n"+
			"💰 Total paid out: ₨%s\n",
		dash.TotalUsers, dash.ActiveUsers,
		dash.PendingWithdrawals,
		dash.PendingPackages,
		dash.TotalPayout.StringFixed(0),
	)

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(
		telegram.ButtonRow(
			telegram.InlineButton("👥 Users", "adm_users"),
			telegram.InlineButton("💸 Withdrawals", "adm_wd"),
		),
		telegram.ButtonRow(
			telegram.InlineButton("📦 Packages", "adm_pkgs"),
			telegram.InlineButton("📒 Transactions", "adm_tx"),
		),
		telegram.ButtonRow(
			telegram.InlineButton("✅ Tasks", "adm_tasks"),
		),
		telegram.ButtonRow(
			telegram.InlineButton("🏠 Menu", "menu"),
		),
	))
}
