package handler

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/config"
	"github.com/mn-works/earnbot/internal/telegram"
)

func (h *Handler) handleReferrals(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}

	user := h.user(ctx, chatID)
	token, ok := h.token(ctx, chatID)
	if user == nil || !ok {
		return
	}

	referrals, err := h.api.Referrals(ctx, token)
	if err != nil {
		h.notifier.Error(ctx, chatID, "Could not load your referrals.")
		return
	}

	refLink := fmt.Sprintf("https://t.me/%s?start=%s%s",
		h.botUsername, config.ReferralPayloadPrefix, user.ReferralCode)

	text := fmt.Sprintf(
		"👥 *Referral Program*\n\n"+
			"Earn *₨%d* for every friend who joins with your link and activates a package!\n\n"+
			"🔗 Your link:\n`%s`\n\n"+
			"🎫 Your code: `%s`\n"+
			"💰 Referral earnings: *₨%s*\n"+
			"👤 Referrals: *%d*\n",
		config.ReferralBonusAmount,
		refLink,
		user.ReferralCode,
		user.Wallet.ReferralEarnings.StringFixed(0),
		len(referrals),
	)

	if len(referrals) > 0 {
		text += "\n*Your referrals:*\n"
		for _, ref := range referrals {
			text += fmt.Sprintf("▫️ %s — joined %s\n", ref.Username, ref.CreatedAt.Format("2 Jan 2006"))
		}
	}

	shareText := fmt.Sprintf("Join MN Works and start earning daily! %s", refLink)
	whatsappURL := "https://wa.me/?text=" + url.QueryEscape(shareText)

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(
		telegram.ButtonRow(
			telegram.URLButton("📲 Share on WhatsApp", whatsappURL),
		),
		telegram.ButtonRow(
			telegram.InlineButton("🏠 Menu", "menu"),
		),
	))
}
