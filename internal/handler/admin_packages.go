package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/mn-works/earnbot/internal/telegram"
)

// handleAdminPackages lists package purchases awaiting payment verification.
func (h *Handler) handleAdminPackages(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	pending, err := h.api.PendingPackages(ctx, token)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load pending packages."))
		return
	}

	text := "📦 *Pending Package Purchases*\n\n"
	var rows [][]models.InlineKeyboardButton
	for _, tx := range pending {
		username := "?"
		userID := ""
		if tx.User != nil {
			username = tx.User.Username
			userID = tx.User.ID
		}
		pkgName := "?"
		pkgID := ""
		if tx.RelatedPackage != nil {
			pkgName = tx.RelatedPackage.Name
			pkgID = tx.RelatedPackage.ID
		}

		text += fmt.Sprintf("👤 *%s* — %s (₨%s)\n   %s\n",
			username, pkgName, tx.Amount.Abs().StringFixed(0),
			tx.CreatedAt.Format("2 Jan 2006 15:04"))
		if tx.TransactionID != "" {
			text += fmt.Sprintf("   🧾 Transaction ID: `%s`\n", tx.TransactionID)
		}
		if tx.PaymentProof != "" && !strings.HasPrefix(tx.PaymentProof, "data:") {
			text += fmt.Sprintf("   🖼 Proof: %s\n", tx.PaymentProof)
		} else if tx.PaymentProof != "" {
			text += "   🖼 Proof: screenshot attached\n"
		}

		if userID != "" && pkgID != "" {
			rows = append(rows, telegram.ButtonRow(
				telegram.InlineButton(fmt.Sprintf("✅ Approve %s", username),
					"adm_pkg_ok_"+userID+"_"+pkgID),
			))
		}
	}
	if len(pending) == 0 {
		text += "No purchases waiting for approval."
	}
	rows = append(rows, telegram.ButtonRow(telegram.InlineButton("⬅️ Back", "admin")))

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(rows...))
}

func (h *Handler) handleAdminPackageApprove(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	payload := strings.TrimPrefix(update.CallbackQuery.Data, "adm_pkg_ok_")
	userID, packageID, found := strings.Cut(payload, "_")
	if chatID == 0 || !found || userID == "" || packageID == "" {
		return
	}

	ok := h.notifier.Confirm(ctx, chatID,
		"✅ Approve this purchase? The package activates immediately and the referrer's bonus is credited.",
		telegram.ConfirmOptions{ConfirmText: "Approve"})
	if !ok {
		return
	}

	token, tokenOK := h.token(ctx, chatID)
	if !tokenOK {
		return
	}
	if err := h.api.ApprovePackage(ctx, token, userID, packageID); err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not approve the purchase."))
		return
	}
	h.tgLogger.LogPackageApproval(chatID, userID, packageID)
	h.notifier.Success(ctx, chatID, "Package approved.")
	h.handleAdminPackages(ctx, b, update)
}
