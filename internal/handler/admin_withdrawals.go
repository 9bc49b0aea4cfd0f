package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/mn-works/earnbot/internal/service"
	"github.com/mn-works/earnbot/internal/telegram"
)

func (h *Handler) handleAdminWithdrawals(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	h.sendAdminWithdrawals(ctx, chatIDOf(update), domain.WithdrawalPending)
}

func (h *Handler) handleAdminWithdrawalsFilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	filter := strings.TrimPrefix(update.CallbackQuery.Data, "adm_wd_f_")
	if filter == "all" {
		filter = ""
	}
	h.sendAdminWithdrawals(ctx, chatIDOf(update), domain.WithdrawalStatus(filter))
}

func (h *Handler) sendAdminWithdrawals(ctx context.Context, chatID int64, status domain.WithdrawalStatus) {
	if chatID == 0 {
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	wds, err := h.api.AdminWithdrawals(ctx, token, status)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load withdrawals."))
		return
	}

	title := "💸 *Withdrawals*"
	if status != "" {
		d := status.Display()
		title += fmt.Sprintf(" — %s %s", d.Emoji, d.Label)
	}
	text := title + "\n\n"

	var rows [][]models.InlineKeyboardButton
	for _, wd := range wds {
		text += formatAdminWithdrawal(wd)
		if wd.Status == domain.WithdrawalPending || wd.Status == domain.WithdrawalProcessing {
			rows = append(rows, telegram.ButtonRow(
				telegram.InlineButton("✅ Pay", "adm_wd_s_completed_"+wd.ID),
				telegram.InlineButton("🔄 Process", "adm_wd_s_processing_"+wd.ID),
				telegram.InlineButton("❌ Reject", "adm_wd_s_rejected_"+wd.ID),
			))
		}
	}
	if len(wds) == 0 {
		text += "Nothing here."
	}

	filterRow := telegram.ButtonRow(telegram.InlineButton("All", "adm_wd_f_all"))
	for _, s := range domain.AllWithdrawalStatuses {
		filterRow = append(filterRow, telegram.InlineButton(s.Display().Emoji, "adm_wd_f_"+string(s)))
	}
	rows = append(rows, filterRow,
		telegram.ButtonRow(telegram.InlineButton("⬅️ Back", "admin")))

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(rows...))
}

func formatAdminWithdrawal(wd domain.Withdrawal) string {
	sd := wd.Status.Display()
	md := wd.Method.Display()
	username := "?"
	if wd.User != nil {
		username = wd.User.Username
	}
	text := fmt.Sprintf("%s *%s* — ₨%s (net ₨%s)\n   %s %s, %s\n",
		sd.Emoji, username,
		wd.Amount.StringFixed(0), wd.NetAmount.StringFixed(0),
		md.Emoji, md.Label, wd.CreatedAt.Format("2 Jan 15:04"))

	details := wd.AccountDetails
	text += fmt.Sprintf("   👤 %s", details.AccountName)
	if details.PhoneNumber != "" {
		text += " 📱 `" + details.PhoneNumber + "`"
	}
	if details.AccountNumber != "" {
		text += " 🔢 `" + details.AccountNumber + "`"
	}
	if details.BankName != "" {
		text += " 🏦 " + details.BankName
	}
	text += "\n"
	if wd.Remarks != "" {
		text += fmt.Sprintf("   _%s_\n", wd.Remarks)
	}
	return text
}

// handleAdminWithdrawalStatus applies a status change. Rejection detours
// through a remark dialog since the money is returned to the user.
func (h *Handler) handleAdminWithdrawalStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	payload := strings.TrimPrefix(update.CallbackQuery.Data, "adm_wd_s_")
	statusStr, withdrawalID, found := strings.Cut(payload, "_")
	if chatID == 0 || !found || withdrawalID == "" {
		return
	}
	status := domain.WithdrawalStatus(statusStr)

	if status == domain.WithdrawalRejected {
		flow := h.flows.Begin(chatID, service.FlowWithdrawalRemark)
		flow.Data["withdrawalID"] = withdrawalID
		_ = telegram.SendLongMessage(ctx, h.bot, chatID,
			"✍️ Send the rejection reason (the user will see it):", nil)
		return
	}

	d := status.Display()
	ok := h.notifier.Confirm(ctx, chatID,
		fmt.Sprintf("Mark this withdrawal as %s *%s*?", d.Emoji, d.Label),
		telegram.ConfirmOptions{ConfirmText: d.Label})
	if !ok {
		return
	}

	h.updateWithdrawal(ctx, chatID, withdrawalID, status, "")
}

// handleAdminRemarkText finishes a rejection once the remark arrives.
func (h *Handler) handleAdminRemarkText(ctx context.Context, chatID int64, flow *service.Flow, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		h.notifier.Warning(ctx, chatID, "A rejection reason is required.")
		return
	}
	withdrawalID := flow.Data["withdrawalID"]
	h.flows.End(chatID)

	ok := h.notifier.Confirm(ctx, chatID,
		"⚠️ *Reject this withdrawal?*\n\n"+
			"The full amount is refunded to the user's balance.\n\n"+
			"Reason: _"+text+"_",
		telegram.ConfirmOptions{ConfirmText: "Reject", Danger: true})
	if !ok {
		return
	}

	h.updateWithdrawal(ctx, chatID, withdrawalID, domain.WithdrawalRejected, text)
}

func (h *Handler) updateWithdrawal(ctx context.Context, chatID int64, withdrawalID string, status domain.WithdrawalStatus, remarks string) {
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}
	if err := h.api.UpdateWithdrawal(ctx, token, withdrawalID, status, remarks); err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not update the withdrawal."))
		return
	}
	h.tgLogger.LogWithdrawalDecision(chatID, withdrawalID, string(status), remarks)
	h.notifier.Success(ctx, chatID, withdrawalDecisionMessage(status))
	h.sendAdminWithdrawals(ctx, chatID, domain.WithdrawalPending)
}

// withdrawalDecisionMessage is the admin-facing success copy per transition.
// Rejection states the refund since that is the part admins get asked about.
func withdrawalDecisionMessage(status domain.WithdrawalStatus) string {
	switch status {
	case domain.WithdrawalProcessing:
		return "Withdrawal moved to processing."
	case domain.WithdrawalCompleted:
		return "Withdrawal completed. Payout confirmed."
	case domain.WithdrawalRejected:
		return "Withdrawal rejected. The full amount was refunded to the user's balance."
	default:
		return "Withdrawal updated."
	}
}
