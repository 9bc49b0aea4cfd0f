package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/api"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/mn-works/earnbot/internal/service"
	"github.com/mn-works/earnbot/internal/telegram"
	"github.com/shopspring/decimal"
)

func (h *Handler) handleWithdraw(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}

	user, err := h.sessions.Hydrate(ctx, chatID)
	if err != nil {
		h.notifier.Error(ctx, chatID, "Could not load your balance. Please log in again.")
		return
	}

	text := fmt.Sprintf(
		"💸 *Withdraw*\n\n"+
			"💰 Available balance: *₨%s*\n"+
			"▫️ Minimum withdrawal: ₨%d\n"+
			"▫️ 8%% tax applies to every withdrawal\n",
		user.Wallet.Balance.StringFixed(0),
		domain.MinWithdrawalAmount,
	)

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.InlineButton("💸 New Withdrawal", "wd_new")),
		telegram.ButtonRow(telegram.InlineButton("📜 Withdrawal History", "wd_history")),
		telegram.ButtonRow(telegram.InlineButton("🏠 Menu", "menu")),
	))
}

func (h *Handler) handleWithdrawNew(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}

	var rows [][]models.InlineKeyboardButton
	for _, m := range domain.AllWithdrawalMethods {
		d := m.Display()
		rows = append(rows, telegram.ButtonRow(
			telegram.InlineButton(d.Emoji+" "+d.Label, "wd_m_"+string(m)),
		))
	}
	rows = append(rows, telegram.ButtonRow(telegram.InlineButton("⬅️ Back", "withdraw")))

	_ = telegram.SendLongMessage(ctx, h.bot, chatID,
		"💸 *New Withdrawal*\n\nPick your payout method:",
		telegram.InlineKeyboard(rows...))
}

func (h *Handler) handleWithdrawMethod(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	method := domain.WithdrawalMethod(strings.TrimPrefix(update.CallbackQuery.Data, "wd_m_"))
	if chatID == 0 {
		return
	}

	flow := h.flows.Begin(chatID, service.FlowWithdraw)
	flow.Data["method"] = string(method)

	d := method.Display()
	_ = telegram.SendLongMessage(ctx, h.bot, chatID,
		fmt.Sprintf("%s *%s Withdrawal*\n\n💵 Enter the amount in rupees (minimum ₨%d):",
			d.Emoji, d.Label, domain.MinWithdrawalAmount),
		nil)
}

// handleWithdrawText advances the withdrawal dialog: amount, account name,
// then the method-specific account fields.
func (h *Handler) handleWithdrawText(ctx context.Context, chatID int64, flow *service.Flow, text string) {
	text = strings.TrimSpace(text)
	method := domain.WithdrawalMethod(flow.Data["method"])

	switch flow.Step {
	case 0:
		amount, err := decimal.NewFromString(text)
		if err != nil {
			h.notifier.Warning(ctx, chatID, "Send the amount as a number, e.g. 500.")
			return
		}

		user := h.sessions.CachedUser(chatID)
		balance := decimal.Zero
		if user != nil {
			balance = user.Wallet.Balance
		}
		if err := domain.ValidateWithdrawalAmount(amount, balance); err != nil {
			switch err {
			case domain.ErrAmountBelowMinimum:
				h.notifier.Warning(ctx, chatID,
					fmt.Sprintf("Minimum withdrawal is ₨%d.", domain.MinWithdrawalAmount))
			case domain.ErrInsufficientBalance:
				h.notifier.Warning(ctx, chatID,
					fmt.Sprintf("You only have ₨%s available.", balance.StringFixed(0)))
			}
			return
		}

		tax, net := domain.TaxBreakdown(amount)
		_ = h.flows.Advance(chatID, service.FlowWithdraw, func(f *service.Flow) {
			f.Data["amount"] = amount.String()
		})
		_ = telegram.SendLongMessage(ctx, h.bot, chatID,
			fmt.Sprintf("🧾 Amount: ₨%s\n▫️ Tax (8%%): -₨%s\n▫️ *You receive: ₨%s*\n\n"+
				"👤 Enter the account holder's name:",
				amount.StringFixed(0), tax.StringFixed(0), net.StringFixed(0)),
			nil)
	case 1:
		_ = h.flows.Advance(chatID, service.FlowWithdraw, func(f *service.Flow) {
			f.Data["accountName"] = text
		})
		if domain.MethodNeedsPhone(method) {
			_ = telegram.SendLongMessage(ctx, h.bot, chatID, "📱 Enter the registered phone number:", nil)
		} else {
			_ = telegram.SendLongMessage(ctx, h.bot, chatID, "🔢 Enter the account number:", nil)
		}
	case 2:
		key := "accountNumber"
		if domain.MethodNeedsPhone(method) {
			key = "phoneNumber"
		}
		_ = h.flows.Advance(chatID, service.FlowWithdraw, func(f *service.Flow) {
			f.Data[key] = text
		})
		if method == domain.MethodRaast {
			_ = telegram.SendLongMessage(ctx, h.bot, chatID, "🏦 Enter the bank name:", nil)
			return
		}
		h.finishWithdrawal(ctx, chatID)
	case 3:
		_ = h.flows.Advance(chatID, service.FlowWithdraw, func(f *service.Flow) {
			f.Data["bankName"] = text
		})
		h.finishWithdrawal(ctx, chatID)
	}
}

func (h *Handler) finishWithdrawal(ctx context.Context, chatID int64) {
	flow := h.flows.Active(chatID)
	if flow == nil || flow.Kind != service.FlowWithdraw {
		return
	}

	amount, err := decimal.NewFromString(flow.Data["amount"])
	if err != nil {
		h.flows.End(chatID)
		return
	}
	method := domain.WithdrawalMethod(flow.Data["method"])
	tax, net := domain.TaxBreakdown(amount)
	d := method.Display()

	ok := h.notifier.Confirm(ctx, chatID, fmt.Sprintf(
		"💸 *Confirm Withdrawal*\n\n"+
			"Method: %s %s\n"+
			"Amount: ₨%s\n"+
			"Tax (8%%): -₨%s\n"+
			"*You receive: ₨%s*\n\n"+
			"Account: %s",
		d.Emoji, d.Label,
		amount.StringFixed(0), tax.StringFixed(0), net.StringFixed(0),
		flow.Data["accountName"],
	), telegram.ConfirmOptions{ConfirmText: "Request"})
	if !ok {
		return
	}

	token, tokenOK := h.token(ctx, chatID)
	if !tokenOK {
		return
	}

	wd, err := h.api.RequestWithdrawal(ctx, token, api.WithdrawalRequest{
		Amount: amount,
		Method: string(method),
		AccountDetails: domain.AccountDetails{
			AccountName:   flow.Data["accountName"],
			AccountNumber: flow.Data["accountNumber"],
			BankName:      flow.Data["bankName"],
			PhoneNumber:   flow.Data["phoneNumber"],
		},
	})
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Withdrawal request failed."))
		return
	}

	h.flows.End(chatID)
	h.tgLogger.LogWithdrawal(chatID, amount, string(method))

	// The wallet only moves on server say-so; re-read the profile rather
	// than recomputing the balance locally.
	_, _ = h.sessions.Hydrate(ctx, chatID)

	h.notifier.Success(ctx, chatID, fmt.Sprintf(
		"Withdrawal requested! ₨%s will arrive after review.", wd.NetAmount.StringFixed(0)))
	h.sendMenu(ctx, chatID, "")
}

func (h *Handler) handleWithdrawHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	wds, err := h.api.Withdrawals(ctx, token)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load your withdrawals."))
		return
	}

	text := "📜 *Withdrawal History*\n\n"
	if len(wds) == 0 {
		text += "No withdrawals yet."
	}
	for _, wd := range wds {
		sd := wd.Status.Display()
		md := wd.Method.Display()
		text += fmt.Sprintf("%s %s — ₨%s (net ₨%s) %s %s\n   %s\n",
			sd.Emoji, sd.Label,
			wd.Amount.StringFixed(0), wd.NetAmount.StringFixed(0),
			md.Emoji, md.Label,
			wd.CreatedAt.Format("2 Jan 2006 15:04"))
		if wd.Remarks != "" {
			text += fmt.Sprintf("   _%s_\n", wd.Remarks)
		}
	}

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.InlineButton("⬅️ Back", "withdraw")),
	))
}
