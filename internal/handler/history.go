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

func (h *Handler) handleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	h.sendHistory(ctx, chatIDOf(update), "")
}

func (h *Handler) handleHistoryFilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	filter := strings.TrimPrefix(update.CallbackQuery.Data, "hist_f_")
	if filter == "all" {
		filter = ""
	}
	h.sendHistory(ctx, chatIDOf(update), domain.TxType(filter))
}

func (h *Handler) sendHistory(ctx context.Context, chatID int64, txType domain.TxType) {
	if chatID == 0 {
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	txs, err := h.api.Transactions(ctx, token, txType)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load your transactions."))
		return
	}

	title := "📜 *Transaction History*"
	if txType != "" {
		d := txType.Display()
		title += fmt.Sprintf(" — %s %s", d.Emoji, d.Label)
	}

	text := title + "\n\n"
	if len(txs) == 0 {
		text += "Nothing here yet."
	}
	for _, tx := range txs {
		text += formatTransaction(tx)
	}

	filterRow := telegram.ButtonRow(telegram.InlineButton("All", "hist_f_all"))
	for _, t := range domain.AllTxTypes {
		filterRow = append(filterRow, telegram.InlineButton(t.Display().Emoji, "hist_f_"+string(t)))
	}

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(
		filterRow,
		telegram.ButtonRow(telegram.InlineButton("🏠 Menu", "menu")),
	))
}

func formatTransaction(tx domain.Transaction) string {
	typeD := tx.Type.Display()
	statusD := tx.Status.Display()
	sign := "+"
	if tx.Amount.IsNegative() {
		sign = ""
	}
	line := fmt.Sprintf("%s *%s* %s₨%s %s\n",
		typeD.Emoji, typeD.Label, sign, tx.Amount.StringFixed(0), statusD.Emoji)
	if tx.Description != "" {
		line += fmt.Sprintf("   _%s_\n", tx.Description)
	}
	line += fmt.Sprintf("   %s\n", tx.CreatedAt.Format("2 Jan 2006 15:04"))
	return line
}
