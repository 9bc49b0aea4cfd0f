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

func (h *Handler) handleAdminTransactions(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	h.sendAdminTransactions(ctx, chatIDOf(update), "")
}

func (h *Handler) handleAdminTransactionsFilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	filter := strings.TrimPrefix(update.CallbackQuery.Data, "adm_tx_f_")
	if filter == "all" {
		filter = ""
	}
	h.sendAdminTransactions(ctx, chatIDOf(update), domain.TxType(filter))
}

func (h *Handler) sendAdminTransactions(ctx context.Context, chatID int64, txType domain.TxType) {
	if chatID == 0 {
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	txs, err := h.api.AdminTransactions(ctx, token, txType)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load transactions."))
		return
	}

	title := "📒 *All Transactions*"
	if txType != "" {
		d := txType.Display()
		title += fmt.Sprintf(" — %s %s", d.Emoji, d.Label)
	}
	text := title + "\n\n"
	if len(txs) == 0 {
		text += "Nothing here."
	}
	for _, tx := range txs {
		if tx.User != nil {
			text += fmt.Sprintf("👤 *%s*\n", tx.User.Username)
		}
		text += formatTransaction(tx)
	}

	filterRow := telegram.ButtonRow(telegram.InlineButton("All", "adm_tx_f_all"))
	for _, t := range domain.AllTxTypes {
		filterRow = append(filterRow, telegram.InlineButton(t.Display().Emoji, "adm_tx_f_"+string(t)))
	}

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(
		filterRow,
		telegram.ButtonRow(telegram.InlineButton("⬅️ Back", "admin")),
	))
}
