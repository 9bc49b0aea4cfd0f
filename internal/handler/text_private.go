package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/service"
)

// HandleTextPrivate routes free text in a private chat to whichever dialog is
// waiting for input. Text outside any dialog gets the menu.
func (h *Handler) HandleTextPrivate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	text := update.Message.Text

	flow := h.flows.Active(chatID)
	if flow == nil {
		h.sendMenu(ctx, chatID, update.Message.From.FirstName)
		return
	}

	switch flow.Kind {
	case service.FlowLogin:
		h.handleLoginText(ctx, chatID, flow, text)
	case service.FlowRegister:
		h.handleRegisterText(ctx, chatID, flow, text)
	case service.FlowWithdraw:
		h.handleWithdrawText(ctx, chatID, flow, text)
	case service.FlowPayment:
		h.handlePaymentProofText(ctx, chatID, flow, text)
	case service.FlowTaskCreate, service.FlowTaskEdit:
		h.handleAdminTaskText(ctx, chatID, flow, text)
	case service.FlowWithdrawalRemark:
		h.handleAdminRemarkText(ctx, chatID, flow, text)
	case service.FlowUserSearch:
		h.handleAdminUserSearchText(ctx, chatID, text)
	case service.FlowTaskImport:
		h.notifier.Warning(ctx, chatID, "Send the spreadsheet as a file attachment.")
	}
}

// HandleMediaPrivate routes photos and documents to the dialog expecting
// them: payment screenshots and import spreadsheets.
func (h *Handler) HandleMediaPrivate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	flow := h.flows.Active(chatID)
	if flow == nil {
		return
	}

	switch flow.Kind {
	case service.FlowPayment:
		if len(update.Message.Photo) > 0 {
			h.handlePaymentProofPhoto(ctx, chatID, flow, update.Message.Photo)
		} else if update.Message.Document != nil {
			h.notifier.Warning(ctx, chatID, "Send the screenshot as a photo, not a file.")
		}
	case service.FlowTaskImport:
		if update.Message.Document != nil {
			h.handleAdminImportDocument(ctx, chatID, update.Message.Document)
		} else {
			h.notifier.Warning(ctx, chatID, "Send the spreadsheet as a file attachment.")
		}
	}
}
