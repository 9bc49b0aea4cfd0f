package handler

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/api"
	"github.com/mn-works/earnbot/internal/config"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/mn-works/earnbot/internal/service"
	"github.com/mn-works/earnbot/internal/telegram"
)

// Channels the platform accepts package payments on, with the accounts to
// send to. Shown verbatim on the payment screen.
var paymentChannels = []struct {
	Method       string
	Label        string
	Account      string
	Instructions string
}{
	{
		Method:       "nayapay",
		Label:        "💜 NayaPay",
		Account:      "ALI HASSAN, 0309-0319063",
		Instructions: "Send payment to the NayaPay number above and submit screenshot",
	},
	{
		Method:       "raast",
		Label:        "🏦 Raast ID",
		Account:      "ALI HASSAN, 0309-0319063",
		Instructions: "Send payment via Raast ID and provide transaction ID",
	},
	{
		Method:       "zindigi",
		Label:        "📱 Zindigi App",
		Account:      "ALI HASSAN, 0309-0319063",
		Instructions: "Send payment through Zindigi app and submit proof",
	},
}

func (h *Handler) handleBuyStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	packageID := strings.TrimPrefix(update.CallbackQuery.Data, "buy_")
	if chatID == 0 || packageID == "" {
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	pkg, err := h.api.Package(ctx, token, packageID)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load that package."))
		return
	}

	flow := h.flows.Begin(chatID, service.FlowPayment)
	flow.Package = pkg

	text := fmt.Sprintf(
		"🛒 *Buy %s — ₨%s*\n\n"+
			"Send the payment to one of these accounts, then pick the channel you used:\n\n",
		pkg.Name, pkg.Price.StringFixed(0),
	)
	var rows [][]models.InlineKeyboardButton
	for _, ch := range paymentChannels {
		text += fmt.Sprintf("%s: `%s`\n_%s_\n\n", ch.Label, ch.Account, ch.Instructions)
		rows = append(rows, telegram.ButtonRow(telegram.InlineButton(ch.Label, "paych_"+ch.Method)))
	}
	rows = append(rows, telegram.ButtonRow(telegram.InlineButton("⬅️ Back", "pkg_"+pkg.ID)))

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(rows...))
}

func (h *Handler) handlePaymentChannel(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	method := strings.TrimPrefix(update.CallbackQuery.Data, "paych_")
	if chatID == 0 {
		return
	}

	flow := h.flows.Active(chatID)
	if flow == nil || flow.Kind != service.FlowPayment || flow.Package == nil {
		// Navigation state lost, e.g. after a restart. Send the user back.
		h.notifier.Warning(ctx, chatID, "No package selected. Please pick one first.")
		h.handlePackages(ctx, b, update)
		return
	}

	_ = h.flows.Advance(chatID, service.FlowPayment, func(f *service.Flow) {
		f.Data["method"] = method
	})

	_ = telegram.SendLongMessage(ctx, h.bot, chatID,
		"🧾 *Payment Proof*\n\n"+
			"Send a *screenshot* of your payment (max 2 MB), or type the *transaction ID*.",
		nil)
}

// handlePaymentProofPhoto finishes the purchase with an uploaded screenshot.
func (h *Handler) handlePaymentProofPhoto(ctx context.Context, chatID int64, flow *service.Flow, photos []models.PhotoSize) {
	if len(photos) == 0 {
		return
	}
	// Largest rendition last
	photo := photos[len(photos)-1]
	if photo.FileSize > config.MaxProofSizeBytes {
		h.notifier.Error(ctx, chatID, "Screenshot is larger than 2 MB. Please send a smaller image.")
		return
	}

	data, _, err := telegram.DownloadFile(ctx, h.bot, photo.FileID)
	if err != nil {
		h.notifier.Error(ctx, chatID, "Could not read the screenshot. Please try again.")
		return
	}
	if len(data) > config.MaxProofSizeBytes {
		h.notifier.Error(ctx, chatID, "Screenshot is larger than 2 MB. Please send a smaller image.")
		return
	}

	proof := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
	h.submitPurchase(ctx, chatID, flow, proof, "")
}

// handlePaymentProofText finishes the purchase with a typed transaction ID.
func (h *Handler) handlePaymentProofText(ctx context.Context, chatID int64, flow *service.Flow, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		h.notifier.Warning(ctx, chatID, "Send a screenshot or a transaction ID.")
		return
	}
	h.submitPurchase(ctx, chatID, flow, "", text)
}

func (h *Handler) submitPurchase(ctx context.Context, chatID int64, flow *service.Flow, proof, transactionID string) {
	pkg := flow.Package
	method := flow.Data["method"]
	if pkg == nil || method == "" {
		h.flows.End(chatID)
		h.notifier.Warning(ctx, chatID, "No package selected. Please pick one first.")
		return
	}

	ok := h.notifier.Confirm(ctx, chatID,
		fmt.Sprintf("🛒 Submit purchase of *%s* for *₨%s* via %s?",
			pkg.Name, pkg.Price.StringFixed(0), method),
		telegram.ConfirmOptions{ConfirmText: "Submit"})
	if !ok {
		return
	}

	token, tokenOK := h.token(ctx, chatID)
	if !tokenOK {
		return
	}

	err := h.api.PurchasePackage(ctx, token, api.PurchaseRequest{
		PackageID:     pkg.ID,
		PaymentMethod: method,
		PaymentProof:  proof,
		TransactionID: transactionID,
	})
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Purchase failed. Please try again."))
		return
	}

	h.flows.End(chatID)
	h.tgLogger.LogPurchase(chatID, pkg.Name, pkg.Price, method)

	// Reflect the pending purchase locally until the next hydration.
	h.sessions.ApplyUserUpdate(chatID, func(u *domain.User) {
		u.PendingPackage = pkg
		u.PackageStatus = domain.PackageStatusPending
	})

	h.notifier.Success(ctx, chatID,
		"Purchase submitted! Your package activates once an admin verifies the payment.")
	h.sendMenu(ctx, chatID, "")
}
