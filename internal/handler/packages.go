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

func (h *Handler) handlePackages(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	packages, err := h.api.Packages(ctx, token)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load packages."))
		return
	}
	if len(packages) == 0 {
		h.notifier.Info(ctx, chatID, "No packages are available right now.")
		return
	}

	text := "📦 *Earning Packages*\n\nPick a package to see its details:\n"
	var rows [][]models.InlineKeyboardButton
	for _, pkg := range packages {
		text += fmt.Sprintf("\n▫️ *%s* — ₨%s, %d tasks/day",
			pkg.Name, pkg.Price.StringFixed(0), pkg.TasksPerDay)
		rows = append(rows, telegram.ButtonRow(
			telegram.InlineButton(fmt.Sprintf("📦 %s (₨%s)", pkg.Name, pkg.Price.StringFixed(0)), "pkg_"+pkg.ID),
		))
	}
	rows = append(rows, telegram.ButtonRow(telegram.InlineButton("🏠 Menu", "menu")))

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(rows...))
}

func (h *Handler) handlePackageDetail(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	packageID := strings.TrimPrefix(update.CallbackQuery.Data, "pkg_")
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

	text := fmt.Sprintf(
		"📦 *%s*\n\n%s\n\n"+
			"💵 Price: *₨%s*\n"+
			"✅ %d tasks per day\n"+
			"💰 ₨%s per task\n"+
			"📅 Valid for %d days\n"+
			"📈 Total earning potential: *₨%s*\n",
		pkg.Name, pkg.Description,
		pkg.Price.StringFixed(0),
		pkg.TasksPerDay,
		pkg.RewardPerTask.StringFixed(0),
		pkg.TotalDays,
		pkg.TotalEarnings.StringFixed(0),
	)
	for _, feature := range pkg.Features {
		text += fmt.Sprintf("▪️ %s\n", feature)
	}

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.InlineButton("🛒 Buy Now", "buy_"+pkg.ID)),
		telegram.ButtonRow(telegram.InlineButton("⬅️ Back", "packages")),
	))
}
