package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/mn-works/earnbot/internal/service"
	"github.com/mn-works/earnbot/internal/telegram"
)

func (h *Handler) handleAdminUsers(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	h.sendAdminUsers(ctx, chatIDOf(update), 0, "")
}

func (h *Handler) handleAdminUsersPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	page, err := strconv.Atoi(strings.TrimPrefix(update.CallbackQuery.Data, "adm_users_p_"))
	if err != nil {
		return
	}
	h.sendAdminUsers(ctx, chatIDOf(update), page, "")
}

func (h *Handler) handleAdminUserSearch(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	h.flows.Begin(chatID, service.FlowUserSearch)
	_ = telegram.SendLongMessage(ctx, h.bot, chatID, "🔍 Send a username or email to search:", nil)
}

// handleAdminUserSearchText runs the search typed after the search button.
func (h *Handler) handleAdminUserSearchText(ctx context.Context, chatID int64, text string) {
	h.flows.End(chatID)
	h.sendAdminUsers(ctx, chatID, 0, strings.TrimSpace(text))
}

func (h *Handler) sendAdminUsers(ctx context.Context, chatID int64, page int, search string) {
	if chatID == 0 {
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	result, err := h.api.AdminUsers(ctx, token, page, search)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load users."))
		return
	}

	text := fmt.Sprintf("👥 *Users* (%d total)\n", result.TotalUsers)
	if search != "" {
		text += fmt.Sprintf("🔍 Search: `%s`\n", search)
	}
	text += "\n"

	var rows [][]models.InlineKeyboardButton
	for _, user := range result.Users {
		state := "🟢"
		action := "Block"
		if !user.IsActive {
			state = "🔴"
			action = "Unblock"
		}
		text += fmt.Sprintf("%s *%s* — %s\n   💰 ₨%s, %d tasks, %s package\n",
			state, user.Username, user.Email,
			user.Wallet.Balance.StringFixed(0), user.TasksCompleted,
			user.PackageStatus.Display().Label)
		rows = append(rows, telegram.ButtonRow(
			telegram.InlineButton(fmt.Sprintf("%s %s", action, user.Username), "adm_user_tgl_"+user.ID),
		))
	}
	if len(result.Users) == 0 {
		text += "No users found."
	}

	if result.TotalPages > 1 {
		rows = append(rows, telegram.PaginationRow(result.Page, result.TotalPages, "adm_users_p"))
	}
	rows = append(rows,
		telegram.ButtonRow(telegram.InlineButton("🔍 Search", "adm_user_search")),
		telegram.ButtonRow(telegram.InlineButton("⬅️ Back", "admin")),
	)

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(rows...))
}

func (h *Handler) handleAdminUserToggle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	userID := strings.TrimPrefix(update.CallbackQuery.Data, "adm_user_tgl_")
	if chatID == 0 || userID == "" {
		return
	}

	ok := h.notifier.Confirm(ctx, chatID,
		"⚠️ Toggle this user's active status? A blocked user cannot log in or do tasks.",
		telegram.ConfirmOptions{ConfirmText: "Toggle", Danger: true})
	if !ok {
		return
	}

	token, tokenOK := h.token(ctx, chatID)
	if !tokenOK {
		return
	}
	if err := h.api.ToggleUserStatus(ctx, token, userID); err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not update the user."))
		return
	}
	h.notifier.Success(ctx, chatID, "User status updated.")
	h.sendAdminUsers(ctx, chatID, 0, "")
}
