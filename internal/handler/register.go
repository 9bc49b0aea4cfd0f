package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/telegram"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.handleHelp)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/dashboard", bot.MatchTypePrefix, h.guard.Private(h.handleDashboard))
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tasks", bot.MatchTypePrefix, h.guard.Private(h.handleTasks))
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/packages", bot.MatchTypePrefix, h.guard.Private(h.handlePackages))
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/withdraw", bot.MatchTypePrefix, h.guard.Private(h.handleWithdraw))
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/referrals", bot.MatchTypePrefix, h.guard.Private(h.handleReferrals))
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/history", bot.MatchTypePrefix, h.guard.Private(h.handleHistory))
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypePrefix, h.guard.Private(h.handleLogout))
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin", bot.MatchTypePrefix, h.guard.Admin(h.handleAdmin))

	// Auth callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "login", bot.MatchTypeExact, h.handleLoginStart)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "register", bot.MatchTypeExact, h.handleRegisterStart)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "logout", bot.MatchTypeExact, h.guard.Private(h.handleLogout))

	// Menu callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "menu", bot.MatchTypeExact, h.handleMenu)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "dashboard", bot.MatchTypeExact, h.guard.Private(h.handleDashboard))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "tasks", bot.MatchTypeExact, h.guard.Private(h.handleTasks))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "packages", bot.MatchTypeExact, h.guard.Private(h.handlePackages))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "withdraw", bot.MatchTypeExact, h.guard.Private(h.handleWithdraw))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "referrals", bot.MatchTypeExact, h.guard.Private(h.handleReferrals))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "history", bot.MatchTypeExact, h.guard.Private(h.handleHistory))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "hist_f_", bot.MatchTypePrefix, h.guard.Private(h.handleHistoryFilter))

	// Confirm dialogs
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, telegram.CallbackConfirmYes, bot.MatchTypeExact, h.handleConfirmAnswer)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, telegram.CallbackConfirmNo, bot.MatchTypeExact, h.handleConfirmAnswer)

	// Package and payment callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "pkg_", bot.MatchTypePrefix, h.guard.Private(h.handlePackageDetail))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "buy_", bot.MatchTypePrefix, h.guard.Private(h.handleBuyStart))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "paych_", bot.MatchTypePrefix, h.guard.Private(h.handlePaymentChannel))

	// Task callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "task_start_", bot.MatchTypePrefix, h.guard.Private(h.handleTaskStart))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "task_retry", bot.MatchTypeExact, h.guard.Private(h.handleTaskRetry))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "task_cancel", bot.MatchTypeExact, h.guard.Private(h.handleTaskCancel))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "task_hist", bot.MatchTypeExact, h.guard.Private(h.handleTaskHistory))

	// Withdrawal callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "wd_new", bot.MatchTypeExact, h.guard.Private(h.handleWithdrawNew))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "wd_m_", bot.MatchTypePrefix, h.guard.Private(h.handleWithdrawMethod))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "wd_history", bot.MatchTypeExact, h.guard.Private(h.handleWithdrawHistory))

	// Admin callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "admin", bot.MatchTypeExact, h.guard.Admin(h.handleAdmin))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_users", bot.MatchTypeExact, h.guard.Admin(h.handleAdminUsers))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_users_p_", bot.MatchTypePrefix, h.guard.Admin(h.handleAdminUsersPage))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_user_search", bot.MatchTypeExact, h.guard.Admin(h.handleAdminUserSearch))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_user_tgl_", bot.MatchTypePrefix, h.guard.Admin(h.handleAdminUserToggle))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_wd", bot.MatchTypeExact, h.guard.Admin(h.handleAdminWithdrawals))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_wd_f_", bot.MatchTypePrefix, h.guard.Admin(h.handleAdminWithdrawalsFilter))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_wd_s_", bot.MatchTypePrefix, h.guard.Admin(h.handleAdminWithdrawalStatus))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_pkgs", bot.MatchTypeExact, h.guard.Admin(h.handleAdminPackages))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_pkg_ok_", bot.MatchTypePrefix, h.guard.Admin(h.handleAdminPackageApprove))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_tx", bot.MatchTypeExact, h.guard.Admin(h.handleAdminTransactions))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_tx_f_", bot.MatchTypePrefix, h.guard.Admin(h.handleAdminTransactionsFilter))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_tasks", bot.MatchTypeExact, h.guard.Admin(h.handleAdminTasks))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_task_new", bot.MatchTypeExact, h.guard.Admin(h.handleAdminTaskNew))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_task_imp", bot.MatchTypeExact, h.guard.Admin(h.handleAdminTaskImport))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_task_tgl_", bot.MatchTypePrefix, h.guard.Admin(h.handleAdminTaskToggle))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_task_del_", bot.MatchTypePrefix, h.guard.Admin(h.handleAdminTaskDelete))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "adm_task_edit_", bot.MatchTypePrefix, h.guard.Admin(h.handleAdminTaskEdit))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "tasktype_", bot.MatchTypePrefix, h.guard.Admin(h.handleAdminTaskType))

	// Pagination indicator
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cur", bot.MatchTypeExact, h.handleNoop)
}

// handleNoop is a no-op callback handler used for pagination indicators and
// other non-interactive inline buttons. It simply acknowledges the callback.
func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
}

// handleConfirmAnswer routes the yes/no tap to the waiting confirm dialog.
func (h *Handler) handleConfirmAnswer(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	h.notifier.Resolve(chatID, update.CallbackQuery.Data == telegram.CallbackConfirmYes)
}
