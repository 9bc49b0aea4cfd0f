package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/api"
	"github.com/mn-works/earnbot/internal/config"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/mn-works/earnbot/internal/service"
	"github.com/mn-works/earnbot/internal/telegram"
)

func (h *Handler) handleTasks(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	user := h.user(ctx, chatID)
	if user != nil && user.PackageStatus != domain.PackageStatusActive {
		status := user.PackageStatus.Display()
		_ = telegram.SendLongMessage(ctx, h.bot, chatID,
			fmt.Sprintf("✅ *Tasks*\n\nYour package status is %s *%s*.\n"+
				"You need an active package to do tasks.", status.Emoji, status.Label),
			telegram.InlineKeyboard(
				telegram.ButtonRow(telegram.InlineButton("📦 Packages", "packages")),
				telegram.ButtonRow(telegram.InlineButton("🏠 Menu", "menu")),
			))
		return
	}

	available, err := h.api.AvailableTasks(ctx, token)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load your tasks."))
		return
	}

	text := fmt.Sprintf(
		"✅ *Today's Tasks*\n\n"+
			"Completed today: *%d/%d*\n"+
			"Remaining: *%d*\n"+
			"Reward per task: *₨%s*\n",
		available.TasksCompletedToday, available.TasksAllowed,
		available.TasksRemaining,
		available.RewardPerTask.StringFixed(0),
	)

	active := h.runner.Active(chatID)
	if active != nil {
		text += fmt.Sprintf("\n⏳ *%s* is in progress (%ds left). Finish it before starting another.\n",
			active.Task.Title, active.Remaining)
	}

	var rows [][]models.InlineKeyboardButton
	if available.TasksRemaining == 0 {
		text += "\n🎉 All done for today! Come back tomorrow."
	} else {
		for _, task := range available.Tasks {
			d := task.Type.Display()
			text += fmt.Sprintf("\n%s *%s* (%ds)\n   _%s_\n", d.Emoji, task.Title, task.Duration, task.Description)
		}
		rows = taskStartRows(available.Tasks, active != nil)
	}
	rows = append(rows,
		telegram.ButtonRow(telegram.InlineButton("🗂 My completions", "task_hist")),
		telegram.ButtonRow(telegram.InlineButton("🏠 Menu", "menu")))

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(rows...))
}

func (h *Handler) handleTaskHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	history, err := h.api.TaskHistory(ctx, token)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load your task history."))
		return
	}

	text := "🗂 *Task History*\n\n"
	if len(history) == 0 {
		text += "No completed tasks yet."
	}
	for _, ut := range history {
		if ut.Completed && ut.CompletedAt != nil {
			text += fmt.Sprintf("✅ %s\n", ut.CompletedAt.Format("2 Jan 2006 15:04"))
		} else {
			text += fmt.Sprintf("⏳ started %s, never finished\n", ut.StartedAt.Format("2 Jan 2006 15:04"))
		}
	}

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.InlineButton("✅ Tasks", "tasks")),
		telegram.ButtonRow(telegram.InlineButton("🏠 Menu", "menu")),
	))
}

func (h *Handler) handleTaskStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	taskID := strings.TrimPrefix(update.CallbackQuery.Data, "task_start_")
	if chatID == 0 || taskID == "" {
		return
	}
	if h.runner.Active(chatID) != nil {
		h.notifier.Warning(ctx, chatID, "Finish your current task first.")
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	available, err := h.api.AvailableTasks(ctx, token)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load the task."))
		return
	}
	var task *domain.Task
	for i := range available.Tasks {
		if available.Tasks[i].ID == taskID {
			task = &available.Tasks[i]
			break
		}
	}
	if task == nil {
		h.notifier.Warning(ctx, chatID, "That task is no longer available.")
		return
	}

	started, err := h.api.StartTask(ctx, token, taskID)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not start the task."))
		return
	}

	// Page title for plain-link tasks, so the user sees where it leads.
	linkTitle := ""
	if task.URL != "" && !service.IsYouTubeURL(task.URL) {
		pctx, cancel := context.WithTimeout(ctx, config.PreviewTimeout)
		if title, err := h.preview.Title(pctx, task.URL); err == nil {
			linkTitle = title
		}
		cancel()
	}

	msg, err := h.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        taskProgressText(task, linkTitle, task.Duration),
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: taskKeyboard(task),
	})
	if err != nil || msg == nil {
		return
	}
	messageID := msg.ID

	err = h.runner.Start(chatID, *task, started.UserTask, service.RunCallbacks{
		Tick: func(remaining int) {
			tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = telegram.EditLongMessage(tctx, h.bot, chatID, messageID,
				taskProgressText(task, linkTitle, remaining), taskKeyboard(task))
		},
		Complete: func() (*api.CompleteTaskResponse, error) {
			cctx, cancel := context.WithTimeout(context.Background(), config.RequestTimeout)
			defer cancel()
			return h.api.CompleteTask(cctx, token, started.UserTask.ID)
		},
		Done: func(resp *api.CompleteTaskResponse) {
			dctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			h.sessions.ApplyUserUpdate(chatID, func(u *domain.User) {
				u.Wallet.Balance = resp.NewBalance
				u.TasksCompleted++
			})

			_ = telegram.EditLongMessage(dctx, h.bot, chatID, messageID,
				fmt.Sprintf("🎉 *Task complete!*\n\n💰 +₨%s earned\n💼 New balance: *₨%s*",
					resp.Reward.StringFixed(0), resp.NewBalance.StringFixed(0)),
				telegram.InlineKeyboard(
					telegram.ButtonRow(telegram.InlineButton("✅ More tasks", "tasks")),
					telegram.ButtonRow(telegram.InlineButton("🏠 Menu", "menu")),
				))
		},
		Failed: func(err error) {
			fctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = telegram.EditLongMessage(fctx, h.bot, chatID, messageID,
				"⚠️ *Could not submit your task.*\n\n"+
					domain.ErrorMessage(err, "The server did not accept the completion.")+
					"\n\nYour progress is saved. Tap retry to submit again.",
				telegram.InlineKeyboard(
					telegram.ButtonRow(
						telegram.InlineButton("🔄 Retry", "task_retry"),
						telegram.InlineButton("✖️ Cancel", "task_cancel"),
					),
				))
		},
	})
	if err != nil {
		h.notifier.Warning(ctx, chatID, "Finish your current task first.")
	}
}

func (h *Handler) handleTaskRetry(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	if err := h.runner.Retry(chatID); err != nil {
		h.notifier.Warning(ctx, chatID, "There is nothing to retry.")
	}
}

func (h *Handler) handleTaskCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	h.runner.Cancel(chatID)
	h.notifier.Info(ctx, chatID, "Task cancelled.")
}

// taskStartRows builds one Start button per task. While a run is in progress
// no Start buttons are offered at all; the single active task per chat is
// enforced by the runner, the missing buttons just make it visible.
func taskStartRows(tasks []domain.Task, inProgress bool) [][]models.InlineKeyboardButton {
	if inProgress {
		return nil
	}
	var rows [][]models.InlineKeyboardButton
	for _, task := range tasks {
		rows = append(rows, telegram.ButtonRow(
			telegram.InlineButton(fmt.Sprintf("▶️ %s", task.Title), "task_start_"+task.ID),
		))
	}
	return rows
}

func taskProgressText(task *domain.Task, linkTitle string, remaining int) string {
	d := task.Type.Display()
	text := fmt.Sprintf("%s *%s*\n\n%s\n\n", d.Emoji, task.Title, task.Description)
	if task.URL != "" {
		if linkTitle != "" {
			text += fmt.Sprintf("🔗 _%s_\n", linkTitle)
		}
		text += "Open the link and keep it open until the timer runs out.\n\n"
	}
	if remaining > 0 {
		text += fmt.Sprintf("⏳ *%ds remaining...*", remaining)
	} else {
		text += "✔️ Submitting..."
	}
	return text
}

func taskKeyboard(task *domain.Task) models.ReplyMarkup {
	if task.URL == "" {
		return nil
	}
	label := "🔗 Open link"
	target := task.URL
	if service.IsYouTubeURL(task.URL) {
		label = "🎬 Watch video"
		target = service.EmbedURL(task.URL)
	}
	return telegram.InlineKeyboard(telegram.ButtonRow(telegram.URLButton(label, target)))
}
