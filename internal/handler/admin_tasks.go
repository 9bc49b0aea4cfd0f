package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/api"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/mn-works/earnbot/internal/service"
	"github.com/mn-works/earnbot/internal/telegram"
)

func (h *Handler) handleAdminTasks(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	h.sendAdminTasks(ctx, chatIDOf(update))
}

func (h *Handler) sendAdminTasks(ctx context.Context, chatID int64) {
	if chatID == 0 {
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	tasks, err := h.api.AdminTasks(ctx, token)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load tasks."))
		return
	}

	text := "✅ *Task Management*\n\n"
	var rows [][]models.InlineKeyboardButton
	for _, task := range tasks {
		state := "🟢"
		if !task.IsActive {
			state = "🔴"
		}
		d := task.Type.Display()
		text += fmt.Sprintf("%s %s *%s* (%ds)\n", state, d.Emoji, task.Title, task.Duration)
		rows = append(rows, telegram.ButtonRow(
			telegram.InlineButton("✏️", "adm_task_edit_"+task.ID),
			telegram.InlineButton("⏯", "adm_task_tgl_"+task.ID),
			telegram.InlineButton("🗑", "adm_task_del_"+task.ID),
		))
	}
	if len(tasks) == 0 {
		text += "No tasks yet."
	}

	rows = append(rows,
		telegram.ButtonRow(
			telegram.InlineButton("➕ New Task", "adm_task_new"),
			telegram.InlineButton("📥 Import", "adm_task_imp"),
		),
		telegram.ButtonRow(telegram.InlineButton("⬅️ Back", "admin")),
	)

	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(rows...))
}

func (h *Handler) handleAdminTaskNew(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	h.flows.Begin(chatID, service.FlowTaskCreate)
	_ = telegram.SendLongMessage(ctx, h.bot, chatID, "➕ *New Task*\n\n✏️ Send the task title:", nil)
}

func (h *Handler) handleAdminTaskEdit(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	taskID := strings.TrimPrefix(update.CallbackQuery.Data, "adm_task_edit_")
	if chatID == 0 || taskID == "" {
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	tasks, err := h.api.AdminTasks(ctx, token)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not load the task."))
		return
	}
	var task *domain.Task
	for i := range tasks {
		if tasks[i].ID == taskID {
			task = &tasks[i]
			break
		}
	}
	if task == nil {
		h.notifier.Warning(ctx, chatID, "That task no longer exists.")
		return
	}

	flow := h.flows.Begin(chatID, service.FlowTaskEdit)
	flow.Task = task
	_ = telegram.SendLongMessage(ctx, h.bot, chatID,
		fmt.Sprintf("✏️ *Edit Task*\n\nCurrent title: _%s_\n\nSend the new title:", task.Title), nil)
}

// handleAdminTaskText advances the create/edit dialog through its text steps.
// The type step is answered with the inline keyboard instead.
func (h *Handler) handleAdminTaskText(ctx context.Context, chatID int64, flow *service.Flow, text string) {
	text = strings.TrimSpace(text)

	switch flow.Step {
	case 0:
		_ = h.flows.Advance(chatID, flow.Kind, func(f *service.Flow) {
			f.Data["title"] = text
		})
		_ = telegram.SendLongMessage(ctx, h.bot, chatID, "📝 Send the task description:", nil)
	case 1:
		_ = h.flows.Advance(chatID, flow.Kind, func(f *service.Flow) {
			f.Data["description"] = text
		})
		var row []models.InlineKeyboardButton
		for _, t := range domain.AllTaskTypes {
			d := t.Display()
			row = append(row, telegram.InlineButton(d.Emoji+" "+d.Label, "tasktype_"+string(t)))
		}
		_ = telegram.SendLongMessage(ctx, h.bot, chatID, "🏷 Pick the task type:",
			telegram.InlineKeyboard(telegram.ButtonRow(row[0], row[1]),
				telegram.ButtonRow(row[2], row[3]), telegram.ButtonRow(row[4])))
	case 2:
		h.notifier.Warning(ctx, chatID, "Use the buttons above to pick the type.")
	case 3:
		_ = h.flows.Advance(chatID, flow.Kind, func(f *service.Flow) {
			if text != "-" {
				f.Data["url"] = text
			}
		})
		_ = telegram.SendLongMessage(ctx, h.bot, chatID, "⏱ Send the duration in seconds:", nil)
	case 4:
		duration, err := strconv.Atoi(text)
		if err != nil || duration <= 0 {
			h.notifier.Warning(ctx, chatID, "Send the duration as a number of seconds, e.g. 30.")
			return
		}
		_ = h.flows.Advance(chatID, flow.Kind, func(f *service.Flow) {
			f.Data["duration"] = text
		})
		h.finishTaskFlow(ctx, chatID, duration)
	}
}

// handleAdminTaskType answers the type step of the create/edit dialog.
func (h *Handler) handleAdminTaskType(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	taskType := strings.TrimPrefix(update.CallbackQuery.Data, "tasktype_")
	if chatID == 0 {
		return
	}

	flow := h.flows.Active(chatID)
	if flow == nil || (flow.Kind != service.FlowTaskCreate && flow.Kind != service.FlowTaskEdit) || flow.Step != 2 {
		return
	}
	_ = h.flows.Advance(chatID, flow.Kind, func(f *service.Flow) {
		f.Data["type"] = taskType
	})
	_ = telegram.SendLongMessage(ctx, h.bot, chatID, "🔗 Send the task URL, or `-` for none:", nil)
}

func (h *Handler) finishTaskFlow(ctx context.Context, chatID int64, duration int) {
	flow := h.flows.Active(chatID)
	if flow == nil {
		return
	}
	input := api.TaskInput{
		Title:       flow.Data["title"],
		Description: flow.Data["description"],
		Type:        domain.TaskType(flow.Data["type"]),
		URL:         flow.Data["url"],
		Duration:    duration,
		IsActive:    true,
	}
	editing := flow.Kind == service.FlowTaskEdit
	var taskID string
	if editing && flow.Task != nil {
		taskID = flow.Task.ID
		input.IsActive = flow.Task.IsActive
	}
	h.flows.End(chatID)

	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}

	var err error
	if editing {
		_, err = h.api.UpdateTask(ctx, token, taskID, input)
	} else {
		_, err = h.api.CreateTask(ctx, token, input)
	}
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not save the task."))
		return
	}
	h.notifier.Success(ctx, chatID, "Task saved.")
	h.sendAdminTasks(ctx, chatID)
}

func (h *Handler) handleAdminTaskToggle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	taskID := strings.TrimPrefix(update.CallbackQuery.Data, "adm_task_tgl_")
	if chatID == 0 || taskID == "" {
		return
	}
	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}
	if err := h.api.ToggleTask(ctx, token, taskID); err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not toggle the task."))
		return
	}
	h.sendAdminTasks(ctx, chatID)
}

func (h *Handler) handleAdminTaskDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	taskID := strings.TrimPrefix(update.CallbackQuery.Data, "adm_task_del_")
	if chatID == 0 || taskID == "" {
		return
	}

	ok := h.notifier.Confirm(ctx, chatID,
		"⚠️ Delete this task permanently? Completed runs keep their rewards.",
		telegram.ConfirmOptions{ConfirmText: "Delete", Danger: true})
	if !ok {
		return
	}

	token, tokenOK := h.token(ctx, chatID)
	if !tokenOK {
		return
	}
	if err := h.api.DeleteTask(ctx, token, taskID); err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Could not delete the task."))
		return
	}
	h.notifier.Success(ctx, chatID, "Task deleted.")
	h.sendAdminTasks(ctx, chatID)
}

func (h *Handler) handleAdminTaskImport(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	h.flows.Begin(chatID, service.FlowTaskImport)
	_ = telegram.SendLongMessage(ctx, h.bot, chatID,
		"📥 *Bulk Import*\n\nSend an *.xlsx* or *.xls* file with columns:\n"+
			"`title | description | type | url | duration`", nil)
}

// handleAdminImportDocument runs the upload once the spreadsheet arrives.
func (h *Handler) handleAdminImportDocument(ctx context.Context, chatID int64, doc *models.Document) {
	if !api.ValidImportFilename(doc.FileName) {
		h.notifier.Error(ctx, chatID, "The file must be .xlsx or .xls.")
		return
	}

	data, _, err := telegram.DownloadFile(ctx, h.bot, doc.FileID)
	if err != nil {
		h.notifier.Error(ctx, chatID, "Could not read the file. Please send it again.")
		return
	}
	h.flows.End(chatID)

	token, ok := h.token(ctx, chatID)
	if !ok {
		return
	}
	result, err := h.api.ImportTasks(ctx, token, doc.FileName, data)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Import failed."))
		return
	}

	text := fmt.Sprintf("📥 *Import finished*\n\n✅ Imported: %d\n❌ Failed: %d\n",
		result.Imported, result.Failed)
	for _, e := range result.Errors {
		text += fmt.Sprintf("▫️ %s\n", e)
	}
	_ = telegram.SendLongMessage(ctx, h.bot, chatID, text, telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.InlineButton("⬅️ Back to tasks", "adm_tasks")),
	))
}
