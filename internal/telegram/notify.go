package telegram

import (
	"context"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Callback data the confirm keyboard emits; routed back via Resolve.
const (
	CallbackConfirmYes = "confirm_yes"
	CallbackConfirmNo  = "confirm_no"
)

// Toast lifetime before auto-dismissal.
const toastTTL = 5 * time.Second

// ConfirmOptions customize the confirm dialog.
type ConfirmOptions struct {
	ConfirmText string // default "✅ Confirm"
	CancelText  string // default "❌ Cancel"
	Danger      bool   // destructive action, confirm button gets a warning label
}

type pendingConfirm struct {
	messageID int // guarded by the notifier mutex, set once the dialog is sent
	result    chan bool
}

// Notifier sends transient status messages and blocking confirm dialogs. At
// most one confirm dialog is open per chat; opening a second resolves the
// first to false and replaces it.
type Notifier struct {
	bot *bot.Bot

	mu       sync.Mutex
	confirms map[int64]*pendingConfirm
}

func NewNotifier(b *bot.Bot) *Notifier {
	return &Notifier{bot: b, confirms: make(map[int64]*pendingConfirm)}
}

func (n *Notifier) Success(ctx context.Context, chatID int64, text string) {
	n.toast(ctx, chatID, "✅ "+text)
}

func (n *Notifier) Error(ctx context.Context, chatID int64, text string) {
	// Errors stay on screen
	_, _ = n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "❌ " + text,
	})
}

func (n *Notifier) Info(ctx context.Context, chatID int64, text string) {
	n.toast(ctx, chatID, "ℹ️ "+text)
}

func (n *Notifier) Warning(ctx context.Context, chatID int64, text string) {
	n.toast(ctx, chatID, "⚠️ "+text)
}

// toast sends a short-lived message and removes it after toastTTL.
func (n *Notifier) toast(ctx context.Context, chatID int64, text string) {
	msg, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil || msg == nil {
		return
	}
	messageID := msg.ID
	time.AfterFunc(toastTTL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		DeleteMessage(ctx, n.bot, chatID, messageID)
	})
}

// Confirm shows a yes/no dialog and blocks until the user answers, the
// context is done, or another confirm replaces this one. A replaced or
// cancelled dialog reports false.
func (n *Notifier) Confirm(ctx context.Context, chatID int64, text string, opts ConfirmOptions) bool {
	confirmText := opts.ConfirmText
	if confirmText == "" {
		confirmText = "✅ Confirm"
	}
	cancelText := opts.CancelText
	if cancelText == "" {
		cancelText = "❌ Cancel"
	}
	if opts.Danger {
		confirmText = "⚠️ " + confirmText
	}

	// Register before sending so a tap arriving while the send is still in
	// flight already has somewhere to land.
	pending := &pendingConfirm{result: make(chan bool, 1)}

	n.mu.Lock()
	var oldMessageID int
	if old, ok := n.confirms[chatID]; ok {
		select {
		case old.result <- false:
		default:
		}
		oldMessageID = old.messageID
	}
	n.confirms[chatID] = pending
	n.mu.Unlock()
	if oldMessageID != 0 {
		DeleteMessage(ctx, n.bot, chatID, oldMessageID)
	}

	msg, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
		ReplyMarkup: InlineKeyboard(
			ButtonRow(
				InlineButton(confirmText, CallbackConfirmYes),
				InlineButton(cancelText, CallbackConfirmNo),
			),
		),
	})
	if err != nil || msg == nil {
		n.closeDialog(ctx, chatID, pending)
		return false
	}
	n.mu.Lock()
	pending.messageID = msg.ID
	n.mu.Unlock()

	select {
	case ok := <-pending.result:
		n.closeDialog(ctx, chatID, pending)
		return ok
	case <-ctx.Done():
		n.closeDialog(context.Background(), chatID, pending)
		return false
	}
}

// Resolve answers the chat's open dialog. Called by the confirm callback
// handler; reports false when no dialog is waiting.
func (n *Notifier) Resolve(chatID int64, ok bool) bool {
	n.mu.Lock()
	pending, exists := n.confirms[chatID]
	n.mu.Unlock()
	if !exists {
		return false
	}
	select {
	case pending.result <- ok:
		return true
	default:
		return false
	}
}

func (n *Notifier) closeDialog(ctx context.Context, chatID int64, pending *pendingConfirm) {
	n.mu.Lock()
	if current, ok := n.confirms[chatID]; ok && current == pending {
		delete(n.confirms, chatID)
	}
	messageID := pending.messageID
	n.mu.Unlock()
	if messageID != 0 {
		DeleteMessage(ctx, n.bot, chatID, messageID)
	}
}
