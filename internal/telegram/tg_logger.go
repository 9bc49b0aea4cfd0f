package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/mn-works/earnbot/internal/config"
	"github.com/shopspring/decimal"
)

// TelegramLogger mirrors notable events into a log supergroup, one forum
// topic per event type. Disabled when LOG_TELEGRAM_CHAT_ID is unset. The bot
// is attached after construction since the logger is wired into middlewares
// that are themselves bot constructor options.
type TelegramLogger struct {
	bot *bot.Bot
	cfg *config.Config
}

func NewTelegramLogger(cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{cfg: cfg}
}

func (l *TelegramLogger) SetBot(b *bot.Bot) {
	l.bot = b
}

type LogType string

const (
	LogTypeError        LogType = "error"
	LogTypeRegistration LogType = "registration"
	LogTypePurchase     LogType = "purchase"
	LogTypeWithdrawal   LogType = "withdrawal"
)

func (l *TelegramLogger) Log(logType LogType, message string) {
	if l.bot == nil || l.cfg.LogTelegramChatID == 0 {
		return
	}

	topicID := l.getTopicID(logType)
	if topicID == 0 {
		return
	}

	// Truncate if too long
	if len([]rune(message)) > MaxMessageLen {
		message = string([]rune(message)[:MaxMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := l.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            message,
		ParseMode:       "Markdown",
		MessageThreadID: topicID,
	})
	if err != nil {
		slog.Error("failed to send telegram log", "type", logType, "error", err)
	}
}

func (l *TelegramLogger) LogError(err error, where string) {
	msg := fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* `%s`\n*Time:* %s",
		where, err.Error(), time.Now().Format("2006-01-02 15:04:05"))
	l.Log(LogTypeError, msg)
}

func (l *TelegramLogger) LogRegistration(telegramID int64, username, email, referralCode string) {
	msg := fmt.Sprintf("👤 *New Registration*\n\n*Telegram ID:* `%d`\n*Username:* %s\n*Email:* %s",
		telegramID, username, email)
	if referralCode != "" {
		msg += fmt.Sprintf("\n*Referred by:* `%s`", referralCode)
	}
	l.Log(LogTypeRegistration, msg)
}

func (l *TelegramLogger) LogPurchase(telegramID int64, packageName string, price decimal.Decimal, method string) {
	msg := fmt.Sprintf("📦 *Package Purchase*\n\n*Telegram ID:* `%d`\n*Package:* %s\n*Price:* ₨%s\n*Method:* %s",
		telegramID, packageName, price.StringFixed(0), method)
	l.Log(LogTypePurchase, msg)
}

func (l *TelegramLogger) LogWithdrawal(telegramID int64, amount decimal.Decimal, method string) {
	msg := fmt.Sprintf("💸 *Withdrawal Request*\n\n*Telegram ID:* `%d`\n*Amount:* ₨%s\n*Method:* %s",
		telegramID, amount.StringFixed(0), method)
	l.Log(LogTypeWithdrawal, msg)
}

func (l *TelegramLogger) LogWithdrawalDecision(adminChatID int64, withdrawalID string, status, remarks string) {
	msg := fmt.Sprintf("🧑‍⚖️ *Withdrawal Decision*\n\n*Admin:* `%d`\n*Withdrawal:* `%s`\n*Status:* %s",
		adminChatID, withdrawalID, status)
	if remarks != "" {
		msg += fmt.Sprintf("\n*Remarks:* %s", remarks)
	}
	l.Log(LogTypeWithdrawal, msg)
}

func (l *TelegramLogger) LogPackageApproval(adminChatID int64, userID, packageID string) {
	msg := fmt.Sprintf("🧑‍⚖️ *Package Approved*\n\n*Admin:* `%d`\n*User:* `%s`\n*Package:* `%s`",
		adminChatID, userID, packageID)
	l.Log(LogTypePurchase, msg)
}

func (l *TelegramLogger) getTopicID(logType LogType) int {
	switch logType {
	case LogTypeError:
		return l.cfg.LogTopicError
	case LogTypeRegistration:
		return l.cfg.LogTopicRegistration
	case LogTypePurchase:
		return l.cfg.LogTopicPurchase
	case LogTypeWithdrawal:
		return l.cfg.LogTopicWithdrawal
	default:
		return 0
	}
}
