package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mn-works/earnbot/internal/api"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/mn-works/earnbot/internal/service"
	"github.com/mn-works/earnbot/internal/telegram"
)

func (h *Handler) handleLoginStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	if h.sessions.IsAuthenticated(ctx, chatID) {
		h.notifier.Info(ctx, chatID, "You are already logged in.")
		return
	}

	h.flows.Begin(chatID, service.FlowLogin)
	_ = telegram.SendLongMessage(ctx, h.bot, chatID, "🔑 *Login*\n\n📧 Send your email address:", nil)
}

func (h *Handler) handleRegisterStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, update)
	chatID := chatIDOf(update)
	if chatID == 0 {
		return
	}
	if h.sessions.IsAuthenticated(ctx, chatID) {
		h.notifier.Info(ctx, chatID, "You are already logged in.")
		return
	}

	flow := h.flows.Begin(chatID, service.FlowRegister)
	if code := h.takePendingReferral(chatID); code != "" {
		flow.Data["referralCode"] = code
	}
	_ = telegram.SendLongMessage(ctx, h.bot, chatID, "📝 *Create Account*\n\n👤 Choose a username:", nil)
}

// handleLoginText advances the two-step login dialog.
func (h *Handler) handleLoginText(ctx context.Context, chatID int64, flow *service.Flow, text string) {
	switch flow.Step {
	case 0:
		err := h.flows.Advance(chatID, service.FlowLogin, func(f *service.Flow) {
			f.Data["email"] = strings.TrimSpace(text)
		})
		if err != nil {
			return
		}
		_ = telegram.SendLongMessage(ctx, h.bot, chatID, "🔒 Send your password:", nil)
	case 1:
		email := flow.Data["email"]
		h.flows.End(chatID)

		user, err := h.sessions.Login(ctx, chatID, email, text)
		if err != nil {
			h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Login failed. Check your email and password."))
			return
		}
		h.notifier.Success(ctx, chatID, fmt.Sprintf("Welcome back, %s!", user.Username))
		h.sendMenu(ctx, chatID, "")
	}
}

// handleRegisterText advances the registration dialog: username, email,
// phone, password, then the optional referral code.
func (h *Handler) handleRegisterText(ctx context.Context, chatID int64, flow *service.Flow, text string) {
	text = strings.TrimSpace(text)

	switch flow.Step {
	case 0:
		if len(text) < 3 {
			h.notifier.Warning(ctx, chatID, "Username must be at least 3 characters.")
			return
		}
		_ = h.flows.Advance(chatID, service.FlowRegister, func(f *service.Flow) {
			f.Data["username"] = text
		})
		_ = telegram.SendLongMessage(ctx, h.bot, chatID, "📧 Send your email address:", nil)
	case 1:
		if !strings.Contains(text, "@") {
			h.notifier.Warning(ctx, chatID, "That does not look like an email address.")
			return
		}
		_ = h.flows.Advance(chatID, service.FlowRegister, func(f *service.Flow) {
			f.Data["email"] = text
		})
		_ = telegram.SendLongMessage(ctx, h.bot, chatID, "📱 Send your phone number (03XXXXXXXXX):", nil)
	case 2:
		_ = h.flows.Advance(chatID, service.FlowRegister, func(f *service.Flow) {
			f.Data["phone"] = text
		})
		_ = telegram.SendLongMessage(ctx, h.bot, chatID, "🔒 Choose a password (minimum 6 characters):", nil)
	case 3:
		if len(text) < 6 {
			h.notifier.Warning(ctx, chatID, "Password must be at least 6 characters.")
			return
		}
		_ = h.flows.Advance(chatID, service.FlowRegister, func(f *service.Flow) {
			f.Data["password"] = text
		})
		if flow.Data["referralCode"] != "" {
			h.finishRegistration(ctx, chatID)
			return
		}
		_ = telegram.SendLongMessage(ctx, h.bot, chatID,
			"👥 Send a referral code, or `-` to skip:", nil)
	case 4:
		if text != "-" {
			_ = h.flows.Advance(chatID, service.FlowRegister, func(f *service.Flow) {
				f.Data["referralCode"] = text
			})
		}
		h.finishRegistration(ctx, chatID)
	}
}

func (h *Handler) finishRegistration(ctx context.Context, chatID int64) {
	flow := h.flows.Active(chatID)
	if flow == nil || flow.Kind != service.FlowRegister {
		return
	}
	req := api.RegisterRequest{
		Username:     flow.Data["username"],
		Email:        flow.Data["email"],
		Password:     flow.Data["password"],
		Phone:        flow.Data["phone"],
		ReferralCode: flow.Data["referralCode"],
	}
	h.flows.End(chatID)

	user, err := h.sessions.Register(ctx, chatID, req)
	if err != nil {
		h.notifier.Error(ctx, chatID, domain.ErrorMessage(err, "Registration failed. Please try again."))
		return
	}

	h.tgLogger.LogRegistration(chatID, user.Username, user.Email, req.ReferralCode)
	h.notifier.Success(ctx, chatID, fmt.Sprintf("Account created. Welcome, %s!", user.Username))
	h.sendMenu(ctx, chatID, "")
}
