package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/tech-breaks/internal/bot/keyboards"
	"github.com/vladimiradmaev/tech-breaks/internal/bot/menus"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	api     Sender
	checkin *Checkin
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api Sender, checkin *Checkin) *CallbackHandler {
	return &CallbackHandler{
		api:     api,
		checkin: checkin,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	// Answer the callback query first to stop the client spinner
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		return err
	}

	if query.Message == nil {
		return nil
	}
	chatID := query.Message.Chat.ID

	switch data := query.Data; {
	case data == keyboards.CallbackCheck:
		return h.checkin.Start(chatID)
	case data == keyboards.CallbackSkip:
		return h.checkin.Skip(ctx, chatID)
	case data == keyboards.CallbackCancel:
		return h.checkin.Cancel(chatID)
	case data == keyboards.CallbackHelp:
		return menus.SendHelp(h.api, chatID)
	case data == keyboards.CallbackMainMenu:
		h.checkin.Reset(chatID)
		return menus.SendMainMenu(h.api, chatID)
	case strings.HasPrefix(data, keyboards.CallbackMood):
		return h.checkin.AnswerMood(ctx, chatID, strings.TrimPrefix(data, keyboards.CallbackMood))
	default:
		return h.handleUnknownCallback(chatID)
	}
}

// handleUnknownCallback handles unknown callbacks
func (h *CallbackHandler) handleUnknownCallback(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Unknown action")
	_, err := h.api.Send(msg)
	return err
}
