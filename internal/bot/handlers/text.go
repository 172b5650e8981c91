package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/tech-breaks/internal/bot/menus"
)

// TextHandler handles text messages
type TextHandler struct {
	api     Sender
	checkin *Checkin
}

// NewTextHandler creates a new text handler
func NewTextHandler(api Sender, checkin *Checkin) *TextHandler {
	return &TextHandler{
		api:     api,
		checkin: checkin,
	}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	if h.checkin.Active(chatID) {
		return h.checkin.Answer(ctx, chatID, message.Text)
	}
	return h.handleDefaultText(chatID)
}

// handleDefaultText handles text when no check-in is running
func (h *TextHandler) handleDefaultText(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Please use the menu to choose an action.")
	if _, err := h.api.Send(msg); err != nil {
		return err
	}
	return menus.SendMainMenu(h.api, chatID)
}
