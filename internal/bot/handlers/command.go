package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/tech-breaks/internal/bot/menus"
	"github.com/vladimiradmaev/tech-breaks/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api     Sender
	checkin *Checkin
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api Sender, checkin *Checkin) *CommandHandler {
	return &CommandHandler{
		api:     api,
		checkin: checkin,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	logger.Info("Handling command", "command", message.Command(), "chat_id", chatID)

	switch message.Command() {
	case "start":
		h.checkin.Reset(chatID)
		return menus.SendMainMenu(h.api, chatID)
	case "check":
		return h.checkin.Start(chatID)
	case "cancel":
		return h.checkin.Cancel(chatID)
	case "help":
		return menus.SendHelp(h.api, chatID)
	default:
		return h.handleUnknownCommand(chatID)
	}
}

// handleUnknownCommand handles unknown commands
func (h *CommandHandler) handleUnknownCommand(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Unknown command. Use /help to see the available commands.")
	_, err := h.api.Send(msg)
	return err
}
