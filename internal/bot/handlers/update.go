package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/tech-breaks/internal/bot/state"
	"github.com/vladimiradmaev/tech-breaks/internal/logger"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api Sender, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	checkin := NewCheckin(api, deps, stateManager)
	return &UpdateHandler{
		callbackHandler: NewCallbackHandler(api, checkin),
		commandHandler:  NewCommandHandler(api, checkin),
		textHandler:     NewTextHandler(api, checkin),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		logger.Debug("Received callback", "data", update.CallbackQuery.Data)
		return h.callbackHandler.Handle(ctx, update.CallbackQuery)
	}

	message := update.Message
	if message == nil {
		return nil
	}

	if message.IsCommand() {
		return h.commandHandler.Handle(ctx, message)
	}

	if message.Text != "" {
		return h.textHandler.Handle(ctx, message)
	}

	return nil
}
