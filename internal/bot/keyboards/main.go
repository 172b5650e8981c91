package keyboards

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data shared by keyboards and the callback handler
const (
	CallbackCheck    = "check"
	CallbackHelp     = "help"
	CallbackMainMenu = "main_menu"
	CallbackSkip     = "skip"
	CallbackCancel   = "cancel"
	CallbackMood     = "mood_"
)

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Check burnout risk", CallbackCheck),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", CallbackHelp),
		),
	)
}

// StepMenu is attached to every check-in question
func StepMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(stepControls())
}

// MoodMenu offers one button per mood score plus the step controls
func MoodMenu() tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, 5)
	for score := 1; score <= 5; score++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d", score),
			fmt.Sprintf("%s%d", CallbackMood, score),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row, stepControls())
}

// ResultMenu is shown under an assessment
func ResultMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Check again", CallbackCheck),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", CallbackMainMenu),
		),
	)
}

func stepControls() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⏭ Skip", CallbackSkip),
		tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel", CallbackCancel),
	)
}
