package menus

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/tech-breaks/internal/bot/keyboards"
	"github.com/vladimiradmaev/tech-breaks/internal/domain"
)

// Sender is the part of the Telegram client the menus need
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

const mainMenuText = `🧘 *Tech Breaks* keeps an eye on your screen habits

Answer five quick questions and I will estimate your burnout risk:
• Screen time today
• Breaks taken
• Time since your last break
• Mood
• Sleep last night

Any question can be skipped.

Choose an action:`

const helpText = `Available commands:
/start - Show the main menu
/check - Start a burnout check-in
/cancel - Abort the current check-in
/help - Show this message

Durations can be typed as minutes ("90"), hours and minutes ("1:30") or with units ("2h", "1h15m").
Sleep is in hours, decimals allowed ("6.5").`

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, mainMenuText)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendHelp sends usage instructions
func SendHelp(api Sender, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, helpText)
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

var levelIcons = map[string]string{
	"low":    "🟢",
	"medium": "🟡",
	"high":   "🔴",
}

// FormatResult renders an assessment for chat
func FormatResult(result *domain.PredictionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Burnout risk: %s (%d/2)\n\n",
		levelIcons[result.RiskLevel], strings.ToUpper(result.RiskLevel), int(result.BurnoutRisk))
	b.WriteString("Recommendations:\n")
	for _, r := range result.Recommendations {
		fmt.Fprintf(&b, "• %s\n", r)
	}
	return strings.TrimRight(b.String(), "\n")
}

// SendResult sends an assessment with follow-up buttons
func SendResult(api Sender, chatID int64, result *domain.PredictionResult) error {
	msg := tgbotapi.NewMessage(chatID, FormatResult(result))
	msg.ReplyMarkup = keyboards.ResultMenu()
	_, err := api.Send(msg)
	return err
}
