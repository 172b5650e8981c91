package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/tech-breaks/internal/bot/keyboards"
	"github.com/vladimiradmaev/tech-breaks/internal/bot/menus"
	"github.com/vladimiradmaev/tech-breaks/internal/bot/state"
	"github.com/vladimiradmaev/tech-breaks/internal/domain"
	apperrors "github.com/vladimiradmaev/tech-breaks/internal/errors"
	"github.com/vladimiradmaev/tech-breaks/internal/logger"
	"github.com/vladimiradmaev/tech-breaks/internal/utils"
)

type checkinStep struct {
	state    string
	field    string
	prompt   string
	retry    string
	keyboard func() tgbotapi.InlineKeyboardMarkup
	parse    func(string) (float64, error)
}

var checkinSteps = []checkinStep{
	{
		state:    state.AwaitingScreenTime,
		field:    domain.FieldScreenTime,
		prompt:   "🖥 How much screen time have you had today?",
		retry:    "Please send a duration such as 90, 1:30 or 2h.",
		keyboard: keyboards.StepMenu,
		parse:    parseDuration,
	},
	{
		state:    state.AwaitingBreaks,
		field:    domain.FieldBreaks,
		prompt:   "☕ How many breaks have you taken?",
		retry:    "Please send a whole number, for example 2.",
		keyboard: keyboards.StepMenu,
		parse:    parseCount,
	},
	{
		state:    state.AwaitingLastBreak,
		field:    domain.FieldLastBreak,
		prompt:   "⏱ How long ago was your last break?",
		retry:    "Please send a duration such as 45, 1:10 or 2h.",
		keyboard: keyboards.StepMenu,
		parse:    parseDuration,
	},
	{
		state:    state.AwaitingMood,
		field:    domain.FieldMood,
		prompt:   "🙂 How is your mood, from 1 (awful) to 5 (great)?",
		retry:    "Please pick a number from 1 to 5.",
		keyboard: keyboards.MoodMenu,
		parse:    parseMood,
	},
	{
		state:    state.AwaitingSleep,
		field:    domain.FieldSleep,
		prompt:   "😴 How many hours did you sleep last night?",
		retry:    "Please send hours between 0 and 24, for example 6.5.",
		keyboard: keyboards.StepMenu,
		parse:    parseSleep,
	},
}

// stepIndex returns the position of a dialog state, or -1 outside a check-in
func stepIndex(st string) int {
	for i, s := range checkinSteps {
		if s.state == st {
			return i
		}
	}
	return -1
}

// Checkin drives the question-by-question burnout check-in. Dialog state is
// keyed by chat ID.
type Checkin struct {
	api          Sender
	deps         Dependencies
	stateManager state.StateManager
}

// NewCheckin creates a new check-in dialog
func NewCheckin(api Sender, deps Dependencies, stateManager state.StateManager) *Checkin {
	return &Checkin{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Active reports whether the chat is in the middle of a check-in
func (c *Checkin) Active(chatID int64) bool {
	return stepIndex(c.stateManager.GetUserState(chatID)) >= 0
}

// Start begins a fresh check-in, dropping any earlier answers
func (c *Checkin) Start(chatID int64) error {
	c.stateManager.ClearTempData(chatID)
	return c.ask(chatID, 0)
}

// Answer records a typed answer for the current step. Unparseable input
// repeats the question.
func (c *Checkin) Answer(ctx context.Context, chatID int64, text string) error {
	idx := stepIndex(c.stateManager.GetUserState(chatID))
	if idx < 0 {
		return c.sendNotActive(chatID)
	}

	step := checkinSteps[idx]
	value, err := step.parse(text)
	if err != nil {
		logger.Debug("Rejected check-in answer", "chat_id", chatID, "step", step.state, "error", err)
		msg := tgbotapi.NewMessage(chatID, step.retry)
		msg.ReplyMarkup = step.keyboard()
		_, err := c.api.Send(msg)
		return err
	}

	c.stateManager.SetTempData(chatID, step.field, value)
	return c.advance(ctx, chatID, idx)
}

// AnswerMood records a mood picked from the inline keyboard
func (c *Checkin) AnswerMood(ctx context.Context, chatID int64, score string) error {
	if c.stateManager.GetUserState(chatID) != state.AwaitingMood {
		return c.sendNotActive(chatID)
	}
	return c.Answer(ctx, chatID, score)
}

// Skip leaves the current field unanswered so the service default applies
func (c *Checkin) Skip(ctx context.Context, chatID int64) error {
	idx := stepIndex(c.stateManager.GetUserState(chatID))
	if idx < 0 {
		return c.sendNotActive(chatID)
	}
	return c.advance(ctx, chatID, idx)
}

// Cancel aborts the check-in
func (c *Checkin) Cancel(chatID int64) error {
	active := c.Active(chatID)
	c.Reset(chatID)

	text := "There is no check-in in progress."
	if active {
		text = "Check-in cancelled."
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := c.api.Send(msg)
	return err
}

// Reset drops the dialog step and collected answers
func (c *Checkin) Reset(chatID int64) {
	c.stateManager.ClearUserState(chatID)
	c.stateManager.ClearTempData(chatID)
}

func (c *Checkin) ask(chatID int64, idx int) error {
	step := checkinSteps[idx]
	c.stateManager.SetUserState(chatID, step.state)

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("%d/%d %s", idx+1, len(checkinSteps), step.prompt))
	msg.ReplyMarkup = step.keyboard()
	_, err := c.api.Send(msg)
	return err
}

func (c *Checkin) advance(ctx context.Context, chatID int64, idx int) error {
	if idx+1 < len(checkinSteps) {
		return c.ask(chatID, idx+1)
	}
	return c.finish(ctx, chatID)
}

func (c *Checkin) finish(ctx context.Context, chatID int64) error {
	defer c.Reset(chatID)

	payload := make(map[string]any)
	for k, v := range c.stateManager.GetAllTempData(chatID) {
		payload[k] = v
	}

	result, err := c.deps.Predictor.Predict(ctx, payload)
	if err != nil {
		logger.Warn("Check-in could not be scored", "chat_id", chatID, "error", err)
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("⚠️ %s\n\nSend /check to try again.", apperrors.PublicMessage(err)))
		msg.ReplyMarkup = keyboards.MainMenu()
		_, sendErr := c.api.Send(msg)
		return sendErr
	}

	logger.Info("Check-in completed", "chat_id", chatID, "risk_level", result.RiskLevel)
	return menus.SendResult(c.api, chatID, result)
}

func (c *Checkin) sendNotActive(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "This question is no longer active. Send /check to start a new check-in.")
	_, err := c.api.Send(msg)
	return err
}

func parseDuration(s string) (float64, error) {
	minutes, err := utils.ParseMinutes(s)
	if err != nil {
		return 0, err
	}
	return float64(minutes), nil
}

func parseCount(s string) (float64, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("count must not be negative")
	}
	return float64(n), nil
}

func parseMood(s string) (float64, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 5 {
		return 0, fmt.Errorf("mood must be an integer from 1 to 5")
	}
	return float64(n), nil
}

func parseSleep(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	hours, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q", s)
	}
	if !(hours >= 0 && hours <= 24) {
		return 0, fmt.Errorf("hours must be between 0 and 24")
	}
	return hours, nil
}
