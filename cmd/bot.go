package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vladimiradmaev/tech-breaks/internal/bot"
	"github.com/vladimiradmaev/tech-breaks/internal/bot/handlers"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run only the Telegram check-in bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(nil)
		if err != nil {
			return err
		}
		if err := cfg.ValidateBot(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		predictor, m, err := newPredictionService(cfg)
		if err != nil {
			return fmt.Errorf("init prediction service: %w", err)
		}
		defer func() { _ = m.Shutdown(context.Background()) }()

		stateManager, closeState, err := newStateManager(cfg)
		if err != nil {
			return fmt.Errorf("init dialog state: %w", err)
		}
		defer closeState()

		telegramBot, err := bot.NewBot(cfg.TelegramToken, handlers.Dependencies{Predictor: predictor}, stateManager)
		if err != nil {
			return err
		}
		return telegramBot.Start(ctx)
	},
}
