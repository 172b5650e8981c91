package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vladimiradmaev/tech-breaks/internal/api"
	"github.com/vladimiradmaev/tech-breaks/internal/bot"
	"github.com/vladimiradmaev/tech-breaks/internal/bot/handlers"
	"github.com/vladimiradmaev/tech-breaks/internal/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, plus the Telegram bot when a token is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(nil)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		predictor, m, err := newPredictionService(cfg)
		if err != nil {
			return fmt.Errorf("init prediction service: %w", err)
		}
		defer func() { _ = m.Shutdown(context.Background()) }()

		errCh := make(chan error, 2)

		if cfg.TelegramToken != "" {
			stateManager, closeState, err := newStateManager(cfg)
			if err != nil {
				return fmt.Errorf("init dialog state: %w", err)
			}
			defer closeState()

			telegramBot, err := bot.NewBot(cfg.TelegramToken, handlers.Dependencies{Predictor: predictor}, stateManager)
			if err != nil {
				return err
			}
			go func() { errCh <- telegramBot.Start(ctx) }()
		} else {
			logger.Info("TELEGRAM_BOT_TOKEN not set, Telegram bot disabled")
		}

		server := api.NewServer(cfg.HTTP.Address(), predictor, m, logger.GetLogger())
		go func() { errCh <- server.Start() }()

		var runErr error
		select {
		case <-ctx.Done():
			logger.Info("Shutdown signal received")
		case runErr = <-errCh:
			if runErr != nil {
				logger.Error("Component stopped", "error", runErr)
			}
		}
		stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		}
		return runErr
	},
}
