package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Check the environment configuration and print it with secrets masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "🔍 Checking configuration...")

		cfg, err := setup(cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("❌ configuration is invalid:\n%w", err)
		}

		fmt.Fprintln(out, "✅ Configuration is valid!")
		fmt.Fprintln(out, "📋 Details:")
		fmt.Fprintf(out, "  - HTTP Address: %s\n", cfg.HTTP.Address())
		fmt.Fprintf(out, "  - Scorer: %s\n", cfg.Scorer)
		fmt.Fprintf(out, "  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
		if cfg.Redis.Enabled() {
			fmt.Fprintf(out, "  - Redis: %s (db %d, password %s)\n", cfg.Redis.Addr(), cfg.Redis.DB, maskToken(cfg.Redis.Password))
		} else {
			fmt.Fprintln(out, "  - Redis: <disabled, in-memory dialog state>")
		}
		fmt.Fprintf(out, "  - Metrics: %t\n", cfg.MetricsEnabled)
		fmt.Fprintf(out, "  - Log Level: %s\n", cfg.Logger.Level)
		fmt.Fprintf(out, "  - Log Output: %s\n", cfg.Logger.OutputPath)
		fmt.Fprintf(out, "  - Log Format: %s\n", cfg.Logger.Format)
		return nil
	},
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
