package cmd

import (
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vladimiradmaev/tech-breaks/internal/bot/state"
	"github.com/vladimiradmaev/tech-breaks/internal/config"
	"github.com/vladimiradmaev/tech-breaks/internal/logger"
	"github.com/vladimiradmaev/tech-breaks/internal/metrics"
	"github.com/vladimiradmaev/tech-breaks/internal/services"
)

const serviceID = "tech-breaks"

var rootCmd = &cobra.Command{
	Use:          "tech-breaks",
	Short:        "Burnout risk service for people who work at a screen",
	Long:         "Tech Breaks scores burnout risk from screen time, breaks, mood and sleep, over HTTP or a Telegram check-in.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(validateConfigCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env and the configuration, then initializes the global
// logger. A nil logOut sends logs where LOG_OUTPUT points.
func setup(logOut io.Writer) (*config.Config, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logCfg := logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
		Service:    serviceID,
	}
	if logOut != nil {
		logger.InitWithWriter(logOut, logCfg)
	} else if err := logger.InitWithConfig(logCfg); err != nil {
		return nil, err
	}

	if envErr != nil {
		logger.Debug(".env file not loaded, using process environment", "error", envErr)
	}
	return cfg, nil
}

// newPredictionService builds the scorer and, when enabled, the metrics
// provider. The returned metrics may be nil.
func newPredictionService(cfg *config.Config) (*services.PredictionService, *metrics.Metrics, error) {
	scorer, err := services.NewScorer(cfg.Scorer)
	if err != nil {
		return nil, nil, err
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m, err = metrics.New(serviceID)
		if err != nil {
			return nil, nil, err
		}
	}
	return services.NewPredictionService(scorer, m), m, nil
}

// newStateManager picks Redis-backed dialog state when REDIS_HOST is set
func newStateManager(cfg *config.Config) (state.StateManager, func(), error) {
	if !cfg.Redis.Enabled() {
		logger.Info("Using in-memory dialog state")
		return state.NewManager(), func() {}, nil
	}

	rm, err := state.NewRedisManager(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Using Redis dialog state", "addr", cfg.Redis.Addr())
	return rm, func() { _ = rm.Close() }, nil
}
