package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vladimiradmaev/tech-breaks/internal/domain"
)

// scoreFlags maps CLI flags to payload fields
var scoreFlags = []struct {
	flag  string
	field string
	usage string
}{
	{"screen-time", domain.FieldScreenTime, "screen time today, minutes"},
	{"breaks", domain.FieldBreaks, "number of breaks taken"},
	{"last-break", domain.FieldLastBreak, "minutes since the last break"},
	{"mood", domain.FieldMood, "mood from 1 (worst) to 5 (best)"},
	{"sleep", domain.FieldSleep, "hours slept last night"},
}

var scoreCmd = newScoreCmd()

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score burnout risk once and print the result as JSON",
		Long:  "Score burnout risk once. Flags that are not given are left out of the payload so their defaults apply.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(os.Stderr)
			if err != nil {
				return err
			}

			cfg.MetricsEnabled = false
			predictor, _, err := newPredictionService(cfg)
			if err != nil {
				return err
			}

			result, err := predictor.Predict(cmd.Context(), scorePayload(cmd))
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	for _, f := range scoreFlags {
		cmd.Flags().Float64(f.flag, 0, f.usage)
	}
	return cmd
}

// scorePayload collects only the flags the user set
func scorePayload(cmd *cobra.Command) map[string]any {
	payload := make(map[string]any)
	for _, f := range scoreFlags {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		v, _ := cmd.Flags().GetFloat64(f.flag)
		payload[f.field] = v
	}
	return payload
}
