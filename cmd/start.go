package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/podium/internal/domain"
)

var (
	startDuration string
	startTitle    string
	startBlind    bool
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start [speech-type]",
	Short: "Start a speech timer",
	Long: `Start the countdown for a speech type: prepared, impromptu or
evaluative. With --duration the timer uses a custom length and the
green/orange thresholds are rescaled to it.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"prepared", "impromptu", "evaluative"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		speechType := domain.SpeechPrepared
		if len(args) > 0 {
			parsed, err := domain.ParseSpeechType(args[0])
			if err != nil {
				return err
			}
			speechType = parsed
		}

		var override *domain.Clock
		if startDuration != "" {
			clock, err := domain.ParseClock(startDuration)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			override = &clock
		}

		return launchRun(ctx, speechType, override, startTitle, startBlind, true)
	},
}

func init() {
	startCmd.Flags().StringVarP(&startDuration, "duration", "d", "", "Custom duration as M:SS or minutes (e.g. 5:30 or 5)")
	startCmd.Flags().StringVarP(&startTitle, "title", "t", "", "Speech title for the history record")
	startCmd.Flags().BoolVar(&startBlind, "blind", false, "Hide the countdown; only the color cue is shown")
}
