package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xvierd/podium/internal/domain"
)

var presetsDuration string

// presetsCmd represents the presets command
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Show timing presets per speech type",
	Long: `Show the default duration and the green/orange threshold preset for
each speech type. With --duration the rescaled thresholds for a custom
length are shown instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var customTotal int
		if presetsDuration != "" {
			clock, err := domain.ParseClock(presetsDuration)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			customTotal = clock.TotalSeconds()
		}

		type presetRow struct {
			Type     string `json:"type"`
			Duration string `json:"duration"`
			Green    string `json:"green_at"`
			Orange   string `json:"orange_at"`
		}

		var rows []presetRow
		for _, speechType := range domain.SpeechTypes() {
			total := timingConfig.DefaultClock(speechType).TotalSeconds()
			if customTotal > 0 {
				total = customTotal
			}
			thresholds := timingConfig.ThresholdsFor(speechType, total)
			rows = append(rows, presetRow{
				Type:     string(speechType),
				Duration: domain.ClockFromSeconds(total).String(),
				Green:    domain.ClockFromSeconds(thresholds.Green).String(),
				Orange:   domain.ClockFromSeconds(thresholds.Orange).String(),
			})
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tDURATION\tGREEN AT\tORANGE AT\tRED AT")
		for _, row := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t00:00\n", row.Type, row.Duration, row.Green, row.Orange)
		}
		return w.Flush()
	},
}

func init() {
	presetsCmd.Flags().StringVarP(&presetsDuration, "duration", "d", "", "Show rescaled thresholds for a custom duration (M:SS or minutes)")
}
