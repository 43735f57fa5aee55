package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xvierd/podium/internal/domain"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		stats, err := practiceSvc.GetStats(ctx)
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		if jsonOutput {
			payload := map[string]interface{}{
				"runs":           stats.Runs,
				"completed":      stats.Completed,
				"total_practice": stats.TotalPractice.String(),
				"runs_by_type":   stats.RunsByType,
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		}

		if stats.Runs == 0 {
			fmt.Println("No recorded runs yet. Start one with \"podium start\".")
			return nil
		}

		fmt.Println("🎤 Practice Stats")
		fmt.Printf("   Runs: %d (%d ran to the end)\n", stats.Runs, stats.Completed)
		fmt.Printf("   Total practice time: %s\n", stats.TotalPractice)
		for _, speechType := range domain.SpeechTypes() {
			if count := stats.RunsByType[speechType]; count > 0 {
				fmt.Printf("   %s: %d\n", domain.GetSpeechTypeLabel(speechType), count)
			}
		}
		return nil
	},
}
