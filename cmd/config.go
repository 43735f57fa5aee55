package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/podium/internal/config"
	"github.com/xvierd/podium/internal/domain"
)

var configReset bool

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the current configuration",
	Long: `Show the active configuration and where it is loaded from. Timing,
notifications and theme colors can be edited in the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configReset {
			if err := config.Save(config.DefaultConfig()); err != nil {
				return fmt.Errorf("failed to reset config: %w", err)
			}
			fmt.Println("Configuration reset to defaults.")
			return nil
		}

		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n\n", path)
		fmt.Println("Timing:")
		for _, speechType := range domain.SpeechTypes() {
			clock := timingConfig.DefaultClock(speechType)
			thresholds := timingConfig.PresetThresholds(speechType)
			fmt.Printf("  %-10s %s (green %s, orange %s)\n",
				speechType, clock,
				domain.ClockFromSeconds(thresholds.Green),
				domain.ClockFromSeconds(thresholds.Orange))
		}

		fmt.Println("\nNotifications:")
		fmt.Printf("  enabled: %v\n", appConfig.Notifications.Enabled)
		fmt.Printf("  sound:   %v\n", appConfig.Notifications.Sound)

		fmt.Println("\nStorage:")
		fmt.Printf("  data dir: %s\n", appConfig.Storage.DataDir)
		fmt.Printf("  database: %s\n", dbPath)

		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configReset, "reset", false, "Reset the config file to defaults")
}
