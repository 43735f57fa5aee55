// Package cmd provides the CLI commands for the Podium application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/xvierd/podium/internal/adapters/notification"
	"github.com/xvierd/podium/internal/adapters/storage"
	"github.com/xvierd/podium/internal/adapters/tui"
	"github.com/xvierd/podium/internal/config"
	"github.com/xvierd/podium/internal/countdown"
	"github.com/xvierd/podium/internal/domain"
	"github.com/xvierd/podium/internal/ports"
	"github.com/xvierd/podium/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool
	inlineMode bool

	// Global dependencies
	storageAdapter ports.Storage
	practiceSvc    *services.PracticeService
	notifier       ports.Notifier
	appConfig      *config.Config
	timingConfig   domain.TimingConfig
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "podium",
	Short: "Podium - A speech practice timer with color-coded timing cues",
	Long: `Podium is a command-line countdown timer for speech practice.
It shows color-coded urgency cues (green, orange, red) at the timing
thresholds speakers train against, and keeps a history of your runs.

Run "podium" with no arguments to pick a speech type interactively.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runWizard,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.podium/podium.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&inlineMode, "inline", "i", false, "Compact inline timer (no fullscreen)")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Podium\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
}

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}
	timingConfig = appConfig.ToTimingConfig()

	// Initialize notifier
	notifier = notification.New(&appConfig.Notifications)

	// Determine database path
	if dbPath == "" {
		dbPath = config.GetDBPath(appConfig)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	storageAdapter, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	practiceSvc = services.NewPracticeService(storageAdapter)

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if storageAdapter != nil {
		return storageAdapter.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// runWizard implements the interactive flow for a bare "podium" command:
// pick a speech type, optionally name the speech, then run the timer.
func runWizard(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var items []tui.PickerItem
	for _, speechType := range domain.SpeechTypes() {
		clock := timingConfig.DefaultClock(speechType)
		thresholds := timingConfig.PresetThresholds(speechType)
		items = append(items, tui.PickerItem{
			Label: domain.GetSpeechTypeLabel(speechType),
			Desc:  fmt.Sprintf("%s · green at %s, orange at %s", clock, domain.ClockFromSeconds(thresholds.Green), domain.ClockFromSeconds(thresholds.Orange)),
		})
	}

	result := tui.RunPicker("Speech type:", items, appConfig.Theme)
	if result.Aborted {
		return nil
	}
	speechType := domain.SpeechTypes()[result.Index]

	titleResult := tui.RunTextPrompt("Speech title:", "Enter to skip", appConfig.Theme)
	if titleResult.Aborted {
		return nil
	}

	return launchRun(ctx, speechType, nil, titleResult.Value, false, false)
}

// launchRun wires up a countdown controller, runs the timer interface
// and records the last run when one ended.
func launchRun(ctx context.Context, speechType domain.SpeechType, override *domain.Clock, title string, blind, autoStart bool) error {
	ctx = setupSignalHandler()

	opts := []countdown.Option{
		countdown.WithHideCountdown(blind),
		countdown.WithOnComplete(func() {
			if err := notifier.NotifyTimeUp(speechType); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: notification failed: %v\n", err)
			}
		}),
		countdown.WithOnAlert(func(msg string) {
			_ = notifier.NotifyThreshold(msg)
		}),
	}
	if override != nil {
		opts = append(opts, countdown.WithOverride(*override))
	}

	controller := countdown.New(timingConfig, speechType, opts...)
	defer controller.Close()

	if autoStart {
		controller.Start()
	}

	var err error
	if inlineMode {
		err = tui.RunInline(controller, appConfig.Theme, title)
	} else {
		err = tui.Run(ctx, controller, appConfig.Theme, title)
	}
	if err != nil {
		return fmt.Errorf("timer error: %w", err)
	}

	// A run still in progress when the view closes counts as stopped.
	controller.Stop()

	if run, ok := controller.LastRun(); ok {
		record, err := practiceSvc.RecordRun(ctx, title, run)
		if err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
		status := "stopped early"
		if record.Completed {
			status = "completed"
		}
		fmt.Printf("🎤 Run recorded: %s of %s planned (%s)\n", record.Elapsed(), record.Planned(), status)
	}

	return nil
}
