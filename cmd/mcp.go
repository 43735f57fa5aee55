package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/podium/internal/adapters/mcp"
	"github.com/xvierd/podium/internal/countdown"
	"github.com/xvierd/podium/internal/domain"
)

var mcpSpeechType string

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI
assistants. The server drives a speech timer and exposes the practice
history over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		speechType, err := domain.ParseSpeechType(mcpSpeechType)
		if err != nil {
			return err
		}

		fmt.Println("🚀 Starting MCP server...")
		fmt.Println("   The server will communicate via stdio")
		fmt.Println("   Press Ctrl+C to stop")

		ctx := context.Background()

		controller := countdown.New(timingConfig, speechType)
		defer controller.Close()

		server := mcp.NewServer(controller, practiceSvc)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpSpeechType, "type", "prepared", "Initial speech type for the served timer")
}
