package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the practice history",
	Long:  `Export all recorded runs as JSON or CSV, to stdout or a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var out io.Writer = os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer func() { _ = f.Close() }()
			out = f
		}

		var err error
		switch exportFormat {
		case "json":
			err = practiceSvc.ExportJSON(ctx, out)
		case "csv":
			err = practiceSvc.ExportCSV(ctx, out)
		default:
			return fmt.Errorf("unknown format %q (want json or csv)", exportFormat)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			fmt.Printf("Exported history to %s\n", exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json or csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
}
