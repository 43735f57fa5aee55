package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xvierd/podium/internal/domain"
)

var (
	historyDays   int
	historySearch string
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded practice runs",
	Long: `Show practice runs recorded by previous timer sessions, newest
first. Use --search for a fuzzy match on speech titles across the whole
history; --days limits the plain listing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var records []*domain.SpeechRecord
		var err error
		if historySearch != "" {
			records, err = practiceSvc.SearchHistory(ctx, historySearch)
		} else {
			records, err = practiceSvc.GetHistory(ctx, historyDays)
		}
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		if len(records) == 0 {
			fmt.Println("No recorded runs.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tTYPE\tTITLE\tPLANNED\tELAPSED\tSTATUS")
		for _, record := range records {
			status := "stopped"
			if record.Completed {
				status = "completed"
			}
			title := record.Title
			if title == "" {
				title = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				record.ID[:8],
				record.FinishedAt.Format("2006-01-02 15:04"),
				record.Type,
				title,
				record.Planned(),
				record.Elapsed(),
				status,
			)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyDays, "days", "n", 7, "How many days back to list")
	historyCmd.Flags().StringVarP(&historySearch, "search", "s", "", "Fuzzy search on speech titles")
}
