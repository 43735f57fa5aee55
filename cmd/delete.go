package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/podium/internal/domain"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <record-id>",
	Short: "Delete a recorded run",
	Long: `Delete a practice run from history. The ID may be abbreviated to a
unique prefix, as shown by "podium history".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		record, err := resolveRecord(ctx, args[0])
		if err != nil {
			return err
		}

		if err := practiceSvc.DeleteRecord(ctx, record.ID); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}

		fmt.Printf("Deleted run %s (%s)\n", record.ID[:8], record.Type)
		return nil
	},
}

// resolveRecord finds the single record whose ID starts with the given
// prefix.
func resolveRecord(ctx context.Context, prefix string) (*domain.SpeechRecord, error) {
	records, err := practiceSvc.SearchHistory(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	var match *domain.SpeechRecord
	for _, record := range records {
		if strings.HasPrefix(record.ID, prefix) {
			if match != nil {
				return nil, fmt.Errorf("record ID %q is ambiguous", prefix)
			}
			match = record
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no record with ID %q", prefix)
	}
	return match, nil
}
