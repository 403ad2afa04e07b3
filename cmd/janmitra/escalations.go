package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janmitra/janmitra/internal/storage/badger"
)

var escalationsLimit int

var escalationsCmd = &cobra.Command{
	Use:   "escalations",
	Short: "List interactions escalated for human review",
	RunE:  runEscalations,
}

func init() {
	escalationsCmd.Flags().IntVarP(&escalationsLimit, "limit", "n", 20, "Maximum records to print")
}

func runEscalations(cmd *cobra.Command, args []string) error {
	if config.Storage.EscalationPath == "" {
		return fmt.Errorf("no escalation path configured, set [storage] escalation_path")
	}

	store, err := badger.NewEscalationStore(config.Storage.EscalationPath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(escalationsLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No escalations recorded")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  %s  conf=%.2f  reason=%s", rec.CreatedAt.Format("2006-01-02 15:04"), rec.ID, rec.Confidence, rec.Reason)
		if rec.SafetyFlagged {
			fmt.Printf("  rule=%s", rec.SafetyRule)
		}
		fmt.Printf("\n  [%s] %s\n", rec.Locale, rec.Query)
	}
	return nil
}
