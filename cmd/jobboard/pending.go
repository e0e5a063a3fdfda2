package main

import (
	"fmt"
	"time"

	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/observability"
	"github.com/spf13/cobra"
)

var pendingOlderThan time.Duration

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List listings still waiting for payment",
	Long: `List jobs that were submitted but never paid for. Abandoned checkouts leave
these behind. The report is read-only; nothing is expired or deleted.`,
	Args: cobra.NoArgs,
	RunE: runPending,
}

func init() {
	pendingCmd.Flags().DurationVar(&pendingOlderThan, "older-than", 24*time.Hour, "Only report listings created at least this long ago")
	rootCmd.AddCommand(pendingCmd)
}

func runPending(cmd *cobra.Command, _ []string) error {
	if pendingOlderThan < 0 {
		return fmt.Errorf("--older-than must not be negative, got %s", pendingOlderThan)
	}
	url, err := loadDatabaseURL()
	if err != nil {
		return err
	}

	store, err := db.Connect(cmd.Context(), url)
	if err != nil {
		return err
	}
	defer store.Close()

	now := time.Now()
	jobs, err := store.ListPendingJobsOlderThan(cmd.Context(), now.Add(-pendingOlderThan))
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintPendingJobs(jobs, pendingOlderThan, now)
	return nil
}
