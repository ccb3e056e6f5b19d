package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sync runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10,
		"maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runs, err := syncOrchestrator.History(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No sync runs recorded.")
		return nil
	}

	for _, run := range runs {
		line := fmt.Sprintf("%s  %-21s %4d files %10d bytes  %s",
			run.StartedAt.Format(time.DateTime),
			run.Status,
			run.Stats.FilesTransferred,
			run.Stats.BytesTransferred,
			run.Duration().Round(time.Millisecond))
		cmd.Println(line)
		if run.Message != "" {
			cmd.Printf("    %s\n", run.Message)
		}
		if run.UnmountWarning != "" {
			cmd.Printf("    unmount warning: %s\n", run.UnmountWarning)
		}
	}
	return nil
}
