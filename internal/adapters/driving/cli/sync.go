package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/garmtools/garsync/internal/core/domain"
	"github.com/garmtools/garsync/internal/core/ports/driving"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mount the watch and mirror activity files",
	Long: `Runs the full pipeline: mount over MTP, verify the device
fingerprint, mirror the activity subtree into the local directory,
then unmount. The mount point is released on every exit path.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.Println("Syncing watch...")

	run, err := syncWithProgress(ctx, cmd, syncOrchestrator)
	if err != nil {
		if run != nil && run.Status == domain.SyncStatusFingerprintMismatch {
			return fmt.Errorf("mounted filesystem is not the expected device: %w", err)
		}
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Printf("%s %d files, %d bytes in %s\n",
		color.GreenString("✓ Sync complete:"),
		run.Stats.FilesTransferred,
		run.Stats.BytesTransferred,
		run.Duration().Round(time.Millisecond))

	if run.UnmountWarning != "" {
		cmd.Printf("%s %s\n", color.YellowString("Warning:"), run.UnmountWarning)
	}

	return nil
}

// syncWithProgress runs the sync while reporting stage transitions.
func syncWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	orch driving.SyncOrchestrator,
) (*domain.SyncRun, error) {
	type result struct {
		run *domain.SyncRun
		err error
	}
	resCh := make(chan result, 1)
	go func() {
		run, err := orch.Sync(ctx)
		resCh <- result{run: run, err: err}
	}()

	// Poll the pipeline stage every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastStage := ""
	for {
		select {
		case res := <-resCh:
			return res.run, res.err
		case <-ticker.C:
			// Best effort - a status error is not worth interrupting for
			status, err := orch.Status(ctx)
			if err == nil && status.Running && status.Stage != lastStage {
				cmd.Printf("  %s...\n", status.Stage)
				lastStage = status.Stage
			}
		}
	}
}
