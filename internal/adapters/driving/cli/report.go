package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garmtools/garsync/internal/adapters/driven/watch"
	"github.com/garmtools/garsync/internal/report"
)

var reportWatch bool

var reportCmd = &cobra.Command{
	Use:   "report {steps|pulse}",
	Short: "Feed synced FIT files to the external parser",
	Long: `Collects the FIT files under the local activity directory and pipes
the file list to the external parsing script in batch mode. Decoding
and plotting are entirely the script's job.

With --watch, the report re-runs whenever new FIT files land in the
local directory.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{report.KindSteps, report.KindPulse},
	RunE:      runReport,
}

func init() {
	reportCmd.Flags().BoolVarP(&reportWatch, "watch", "w", false,
		"re-run the report when new FIT files arrive")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if reporter == nil || settingsService == nil {
		return errors.New("report service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	kind := args[0]

	out, err := reporter.Run(ctx, kind, settings.LocalDir)
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}
	cmd.Print(out)

	if !reportWatch {
		return nil
	}

	watcher, err := watch.NewWatcher(settings.LocalDir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", settings.LocalDir, err)
	}
	defer watcher.Close()

	cmd.Printf("Watching %s for new FIT files...\n", settings.LocalDir)
	for {
		changed, err := watcher.Wait(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("watch %s: %w", settings.LocalDir, err)
		}
		if !changed {
			return nil
		}

		out, err := reporter.Run(ctx, kind, settings.LocalDir)
		if err != nil {
			return fmt.Errorf("report failed: %w", err)
		}
		cmd.Print(out)
	}
}
