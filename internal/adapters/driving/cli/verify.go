package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the mounted device fingerprint without copying",
	Long: `Mounts the watch (tolerating an already-active mount), checks the
marker files that identify the expected device, and unmounts. Nothing
is copied.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.Println("Verifying device...")

	if err := syncOrchestrator.Verify(ctx); err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	cmd.Printf("%s device fingerprint matches\n", color.GreenString("✓"))
	return nil
}
