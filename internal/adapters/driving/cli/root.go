// Package cli is the driving adapter exposing Garsync over a cobra CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/garmtools/garsync/internal/adapters/driven/config/file"
	"github.com/garmtools/garsync/internal/adapters/driven/device"
	"github.com/garmtools/garsync/internal/adapters/driven/mtp"
	"github.com/garmtools/garsync/internal/adapters/driven/rsync"
	"github.com/garmtools/garsync/internal/adapters/driven/storage/sqlite"
	"github.com/garmtools/garsync/internal/core/ports/driving"
	"github.com/garmtools/garsync/internal/core/services"
	"github.com/garmtools/garsync/internal/execwrap"
	"github.com/garmtools/garsync/internal/logger"
	"github.com/garmtools/garsync/internal/report"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired by initServices. Tests substitute mocks.
var (
	syncOrchestrator driving.SyncOrchestrator
	settingsService  driving.SettingsService
	reporter         *report.Reporter
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "garsync",
	Short: "Sync activity files from a Garmin watch",
	Long: `Garsync mounts a Garmin watch over MTP, verifies the device
fingerprint, mirrors activity files to a local directory, and unmounts.

The mirror is one-directional and additive: local files are never deleted,
partial transfers resume, and the mount point is always released when the
pipeline finishes - whatever the outcome.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging to stderr")
}

// Execute wires the adapters and runs the root command.
func Execute() {
	if err := initServices(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initServices builds the driven adapters and core services.
func initServices() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("init config store: %w", err)
	}

	settings, err := services.NewSettingsService(configStore, "")
	if err != nil {
		return fmt.Errorf("init settings service: %w", err)
	}
	settingsService = settings

	cfg, err := settings.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("init history store: %w", err)
	}

	runner := execwrap.NewCommandRunner()

	syncOrchestrator = services.NewSyncOrchestrator(
		settings,
		mtp.NewMounter(runner, cfg.MountTool, cfg.UnmountTool),
		rsync.NewMirror(runner, cfg.MirrorTool),
		device.NewVerifier(),
		store.SyncHistoryStore(),
	)

	reporter = report.NewReporter(runner, cfg.ParserTool)

	return nil
}
