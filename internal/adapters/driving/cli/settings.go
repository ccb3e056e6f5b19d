package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the sync directories, device fingerprint and
external tool locations.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Set a single setting by key.

Available keys:
  local_dir      - where activity files are mirrored to
  mount_dir      - where the watch is attached
  remote_subpath - subtree to mirror, relative to the mount point
  marker_files   - comma-separated marker files identifying the device
  mount_tool     - MTP mount command (default jmtpfs)
  unmount_tool   - detach command (default fusermount)
  mirror_tool    - copy command (default rsync)
  parser_tool    - external FIT parsing script`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	cmd.Printf("local_dir:      %s\n", settings.LocalDir)
	cmd.Printf("mount_dir:      %s\n", settings.MountDir)
	cmd.Printf("remote_subpath: %s\n", settings.Device.RemoteSubpath)
	cmd.Printf("marker_files:   %s\n", strings.Join(settings.Device.MarkerFiles, ", "))
	cmd.Printf("mount_tool:     %s\n", settings.MountTool)
	cmd.Printf("unmount_tool:   %s\n", settings.UnmountTool)
	cmd.Printf("mirror_tool:    %s\n", settings.MirrorTool)
	cmd.Printf("parser_tool:    %s\n", settings.ParserTool)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.SetPath(key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
