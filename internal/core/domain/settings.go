package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Default tool names. Resolved via PATH unless overridden in settings.
const (
	DefaultMountTool   = "jmtpfs"
	DefaultUnmountTool = "fusermount"
	DefaultMirrorTool  = "rsync"
	DefaultParserTool  = "fitparse.py"
)

// Settings holds user-configurable paths and tool locations.
// All directory fields may be written with a leading "~/" in the config
// file; they are expanded against the user's home directory on load.
type Settings struct {
	// LocalDir is where activity files are mirrored to.
	LocalDir string

	// MountDir is where the watch is attached. Created if absent.
	MountDir string

	// Device is the expected identity and layout of the mounted watch.
	Device DeviceProfile

	// MountTool is the MTP mount command (jmtpfs).
	MountTool string

	// UnmountTool is the detach command (fusermount).
	UnmountTool string

	// MirrorTool is the copy command (rsync).
	MirrorTool string

	// ParserTool is the external FIT parsing script fed by the report
	// command. Decoding is entirely its job, not Garsync's.
	ParserTool string
}

// DefaultSettings returns settings with the conventional HOME-relative
// layout the parsing tooling expects.
func DefaultSettings(home string) Settings {
	return Settings{
		LocalDir:    filepath.Join(home, "garmin", "activity"),
		MountDir:    filepath.Join(home, "mnt", "garmin"),
		Device:      DefaultDeviceProfile(),
		MountTool:   DefaultMountTool,
		UnmountTool: DefaultUnmountTool,
		MirrorTool:  DefaultMirrorTool,
		ParserTool:  DefaultParserTool,
	}
}

// Validate checks the settings describe a runnable pipeline.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.LocalDir) == "" {
		return fmt.Errorf("%w: local dir is required", ErrInvalidInput)
	}
	if strings.TrimSpace(s.MountDir) == "" {
		return fmt.Errorf("%w: mount dir is required", ErrInvalidInput)
	}
	if s.LocalDir == s.MountDir {
		return fmt.Errorf("%w: local dir and mount dir must differ", ErrInvalidInput)
	}
	if strings.TrimSpace(s.MountTool) == "" || strings.TrimSpace(s.UnmountTool) == "" {
		return fmt.Errorf("%w: mount and unmount tools are required", ErrInvalidInput)
	}
	if strings.TrimSpace(s.MirrorTool) == "" {
		return fmt.Errorf("%w: mirror tool is required", ErrInvalidInput)
	}
	return s.Device.Validate()
}

// RemoteDir returns the absolute path of the subtree to mirror.
func (s *Settings) RemoteDir() string {
	return filepath.Join(s.MountDir, s.Device.RemoteSubpath)
}

// ExpandHome replaces a leading "~" or "~/" in path with home.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
