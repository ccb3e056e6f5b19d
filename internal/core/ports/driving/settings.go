package driving

import "github.com/garmtools/garsync/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, defaults applied.
	Get() (*domain.Settings, error)

	// Save persists settings.
	Save(settings *domain.Settings) error

	// SetPath updates a single setting by key
	// (local_dir, mount_dir, remote_subpath, marker_files, mount_tool,
	// unmount_tool, mirror_tool, parser_tool). marker_files takes a
	// comma-separated list. Unknown keys are rejected.
	SetPath(key, value string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
