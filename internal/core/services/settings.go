package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/garmtools/garsync/internal/core/domain"
	"github.com/garmtools/garsync/internal/core/ports/driven"
	"github.com/garmtools/garsync/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyLocalDir      = "sync.local_dir"
	keyMountDir      = "sync.mount_dir"
	keyRemoteSubpath = "device.remote_subpath"
	keyMarkerFiles   = "device.marker_files"
	keyMountTool     = "tools.mount"
	keyUnmountTool   = "tools.unmount"
	keyMirrorTool    = "tools.mirror"
	keyParserTool    = "tools.parser"
)

// settableKeys maps the CLI-facing key names onto config store keys.
var settableKeys = map[string]string{
	"local_dir":      keyLocalDir,
	"mount_dir":      keyMountDir,
	"remote_subpath": keyRemoteSubpath,
	"marker_files":   keyMarkerFiles,
	"mount_tool":     keyMountTool,
	"unmount_tool":   keyUnmountTool,
	"mirror_tool":    keyMirrorTool,
	"parser_tool":    keyParserTool,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	home        string
}

// NewSettingsService creates a new settings service.
// If home is empty, the current user's home directory is used.
func NewSettingsService(configStore driven.ConfigStore, home string) (*SettingsService, error) {
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		home = h
	}
	return &SettingsService{
		configStore: configStore,
		home:        home,
	}, nil
}

// Get retrieves current settings, defaults applied.
// Paths stored with a leading "~/" are expanded against the home directory.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings(s.home)

	settings := &domain.Settings{
		LocalDir: s.getPath(keyLocalDir, defaults.LocalDir),
		MountDir: s.getPath(keyMountDir, defaults.MountDir),
		Device: domain.DeviceProfile{
			MarkerFiles:   s.getStringSlice(keyMarkerFiles, defaults.Device.MarkerFiles),
			RemoteSubpath: s.getString(keyRemoteSubpath, defaults.Device.RemoteSubpath),
		},
		MountTool:   s.getString(keyMountTool, defaults.MountTool),
		UnmountTool: s.getString(keyUnmountTool, defaults.UnmountTool),
		MirrorTool:  s.getString(keyMirrorTool, defaults.MirrorTool),
		ParserTool:  s.getString(keyParserTool, defaults.ParserTool),
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	pairs := []struct {
		key   string
		value any
	}{
		{keyLocalDir, settings.LocalDir},
		{keyMountDir, settings.MountDir},
		{keyRemoteSubpath, settings.Device.RemoteSubpath},
		{keyMarkerFiles, settings.Device.MarkerFiles},
		{keyMountTool, settings.MountTool},
		{keyUnmountTool, settings.UnmountTool},
		{keyMirrorTool, settings.MirrorTool},
		{keyParserTool, settings.ParserTool},
	}
	for _, p := range pairs {
		if err := s.configStore.Set(p.key, p.value); err != nil {
			return fmt.Errorf("save %s: %w", p.key, err)
		}
	}
	return nil
}

// SetPath updates a single setting by key. marker_files takes a
// comma-separated list; every other key takes a single string.
func (s *SettingsService) SetPath(key, value string) error {
	storeKey, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: empty value for %q", domain.ErrInvalidInput, key)
	}

	var stored any = value
	if storeKey == keyMarkerFiles {
		markers := splitList(value)
		if len(markers) == 0 {
			return fmt.Errorf("%w: empty value for %q", domain.ErrInvalidInput, key)
		}
		stored = markers
	}

	if err := s.configStore.Set(storeKey, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings(s.home)
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getPath(key, fallback string) string {
	return domain.ExpandHome(s.getString(key, fallback), s.home)
}

func (s *SettingsService) getStringSlice(key string, fallback []string) []string {
	if v := s.configStore.GetStringSlice(key); len(v) > 0 {
		return v
	}
	return fallback
}
