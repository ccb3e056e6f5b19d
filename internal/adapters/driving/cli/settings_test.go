package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/garmtools/garsync/internal/core/domain"
)

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings *domain.Settings
	getErr   error
	setKey   string
	setValue string
	setErr   error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.settings != nil {
		return m.settings, nil
	}
	defaults := domain.DefaultSettings("/home/tester")
	return &defaults, nil
}

func (m *mockSettingsService) Save(_ *domain.Settings) error {
	return nil
}

func (m *mockSettingsService) SetPath(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.setKey = key
	m.setValue = value
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings("/home/tester")
}

func setupSettingsTest(mock *mockSettingsService) func() {
	oldSettings := settingsService
	settingsService = mock
	return func() {
		settingsService = oldSettings
	}
}

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
}

func TestSettingsShowCmd_Use(t *testing.T) {
	assert.Equal(t, "show", settingsShowCmd.Use)
}

func TestSettingsSetCmd_Use(t *testing.T) {
	assert.Equal(t, "set <key> <value>", settingsSetCmd.Use)
}

func TestSettingsCmd_ShowsDefaults(t *testing.T) {
	cleanup := setupSettingsTest(&mockSettingsService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "/home/tester/garmin/activity")
	assert.Contains(t, output, "/home/tester/mnt/garmin")
	assert.Contains(t, output, "jmtpfs")
	assert.Contains(t, output, "fusermount")
	assert.Contains(t, output, "rsync")
	assert.Contains(t, output, "GARMIN/GarminDevice.xml")
}

func TestSettingsShowCmd_Executes(t *testing.T) {
	cleanup := setupSettingsTest(&mockSettingsService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "local_dir:")
	assert.Contains(t, buf.String(), "remote_subpath:")
}

func TestSettingsSetCmd_Executes(t *testing.T) {
	mock := &mockSettingsService{}
	cleanup := setupSettingsTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "set", "local_dir", "/data/activity"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "local_dir", mock.setKey)
	assert.Equal(t, "/data/activity", mock.setValue)
	assert.Contains(t, buf.String(), "Set local_dir = /data/activity")
}

func TestSettingsSetCmd_UnknownKey(t *testing.T) {
	cleanup := setupSettingsTest(&mockSettingsService{
		setErr: fmt.Errorf("%w: unknown setting key", domain.ErrInvalidInput),
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "set", "bogus", "value"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsSetCmd_RequiresTwoArgs(t *testing.T) {
	cleanup := setupSettingsTest(&mockSettingsService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "set", "local_dir"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestSettingsCmd_ServiceNotConfigured(t *testing.T) {
	oldSettings := settingsService
	settingsService = nil
	defer func() {
		settingsService = oldSettings
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
