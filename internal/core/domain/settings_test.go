package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings("/home/runner")

	assert.Equal(t, filepath.Join("/home/runner", "garmin", "activity"), settings.LocalDir)
	assert.Equal(t, filepath.Join("/home/runner", "mnt", "garmin"), settings.MountDir)
	assert.Equal(t, DefaultMountTool, settings.MountTool)
	assert.Equal(t, DefaultUnmountTool, settings.UnmountTool)
	assert.Equal(t, DefaultMirrorTool, settings.MirrorTool)
	assert.Equal(t, DefaultParserTool, settings.ParserTool)
	require.NoError(t, settings.Validate())
}

func TestSettings_Validate(t *testing.T) {
	valid := DefaultSettings("/home/runner")

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{
			name:   "valid defaults",
			mutate: func(*Settings) {},
		},
		{
			name:    "missing local dir",
			mutate:  func(s *Settings) { s.LocalDir = "" },
			wantErr: true,
		},
		{
			name:    "missing mount dir",
			mutate:  func(s *Settings) { s.MountDir = "  " },
			wantErr: true,
		},
		{
			name:    "local equals mount",
			mutate:  func(s *Settings) { s.LocalDir = s.MountDir },
			wantErr: true,
		},
		{
			name:    "missing mount tool",
			mutate:  func(s *Settings) { s.MountTool = "" },
			wantErr: true,
		},
		{
			name:    "missing mirror tool",
			mutate:  func(s *Settings) { s.MirrorTool = "" },
			wantErr: true,
		},
		{
			name:    "no marker files",
			mutate:  func(s *Settings) { s.Device.MarkerFiles = nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			s.Device.MarkerFiles = append([]string(nil), valid.Device.MarkerFiles...)
			tt.mutate(&s)

			err := s.Validate()

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSettings_RemoteDir(t *testing.T) {
	settings := DefaultSettings("/home/runner")

	assert.Equal(t,
		filepath.Join("/home/runner", "mnt", "garmin", "GARMIN", "Activity"),
		settings.RemoteDir())
}

func TestExpandHome(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"tilde slash", "~/garmin", "/home/runner/garmin"},
		{"bare tilde", "~", "/home/runner"},
		{"absolute untouched", "/data/fit", "/data/fit"},
		{"relative untouched", "garmin/activity", "garmin/activity"},
		{"tilde mid-path untouched", "/data/~/fit", "/data/~/fit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.path, "/home/runner"))
		})
	}
}
