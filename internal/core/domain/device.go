package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Default fingerprint markers for Garmin watches exposed over MTP.
// Both files sit at fixed relative paths under the mount point and together
// confirm the mounted filesystem belongs to the expected device.
const (
	DefaultMarkerDeviceXML = "GARMIN/GarminDevice.xml"
	DefaultMarkerDeviceFIT = "GARMIN/Device.fit"
)

// DefaultRemoteSubpath is where Garmin watches keep activity and
// monitoring FIT files, relative to the mount point.
const DefaultRemoteSubpath = "GARMIN/Activity"

// DeviceProfile describes the expected identity and layout of the
// mounted device. The marker files gate the mirror step: if either is
// absent the device is judged to not be the expected product.
type DeviceProfile struct {
	// MarkerFiles are relative paths under the mount point whose presence
	// confirms device identity. All of them must exist.
	MarkerFiles []string

	// RemoteSubpath is the subtree to mirror, relative to the mount point.
	RemoteSubpath string
}

// DefaultDeviceProfile returns the profile for a Garmin watch over MTP.
func DefaultDeviceProfile() DeviceProfile {
	return DeviceProfile{
		MarkerFiles:   []string{DefaultMarkerDeviceXML, DefaultMarkerDeviceFIT},
		RemoteSubpath: DefaultRemoteSubpath,
	}
}

// Validate checks the profile is usable as a safety gate.
func (p *DeviceProfile) Validate() error {
	if len(p.MarkerFiles) == 0 {
		return fmt.Errorf("%w: device profile needs at least one marker file", ErrInvalidInput)
	}
	for _, m := range p.MarkerFiles {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("%w: empty marker file path", ErrInvalidInput)
		}
		if filepath.IsAbs(m) {
			return fmt.Errorf("%w: marker file path must be relative: %s", ErrInvalidInput, m)
		}
	}
	if strings.TrimSpace(p.RemoteSubpath) == "" {
		return fmt.Errorf("%w: remote subpath is required", ErrInvalidInput)
	}
	if filepath.IsAbs(p.RemoteSubpath) {
		return fmt.Errorf("%w: remote subpath must be relative: %s", ErrInvalidInput, p.RemoteSubpath)
	}
	return nil
}
