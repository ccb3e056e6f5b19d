// Package device checks the mounted filesystem against the expected
// device fingerprint. The check is a safety gate: it exists to prevent
// bulk-copying against whatever else happens to be mounted.
package device

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/garmtools/garsync/internal/core/domain"
	"github.com/garmtools/garsync/internal/core/ports/driven"
	"github.com/garmtools/garsync/internal/logger"
)

// Ensure Verifier implements the interface.
var _ driven.DeviceVerifier = (*Verifier)(nil)

// Verifier confirms device identity via marker files under the mount point.
type Verifier struct{}

// NewVerifier creates a new marker-file verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Verify checks the profile's marker files under mountDir.
func (v *Verifier) Verify(ctx context.Context, mountDir string, profile domain.DeviceProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	for _, marker := range profile.MarkerFiles {
		path := filepath.Join(mountDir, marker)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: marker %s not found under %s",
					domain.ErrFingerprintMismatch, marker, mountDir)
			}
			return fmt.Errorf("%w: checking marker %s: %v",
				domain.ErrFingerprintMismatch, marker, err)
		}
		logger.Debug("Marker present: %s", path)
	}
	return nil
}
