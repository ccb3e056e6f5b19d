package driven

import (
	"context"

	"github.com/garmtools/garsync/internal/core/domain"
)

// DeviceVerifier confirms the mounted filesystem belongs to the expected
// device before any bulk operation proceeds.
type DeviceVerifier interface {
	// Verify checks the profile's marker files under mountDir.
	// A missing marker yields an error wrapping domain.ErrFingerprintMismatch.
	Verify(ctx context.Context, mountDir string, profile domain.DeviceProfile) error
}
