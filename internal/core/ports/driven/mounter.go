package driven

import "context"

// Mounter attaches and detaches the device filesystem.
//
// Mount returns nil on success and domain.ErrMountAlreadyActive (possibly
// wrapped) when the facility reports the mount point is already in use;
// callers treat that as an already-satisfied precondition, not a failure.
// Any other error wraps domain.ErrMountFailed.
type Mounter interface {
	// Mount attaches the device at mountDir.
	Mount(ctx context.Context, mountDir string) error

	// Unmount detaches mountDir. Errors wrap domain.ErrUnmountFailed.
	Unmount(ctx context.Context, mountDir string) error
}
