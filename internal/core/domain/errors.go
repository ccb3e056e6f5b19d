package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSyncInProgress indicates a sync is already running.
	ErrSyncInProgress = errors.New("sync in progress")

	// Mount Errors.

	// ErrMountAlreadyActive indicates the device is already mounted at the
	// requested mount point. Informational: the pipeline proceeds directly
	// to fingerprint validation instead of failing.
	ErrMountAlreadyActive = errors.New("mount already active")

	// ErrMountFailed indicates the MTP mount facility failed.
	// Fatal before acquisition: no unmount is attempted.
	ErrMountFailed = errors.New("mount failed")

	// ErrUnmountFailed indicates the mount point could not be detached.
	// Warning-grade: it never overrides an otherwise-successful sync result.
	ErrUnmountFailed = errors.New("unmount failed")

	// Pipeline Errors.

	// ErrFingerprintMismatch indicates the mounted filesystem is missing the
	// expected marker files and is judged to not be the expected device.
	// A safety check, not a recoverable condition: nothing is copied.
	ErrFingerprintMismatch = errors.New("device fingerprint mismatch")

	// ErrCopyFailed indicates the mirror step failed.
	// Partial progress already copied is retained, not rolled back.
	ErrCopyFailed = errors.New("copy failed")
)
