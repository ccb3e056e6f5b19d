package domain

import "time"

// MirrorStats summarises one mirror pass over the device subtree.
type MirrorStats struct {
	// FilesTransferred is the number of regular files actually copied.
	// Zero on an up-to-date second run.
	FilesTransferred int

	// BytesTransferred is the transferred payload size in bytes.
	BytesTransferred int64

	// FilesTotal is the number of regular files seen on the remote side.
	FilesTotal int
}

// SyncStatus is the terminal status of a recorded sync run.
type SyncStatus string

// Terminal sync statuses.
const (
	// SyncStatusOK means the full pipeline completed.
	SyncStatusOK SyncStatus = "ok"

	// SyncStatusMountFailed means the device could not be mounted.
	SyncStatusMountFailed SyncStatus = "mount_failed"

	// SyncStatusFingerprintMismatch means the mounted filesystem failed the
	// marker-file check; nothing was copied.
	SyncStatusFingerprintMismatch SyncStatus = "fingerprint_mismatch"

	// SyncStatusCopyFailed means the mirror step failed; partial progress
	// is retained on the destination.
	SyncStatusCopyFailed SyncStatus = "copy_failed"
)

// IsValid returns true if the status is recognised.
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncStatusOK, SyncStatusMountFailed, SyncStatusFingerprintMismatch, SyncStatusCopyFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SyncStatus) String() string {
	return string(s)
}

// SyncRun records one sync attempt, successful or not.
type SyncRun struct {
	// ID is the unique identifier for the run.
	ID string

	// StartedAt is when the pipeline began.
	StartedAt time.Time

	// FinishedAt is when the pipeline returned.
	FinishedAt time.Time

	// Status is the terminal status.
	Status SyncStatus

	// Stats holds mirror counters. Zero-valued unless the mirror step ran.
	Stats MirrorStats

	// UnmountWarning is set when the trailing unmount failed. The run's
	// Status is unaffected: unmount failure never overrides the result.
	UnmountWarning string

	// Message carries the failure detail for non-OK statuses.
	Message string
}

// Duration returns how long the run took.
func (r *SyncRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
