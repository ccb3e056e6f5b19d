package driving

import (
	"context"

	"github.com/garmtools/garsync/internal/core/domain"
)

// SyncOrchestrator coordinates the mount-validate-mirror-unmount pipeline.
type SyncOrchestrator interface {
	// Sync runs the full pipeline and returns the recorded run.
	// Once the mount is acquired the mount point is released on every exit
	// path, including cancellation; the returned run carries an unmount
	// warning when that release fails.
	Sync(ctx context.Context) (*domain.SyncRun, error)

	// Verify mounts, checks the device fingerprint and unmounts without
	// copying anything.
	Verify(ctx context.Context) error

	// Status returns the current pipeline state.
	Status(ctx context.Context) (*SyncPipelineStatus, error)

	// History returns up to limit past runs, most recent first.
	History(ctx context.Context, limit int) ([]domain.SyncRun, error)
}

// Pipeline stages reported by Status while a sync is running.
const (
	StageMount    = "mount"
	StageValidate = "validate"
	StageMirror   = "mirror"
	StageUnmount  = "unmount"
)

// SyncPipelineStatus represents the current state of the pipeline.
type SyncPipelineStatus struct {
	// Running indicates if a sync is currently in progress.
	Running bool

	// Stage names the step in flight when Running is true.
	Stage string
}
