package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/garmtools/garsync/internal/core/domain"
	"github.com/garmtools/garsync/internal/core/ports/driven"
	"github.com/garmtools/garsync/internal/core/ports/driving"
	"github.com/garmtools/garsync/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// SyncOrchestrator coordinates the mount-validate-mirror-unmount pipeline.
// One pipeline at a time: the orchestrator assumes exclusive ownership of
// the mount directory for the duration of a call.
type SyncOrchestrator struct {
	settings driving.SettingsService
	mounter  driven.Mounter
	mirror   driven.Mirror
	verifier driven.DeviceVerifier
	history  driven.SyncHistoryStore

	// Status tracking
	mu      sync.RWMutex
	running bool
	stage   string
}

// NewSyncOrchestrator creates a new sync orchestrator.
// The history store is optional - if nil, runs are not recorded.
func NewSyncOrchestrator(
	settings driving.SettingsService,
	mounter driven.Mounter,
	mirror driven.Mirror,
	verifier driven.DeviceVerifier,
	history driven.SyncHistoryStore,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		settings: settings,
		mounter:  mounter,
		mirror:   mirror,
		verifier: verifier,
		history:  history,
	}
}

// Sync runs the full pipeline and returns the recorded run.
// On pipeline failure the run is still returned alongside the error so
// callers can see how far it got.
func (o *SyncOrchestrator) Sync(ctx context.Context) (*domain.SyncRun, error) {
	cfg, err := o.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	if err := o.begin(); err != nil {
		return nil, err
	}
	defer o.end()

	run := &domain.SyncRun{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}

	logger.Info("Starting sync: %s -> %s", cfg.RemoteDir(), cfg.LocalDir)
	pipelineErr := o.pipeline(ctx, cfg, run)

	run.FinishedAt = time.Now()
	if pipelineErr != nil {
		run.Message = pipelineErr.Error()
		run.Status = statusFor(pipelineErr)
	} else {
		run.Status = domain.SyncStatusOK
		logger.Info("Sync complete: %d files, %d bytes in %s",
			run.Stats.FilesTransferred, run.Stats.BytesTransferred, run.Duration().Round(time.Millisecond))
	}

	o.record(ctx, run)

	return run, pipelineErr
}

// pipeline executes the sequential steps. Once the mount is acquired
// (including the already-active case) the deferred unmount runs on every
// exit path; its failure lands on the run as a warning, never as the
// primary result.
func (o *SyncOrchestrator) pipeline(ctx context.Context, cfg *domain.Settings, run *domain.SyncRun) error {
	// 1. Ensure the mount directory exists. Idempotent, non-destructive.
	if err := os.MkdirAll(cfg.MountDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating mount dir %s: %v", domain.ErrMountFailed, cfg.MountDir, err)
	}

	// 2. Mount. Already-active short-circuits to validation; any other
	// mount error is fatal before anything was acquired.
	o.setStage(driving.StageMount)
	if err := o.mounter.Mount(ctx, cfg.MountDir); err != nil {
		if !errors.Is(err, domain.ErrMountAlreadyActive) {
			return err
		}
		logger.Info("Mount already active at %s, proceeding to validation", cfg.MountDir)
	}

	// Mount acquired: release it however the rest of the pipeline exits.
	// Unmount must still run when ctx was cancelled mid-copy.
	defer func() {
		o.setStage(driving.StageUnmount)
		if err := o.mounter.Unmount(context.WithoutCancel(ctx), cfg.MountDir); err != nil {
			run.UnmountWarning = err.Error()
			logger.Warn("Unmount of %s failed: %v", cfg.MountDir, err)
		}
	}()

	// 3. Validate the device fingerprint before any bulk operation.
	o.setStage(driving.StageValidate)
	if err := o.verifier.Verify(ctx, cfg.MountDir, cfg.Device); err != nil {
		return err
	}

	// 4. Mirror the activity subtree. Additive and resumable; partial
	// progress is retained on failure.
	o.setStage(driving.StageMirror)
	stats, err := o.mirror.Mirror(ctx, cfg.RemoteDir(), cfg.LocalDir)
	if err != nil {
		return err
	}
	run.Stats = *stats

	return nil
}

// Verify mounts, checks the device fingerprint and unmounts without copying.
func (o *SyncOrchestrator) Verify(ctx context.Context) error {
	cfg, err := o.settings.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	if err := o.begin(); err != nil {
		return err
	}
	defer o.end()

	if err := os.MkdirAll(cfg.MountDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating mount dir %s: %v", domain.ErrMountFailed, cfg.MountDir, err)
	}

	o.setStage(driving.StageMount)
	if err := o.mounter.Mount(ctx, cfg.MountDir); err != nil {
		if !errors.Is(err, domain.ErrMountAlreadyActive) {
			return err
		}
	}
	defer func() {
		o.setStage(driving.StageUnmount)
		if err := o.mounter.Unmount(context.WithoutCancel(ctx), cfg.MountDir); err != nil {
			logger.Warn("Unmount of %s failed: %v", cfg.MountDir, err)
		}
	}()

	o.setStage(driving.StageValidate)
	return o.verifier.Verify(ctx, cfg.MountDir, cfg.Device)
}

// Status returns the current pipeline state.
func (o *SyncOrchestrator) Status(_ context.Context) (*driving.SyncPipelineStatus, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return &driving.SyncPipelineStatus{
		Running: o.running,
		Stage:   o.stage,
	}, nil
}

// History returns up to limit past runs, most recent first.
func (o *SyncOrchestrator) History(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	if o.history == nil {
		return nil, nil
	}
	runs, err := o.history.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return runs, nil
}

// record persists the run. Best-effort: a store failure must not turn a
// finished sync into an error.
func (o *SyncOrchestrator) record(ctx context.Context, run *domain.SyncRun) {
	if o.history == nil {
		return
	}
	if err := o.history.Save(context.WithoutCancel(ctx), *run); err != nil {
		logger.Warn("Failed to record sync run %s: %v", run.ID, err)
	}
}

func (o *SyncOrchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running {
		return domain.ErrSyncInProgress
	}
	o.running = true
	return nil
}

func (o *SyncOrchestrator) end() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.running = false
	o.stage = ""
}

func (o *SyncOrchestrator) setStage(stage string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stage = stage
}

// statusFor maps a pipeline error onto the run's terminal status.
func statusFor(err error) domain.SyncStatus {
	switch {
	case errors.Is(err, domain.ErrMountFailed):
		return domain.SyncStatusMountFailed
	case errors.Is(err, domain.ErrFingerprintMismatch):
		return domain.SyncStatusFingerprintMismatch
	default:
		return domain.SyncStatusCopyFailed
	}
}
