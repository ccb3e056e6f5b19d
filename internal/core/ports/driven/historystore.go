package driven

import (
	"context"

	"github.com/garmtools/garsync/internal/core/domain"
)

// SyncHistoryStore persists completed sync runs.
type SyncHistoryStore interface {
	// Save stores a finished run.
	Save(ctx context.Context, run domain.SyncRun) error

	// Get retrieves a run by ID.
	Get(ctx context.Context, id string) (*domain.SyncRun, error)

	// List returns up to limit runs, most recent first.
	// limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.SyncRun, error)

	// Last returns the most recent run, or domain.ErrNotFound.
	Last(ctx context.Context) (*domain.SyncRun, error)
}
