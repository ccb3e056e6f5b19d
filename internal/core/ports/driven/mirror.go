package driven

import (
	"context"

	"github.com/garmtools/garsync/internal/core/domain"
)

// Mirror copies a remote subtree into local storage.
//
// The copy is one-directional and additive: timestamps and permissions are
// preserved where supported, partially-transferred files are resumed rather
// than restarted, and files present locally but absent remotely are never
// deleted. Errors wrap domain.ErrCopyFailed.
type Mirror interface {
	// Mirror copies srcDir into dstDir and reports transfer counters.
	Mirror(ctx context.Context, srcDir, dstDir string) (*domain.MirrorStats, error)
}
