// Package memory provides in-memory implementations of driven port
// interfaces. Used in tests and wherever persistence is not required.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/garmtools/garsync/internal/core/domain"
	"github.com/garmtools/garsync/internal/core/ports/driven"
)

// Ensure SyncHistoryStore implements the interface.
var _ driven.SyncHistoryStore = (*SyncHistoryStore)(nil)

// SyncHistoryStore is an in-memory implementation of driven.SyncHistoryStore.
type SyncHistoryStore struct {
	mu   sync.RWMutex
	runs map[string]domain.SyncRun
}

// NewSyncHistoryStore creates a new in-memory sync history store.
func NewSyncHistoryStore() *SyncHistoryStore {
	return &SyncHistoryStore{
		runs: make(map[string]domain.SyncRun),
	}
}

// Save stores a finished run.
func (s *SyncHistoryStore) Save(_ context.Context, run domain.SyncRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// Get retrieves a run by ID.
func (s *SyncHistoryStore) Get(_ context.Context, id string) (*domain.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// List returns up to limit runs, most recent first.
func (s *SyncHistoryStore) List(_ context.Context, limit int) ([]domain.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]domain.SyncRun, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Last returns the most recent run.
func (s *SyncHistoryStore) Last(ctx context.Context) (*domain.SyncRun, error) {
	runs, err := s.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, domain.ErrNotFound
	}
	return &runs[0], nil
}
