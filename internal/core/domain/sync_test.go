package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSyncStatus_IsValid(t *testing.T) {
	valid := []SyncStatus{
		SyncStatusOK,
		SyncStatusMountFailed,
		SyncStatusFingerprintMismatch,
		SyncStatusCopyFailed,
	}
	for _, status := range valid {
		assert.True(t, status.IsValid(), "expected %q to be valid", status)
	}

	assert.False(t, SyncStatus("").IsValid())
	assert.False(t, SyncStatus("exploded").IsValid())
}

func TestSyncRun_Duration(t *testing.T) {
	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	run := SyncRun{
		StartedAt:  start,
		FinishedAt: start.Add(42 * time.Second),
	}

	assert.Equal(t, 42*time.Second, run.Duration())
}
