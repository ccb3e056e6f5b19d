package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/garmtools/garsync/internal/core/domain"
)

func TestVerifyCmd_Use(t *testing.T) {
	assert.Equal(t, "verify", verifyCmd.Use)
}

func TestVerifyCmd_Short(t *testing.T) {
	assert.Equal(t, "Check the mounted device fingerprint without copying", verifyCmd.Short)
}

func TestVerifyCmd_Success(t *testing.T) {
	cleanup := setupSyncTest(&mockSyncOrchestrator{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"verify"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Verifying device...")
	assert.Contains(t, buf.String(), "device fingerprint matches")
}

func TestVerifyCmd_Mismatch(t *testing.T) {
	cleanup := setupSyncTest(&mockSyncOrchestrator{
		verifyErr: domain.ErrFingerprintMismatch,
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"verify"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFingerprintMismatch)
}

func TestVerifyCmd_ServiceNotConfigured(t *testing.T) {
	oldSync := syncOrchestrator
	syncOrchestrator = nil
	defer func() {
		syncOrchestrator = oldSync
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"verify"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sync service not configured")
}
