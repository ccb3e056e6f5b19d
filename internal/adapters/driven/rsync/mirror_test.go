package rsync

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garmtools/garsync/internal/core/domain"
	"github.com/garmtools/garsync/internal/execwrap"
)

// fakeRunner implements execwrap.Runner and records invocations.
type fakeRunner struct {
	result *execwrap.Result
	err    error
	calls  [][]string
}

func (f *fakeRunner) Run(_ context.Context, program string, args ...string) (*execwrap.Result, error) {
	f.calls = append(f.calls, append([]string{program}, args...))
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeRunner) RunWithInput(ctx context.Context, _ io.Reader, program string, args ...string) (*execwrap.Result, error) {
	return f.Run(ctx, program, args...)
}

const sampleStats = `
Number of files: 128 (reg: 120, dir: 8)
Number of created files: 5 (reg: 5)
Number of deleted files: 0
Number of regular files transferred: 5
Total file size: 3,456,789 bytes
Total transferred file size: 123,456 bytes
Literal data: 123,456 bytes
Matched data: 0 bytes
`

func TestMirror_Args(t *testing.T) {
	mirror := NewMirror(&fakeRunner{}, "rsync")

	args := mirror.Args("/mnt/garmin/GARMIN/Activity", "/home/runner/garmin/activity")

	assert.Equal(t, []string{
		"-rt",
		"--partial",
		"--stats",
		"/mnt/garmin/GARMIN/Activity/",
		"/home/runner/garmin/activity",
	}, args)
	assert.NotContains(t, args, "--delete", "the mirror must never be destructive on the destination")
}

func TestMirror_Args_TrailingSlashNotDoubled(t *testing.T) {
	mirror := NewMirror(&fakeRunner{}, "rsync")

	args := mirror.Args("/mnt/garmin/GARMIN/Activity/", "/dst")

	assert.Contains(t, args, "/mnt/garmin/GARMIN/Activity/")
}

func TestMirror_Success(t *testing.T) {
	runner := &fakeRunner{result: &execwrap.Result{Stdout: sampleStats}}
	mirror := NewMirror(runner, "rsync")

	stats, err := mirror.Mirror(context.Background(), "/src", "/dst")

	require.NoError(t, err)
	assert.Equal(t, 5, stats.FilesTransferred)
	assert.Equal(t, int64(123456), stats.BytesTransferred)
	assert.Equal(t, 128, stats.FilesTotal)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "rsync", runner.calls[0][0])
}

func TestMirror_UpToDateRunTransfersNothing(t *testing.T) {
	upToDate := `
Number of files: 128 (reg: 120, dir: 8)
Number of regular files transferred: 0
Total transferred file size: 0 bytes
`
	runner := &fakeRunner{result: &execwrap.Result{Stdout: upToDate}}
	mirror := NewMirror(runner, "rsync")

	stats, err := mirror.Mirror(context.Background(), "/src", "/dst")

	require.NoError(t, err)
	assert.Equal(t, 0, stats.FilesTransferred)
	assert.Equal(t, int64(0), stats.BytesTransferred)
}

func TestMirror_NonZeroExit(t *testing.T) {
	runner := &fakeRunner{result: &execwrap.Result{
		ExitCode: 23,
		Stderr:   "rsync error: some files/attrs were not transferred (code 23)\n",
	}}
	mirror := NewMirror(runner, "rsync")

	stats, err := mirror.Mirror(context.Background(), "/src", "/dst")

	require.Error(t, err)
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, domain.ErrCopyFailed)
	assert.Contains(t, err.Error(), "status 23")
}

func TestParseStats_OlderRsyncPhrasing(t *testing.T) {
	// Before rsync 3.1 the transferred line omits "regular"
	older := `
Number of files: 128
Number of files transferred: 5
Total file size: 3456789 bytes
Total transferred file size: 123456 bytes
`
	stats := parseStats(older)

	assert.Equal(t, 5, stats.FilesTransferred)
	assert.Equal(t, int64(123456), stats.BytesTransferred)
	assert.Equal(t, 128, stats.FilesTotal)
}

func TestParseStats_GarbageYieldsZeroes(t *testing.T) {
	stats := parseStats("no stats here")

	assert.Equal(t, 0, stats.FilesTransferred)
	assert.Equal(t, int64(0), stats.BytesTransferred)
	assert.Equal(t, 0, stats.FilesTotal)
}
