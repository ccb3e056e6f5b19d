// Package rsync mirrors the device subtree with the rsync tool.
//
// The invocation is deliberately one-directional and additive:
// `-rt` preserves structure and timestamps, `--partial` resumes
// interrupted transfers, and `--delete` is never passed, so files present
// locally but absent remotely survive every run.
package rsync

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/garmtools/garsync/internal/core/domain"
	"github.com/garmtools/garsync/internal/core/ports/driven"
	"github.com/garmtools/garsync/internal/execwrap"
	"github.com/garmtools/garsync/internal/logger"
)

// Ensure Mirror implements the interface.
var _ driven.Mirror = (*Mirror)(nil)

// Mirror copies a remote subtree into local storage via rsync.
type Mirror struct {
	runner execwrap.Runner
	tool   string
}

// NewMirror creates a new rsync-backed mirror.
func NewMirror(runner execwrap.Runner, tool string) *Mirror {
	if tool == "" {
		tool = domain.DefaultMirrorTool
	}
	return &Mirror{
		runner: runner,
		tool:   tool,
	}
}

// Args returns the rsync argument list for srcDir -> dstDir.
// The trailing slash on the source copies its contents, not the
// directory itself.
func (m *Mirror) Args(srcDir, dstDir string) []string {
	return []string{
		"-rt",
		"--partial",
		"--stats",
		strings.TrimSuffix(srcDir, "/") + "/",
		dstDir,
	}
}

// Mirror copies srcDir into dstDir and reports transfer counters.
func (m *Mirror) Mirror(ctx context.Context, srcDir, dstDir string) (*domain.MirrorStats, error) {
	args := m.Args(srcDir, dstDir)
	logger.Debug("Mirroring: %s %s", m.tool, strings.Join(args, " "))

	res, err := m.runner.Run(ctx, m.tool, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: running %s: %v", domain.ErrCopyFailed, m.tool, err)
	}
	if res.ExitCode != 0 {
		if detail := res.FirstStderrLine(); detail != "" {
			return nil, fmt.Errorf("%w: %s exited with status %d: %s",
				domain.ErrCopyFailed, m.tool, res.ExitCode, detail)
		}
		return nil, fmt.Errorf("%w: %s exited with status %d",
			domain.ErrCopyFailed, m.tool, res.ExitCode)
	}

	stats := parseStats(res.Stdout)
	logger.Debug("Mirror stats: %d/%d files, %d bytes",
		stats.FilesTransferred, stats.FilesTotal, stats.BytesTransferred)
	return stats, nil
}

// --stats lines of interest. rsync 3.1 renamed "Number of files
// transferred" to "Number of regular files transferred"; both phrasings
// are accepted. Numbers may carry thousands separators.
var (
	reFilesTransferred = regexp.MustCompile(`Number of (?:regular )?files transferred: ([\d,.]+)`)
	reFilesTotal       = regexp.MustCompile(`Number of files: ([\d,.]+)`)
	reBytesTransferred = regexp.MustCompile(`Total transferred file size: ([\d,.]+)`)
)

// parseStats extracts transfer counters from rsync --stats output.
// Unparseable output yields zero counters rather than an error: the copy
// already succeeded and the counters are advisory.
func parseStats(out string) *domain.MirrorStats {
	stats := &domain.MirrorStats{}
	if m := reFilesTransferred.FindStringSubmatch(out); m != nil {
		stats.FilesTransferred = int(parseCount(m[1]))
	}
	if m := reFilesTotal.FindStringSubmatch(out); m != nil {
		stats.FilesTotal = int(parseCount(m[1]))
	}
	if m := reBytesTransferred.FindStringSubmatch(out); m != nil {
		stats.BytesTransferred = parseCount(m[1])
	}
	return stats
}

func parseCount(s string) int64 {
	s = strings.NewReplacer(",", "", ".", "").Replace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
