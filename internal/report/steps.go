// Package report hands synced FIT files to the external parsing script.
//
// Garsync never decodes FIT data itself: the script owns the format and
// the plotting. This package only guarantees the script receives the
// file list the local directory currently holds, via its batch mode
// (file names on stdin, one per line).
package report

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/garmtools/garsync/internal/execwrap"
	"github.com/garmtools/garsync/internal/logger"
)

// Kinds of report the external parser supports.
const (
	KindSteps = "steps"
	KindPulse = "pulse"
)

// parserCommands maps report kinds onto the script's subcommands.
var parserCommands = map[string]string{
	KindSteps: "dump-steps",
	KindPulse: "pulse-history",
}

// Reporter feeds FIT file lists to the external parser.
type Reporter struct {
	runner execwrap.Runner
	tool   string
}

// NewReporter creates a reporter invoking tool (the fitparse script).
func NewReporter(runner execwrap.Runner, tool string) *Reporter {
	return &Reporter{
		runner: runner,
		tool:   tool,
	}
}

// Run collects FIT files under localDir and pipes the list to the
// parser in batch mode. The parser's stdout is returned verbatim.
func (r *Reporter) Run(ctx context.Context, kind, localDir string) (string, error) {
	command, ok := parserCommands[kind]
	if !ok {
		return "", fmt.Errorf("unknown report kind %q", kind)
	}

	files, err := CollectFITFiles(localDir)
	if err != nil {
		return "", fmt.Errorf("collect FIT files: %w", err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no FIT files under %s", localDir)
	}

	logger.Info("Feeding %d FIT files to %s -c %s", len(files), r.tool, command)

	input := strings.NewReader(strings.Join(files, "\n") + "\n")
	// The script requires at least one positional file name even in batch
	// mode, where it reads the real list from stdin. "-" satisfies the
	// argument parser and is never opened.
	res, err := r.runner.RunWithInput(ctx, input, r.tool, "-b", "-c", command, "-")
	if err != nil {
		return "", fmt.Errorf("running %s: %w", r.tool, err)
	}
	if res.ExitCode != 0 {
		if detail := res.FirstStderrLine(); detail != "" {
			return "", fmt.Errorf("%s exited with status %d: %s", r.tool, res.ExitCode, detail)
		}
		return "", fmt.Errorf("%s exited with status %d", r.tool, res.ExitCode)
	}
	return res.Stdout, nil
}

// CollectFITFiles returns the sorted paths of all FIT files under dir.
// Garmin watches use both lower and upper case extensions.
func CollectFITFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".fit") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
