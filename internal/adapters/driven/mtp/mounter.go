// Package mtp mounts the watch over MTP using jmtpfs and detaches it
// with fusermount. The MTP protocol itself is entirely jmtpfs's problem.
package mtp

import (
	"context"
	"fmt"

	"github.com/garmtools/garsync/internal/core/domain"
	"github.com/garmtools/garsync/internal/core/ports/driven"
	"github.com/garmtools/garsync/internal/execwrap"
	"github.com/garmtools/garsync/internal/logger"
)

// jmtpfs exits with this status when the requested mount point is
// already attached. Everything else non-zero is a real failure.
const exitAlreadyMounted = 134

// Ensure Mounter implements the interface.
var _ driven.Mounter = (*Mounter)(nil)

// Mounter attaches and detaches an MTP device via external tools.
type Mounter struct {
	runner      execwrap.Runner
	mountTool   string
	unmountTool string
}

// NewMounter creates a new MTP mounter.
func NewMounter(runner execwrap.Runner, mountTool, unmountTool string) *Mounter {
	if mountTool == "" {
		mountTool = domain.DefaultMountTool
	}
	if unmountTool == "" {
		unmountTool = domain.DefaultUnmountTool
	}
	return &Mounter{
		runner:      runner,
		mountTool:   mountTool,
		unmountTool: unmountTool,
	}
}

// Mount attaches the device at mountDir.
func (m *Mounter) Mount(ctx context.Context, mountDir string) error {
	logger.Debug("Mounting via %s at %s", m.mountTool, mountDir)

	res, err := m.runner.Run(ctx, m.mountTool, mountDir)
	if err != nil {
		return fmt.Errorf("%w: running %s: %v", domain.ErrMountFailed, m.mountTool, err)
	}

	switch res.ExitCode {
	case 0:
		return nil
	case exitAlreadyMounted:
		return fmt.Errorf("%w: %s", domain.ErrMountAlreadyActive, mountDir)
	default:
		if detail := res.FirstStderrLine(); detail != "" {
			return fmt.Errorf("%w: %s exited with status %d: %s",
				domain.ErrMountFailed, m.mountTool, res.ExitCode, detail)
		}
		return fmt.Errorf("%w: %s exited with status %d",
			domain.ErrMountFailed, m.mountTool, res.ExitCode)
	}
}

// Unmount detaches mountDir via `fusermount -u`.
func (m *Mounter) Unmount(ctx context.Context, mountDir string) error {
	logger.Debug("Unmounting %s via %s", mountDir, m.unmountTool)

	res, err := m.runner.Run(ctx, m.unmountTool, "-u", mountDir)
	if err != nil {
		return fmt.Errorf("%w: running %s: %v", domain.ErrUnmountFailed, m.unmountTool, err)
	}
	if res.ExitCode != 0 {
		if detail := res.FirstStderrLine(); detail != "" {
			return fmt.Errorf("%w: %s exited with status %d: %s",
				domain.ErrUnmountFailed, m.unmountTool, res.ExitCode, detail)
		}
		return fmt.Errorf("%w: %s exited with status %d",
			domain.ErrUnmountFailed, m.unmountTool, res.ExitCode)
	}
	return nil
}
