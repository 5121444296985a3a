// Package browser launches and terminates the Zen Browser binary and
// opens pages for manual follow-up steps. Launches are detached into
// their own process group so the whole browser tree can be terminated
// during install-hash bootstrap.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"syscall"
	"time"
)

// DefaultExecutable is the browser launcher looked up on PATH.
const DefaultExecutable = "zen-browser"

// killGracePeriod is how long a terminated browser gets before the
// process group is killed outright.
const killGracePeriod = 5 * time.Second

// Browser spawns the target browser binary.
type Browser struct {
	// Executable is the binary name or path. Defaults to
	// DefaultExecutable when empty.
	Executable string
}

func (b *Browser) executable() string {
	if b.Executable == "" {
		return DefaultExecutable
	}
	return b.Executable
}

// Process is a launched browser instance.
type Process struct {
	cmd  *exec.Cmd
	done chan error
}

// Launch starts the browser detached, with output discarded and its
// own process group. The returned Process must be terminated with
// Terminate once the caller is done with it.
func (b *Browser) Launch(ctx context.Context, args ...string) (*Process, error) {
	cmd := exec.CommandContext(ctx, b.executable(), args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launching %s: %w", b.executable(), err)
	}

	p := &Process{cmd: cmd, done: make(chan error, 1)}
	go func() {
		p.done <- cmd.Wait()
	}()

	slog.Debug("browser launched", "pid", cmd.Process.Pid)
	return p, nil
}

// Wait blocks until the process exits or ctx is done.
func (p *Process) Wait(ctx context.Context) error {
	select {
	case err := <-p.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Terminate sends SIGTERM to the browser's process group, escalating
// to SIGKILL after a grace period. Safe to call after exit.
func (p *Process) Terminate() {
	pgid := p.cmd.Process.Pid
	if err := syscall.Kill(-pgid, syscall.SIGTERM); err != nil {
		slog.Debug("browser already gone", "pid", pgid, "error", err)
		return
	}

	select {
	case <-p.done:
	case <-time.After(killGracePeriod):
		if err := syscall.Kill(-pgid, syscall.SIGKILL); err != nil {
			slog.Debug("browser kill failed", "pid", pgid, "error", err)
		}
	}
	slog.Debug("browser terminated", "pid", pgid)
}

// OpenPage opens a URL or local file in the browser without waiting
// for it. Failures are returned so callers can downgrade them to
// warnings; opening pages is never load-bearing.
func (b *Browser) OpenPage(url string) error {
	cmd := exec.Command(b.executable(), url)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	// Reap in the background; the page process belongs to the browser.
	go func() { _ = cmd.Wait() }()
	return nil
}
