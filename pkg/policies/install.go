package policies

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	zenerrors "github.com/zen-tools/zenctl/pkg/errors"
)

// distributionDir is the browser subdirectory policies.json lives in.
const distributionDir = "distribution"

// Install writes the rendered policy document into the browser's
// distribution directory. The write is attempted unprivileged first
// and falls back to an elevated helper (sudo); a failure at the
// elevated stage is fatal for the run.
func Install(ctx context.Context, installDir string, data []byte, dryRun bool) (string, error) {
	dir := filepath.Join(installDir, distributionDir)
	path := filepath.Join(dir, "policies.json")

	if dryRun {
		slog.Info("dry-run: would install policies", "path", path, "bytes", len(data))
		return path, nil
	}

	slog.Info("installing policies", "path", path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		if !errors.Is(err, os.ErrPermission) {
			return "", zenerrors.Wrap(zenerrors.ErrCodeInternal, "creating distribution directory", err)
		}
		slog.Info("elevated permissions needed to create distribution directory")
		if err := runElevated(ctx, "mkdir", "-p", dir); err != nil {
			return "", zenerrors.Wrap(zenerrors.ErrCodeInternal, "creating distribution directory (elevated)", err)
		}
	}

	err := os.WriteFile(path, data, 0o644)
	if err == nil {
		return path, nil
	}
	if !errors.Is(err, os.ErrPermission) {
		return "", zenerrors.Wrap(zenerrors.ErrCodeInternal, "writing policies.json", err)
	}

	slog.Info("elevated permissions needed to install policies.json")

	tmp, err := os.CreateTemp("", "zenctl-policies-*.json")
	if err != nil {
		return "", zenerrors.Wrap(zenerrors.ErrCodeInternal, "staging policies.json", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", zenerrors.Wrap(zenerrors.ErrCodeInternal, "staging policies.json", err)
	}
	if err := tmp.Close(); err != nil {
		return "", zenerrors.Wrap(zenerrors.ErrCodeInternal, "staging policies.json", err)
	}

	if err := runElevated(ctx, "cp", tmpPath, path); err != nil {
		return "", zenerrors.Wrap(zenerrors.ErrCodeInternal, "installing policies.json (elevated)", err)
	}
	return path, nil
}

func runElevated(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "sudo", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sudo %v: %w", args, err)
	}
	return nil
}
