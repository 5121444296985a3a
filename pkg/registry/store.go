package registry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Registry file names under the profile root directory.
const (
	ProfilesFile = "profiles.ini"
	InstallsFile = "installs.ini"
)

// Store reads and writes the registry files under one profile root
// directory (typically ~/.zen). With DryRun set, writes and removals
// are logged and skipped.
type Store struct {
	// Dir is the profile root directory.
	Dir string

	// DryRun disables all filesystem mutation.
	DryRun bool
}

// ProfilesPath returns the full path of profiles.ini.
func (s *Store) ProfilesPath() string {
	return filepath.Join(s.Dir, ProfilesFile)
}

// InstallsPath returns the full path of installs.ini.
func (s *Store) InstallsPath() string {
	return filepath.Join(s.Dir, InstallsFile)
}

// LoadProfiles parses profiles.ini. A missing file is not an error: it
// means first-run bootstrap, and an empty registry is returned.
func (s *Store) LoadProfiles() (*Registry, error) {
	content, err := os.ReadFile(s.ProfilesPath())
	if os.IsNotExist(err) {
		return &Registry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ProfilesFile, err)
	}
	return Parse(string(content)), nil
}

// WriteProfiles writes the merged profiles.ini content.
func (s *Store) WriteProfiles(content string) error {
	if s.DryRun {
		slog.Info("dry-run: would write", "path", s.ProfilesPath(), "bytes", len(content))
		return nil
	}
	if err := os.WriteFile(s.ProfilesPath(), []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", ProfilesFile, err)
	}
	return nil
}

// SyncInstalls makes installs.ini mirror the install hashes of the
// merged profiles.ini. When no hash is known the stale file is removed
// rather than fabricated: the hash is owned by the browser, and
// inventing one would silently desynchronize the two files.
func (s *Store) SyncInstalls(hashes []string, relativePath string) error {
	path := s.InstallsPath()

	if len(hashes) == 0 {
		if s.DryRun {
			slog.Info("dry-run: would remove stale installs file if present", "path", path)
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing stale %s: %w", InstallsFile, err)
		}
		slog.Info("no installation hashes known; browser will create installs.ini on first run")
		return nil
	}

	content := BuildInstallsINI(hashes, relativePath)
	if s.DryRun {
		slog.Info("dry-run: would write", "path", path, "bytes", len(content))
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", InstallsFile, err)
	}
	slog.Info("updated installs file", "installs", len(hashes), "profile", relativePath)
	return nil
}
