/*
Copyright © 2025 Zen Tools Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package profile resolves the browser installation and profile
// directories and drives the registry merge that makes the configured
// profile the default everywhere.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/zen-tools/zenctl/pkg/config"
	zenerrors "github.com/zen-tools/zenctl/pkg/errors"
	"github.com/zen-tools/zenctl/pkg/registry"
)

// ProfileRootDirName is the profile root under the user home.
const ProfileRootDirName = ".zen"

// Paths is the resolved filesystem layout for one apply run.
type Paths struct {
	// ZenDir is the profile root directory (~/.zen).
	ZenDir string

	// ProfileDir is the target profile directory.
	ProfileDir string

	// RelativePath is ProfileDir relative to ZenDir, as written into
	// the registry files.
	RelativePath string

	// ProfileName is the configured profile name.
	ProfileName string

	// InstallDir is the detected browser installation directory.
	InstallDir string
}

// Resolver locates and registers the configured profile.
type Resolver struct {
	// Home is the user home directory. Defaults to os.UserHomeDir.
	Home string

	// DryRun disables directory creation and registry writes.
	DryRun bool
}

// Resolve ensures the profile root and profile directory exist,
// detects the browser installation, and merges the profile into the
// registry files as the default. Update-only merge mode is selected
// when the profile already appears in profiles.ini.
func (r *Resolver) Resolve(ctx context.Context, cfg *config.Config) (*Paths, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	home := r.Home
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, zenerrors.Wrap(zenerrors.ErrCodeInternal, "resolving home directory", err)
		}
		home = h
	}

	zenDir := filepath.Join(home, ProfileRootDirName)
	if err := r.ensureDir(zenDir); err != nil {
		return nil, err
	}

	store := &registry.Store{Dir: zenDir, DryRun: r.DryRun}
	reg, err := store.LoadProfiles()
	if err != nil {
		return nil, err
	}

	name := cfg.ProfileName()
	profileDir, existed := profileDirFromRegistry(reg, name, zenDir)
	if profileDir == "" {
		profileDir = filepath.Join(zenDir, name+".default")
		slog.Info("creating new profile", "path", profileDir)
	}
	if err := r.ensureDir(profileDir); err != nil {
		return nil, err
	}

	rel, err := relativeProfilePath(zenDir, profileDir)
	if err != nil {
		return nil, err
	}

	installDir := DetectInstallation(cfg, home)

	paths := &Paths{
		ZenDir:       zenDir,
		ProfileDir:   profileDir,
		RelativePath: rel,
		ProfileName:  name,
		InstallDir:   installDir,
	}

	if err := r.mergeAndStore(store, reg, paths, existed); err != nil {
		return nil, err
	}

	return paths, nil
}

// Remerge reloads the registry and reapplies an update-only merge.
// Called after install-hash bootstrap so freshly discovered Install
// sections get redirected to the configured profile.
func (r *Resolver) Remerge(ctx context.Context, paths *Paths) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	store := &registry.Store{Dir: paths.ZenDir, DryRun: r.DryRun}
	reg, err := store.LoadProfiles()
	if err != nil {
		return err
	}
	return r.mergeAndStore(store, reg, paths, true)
}

func (r *Resolver) mergeAndStore(store *registry.Store, reg *registry.Registry, paths *Paths, updateOnly bool) error {
	res := registry.Merge(reg, registry.MergeInput{
		ProfileName:  paths.ProfileName,
		RelativePath: paths.RelativePath,
		UpdateOnly:   updateOnly,
	})
	if err := store.WriteProfiles(res.ProfilesINI); err != nil {
		return err
	}
	if err := store.SyncInstalls(res.InstallHashes, paths.RelativePath); err != nil {
		return err
	}

	if updateOnly {
		slog.Info("registry updated for profile", "profile", paths.ProfileName, "installs", len(res.InstallHashes))
	} else {
		slog.Info("profile registered", "profile", paths.ProfileName, "path", paths.RelativePath)
	}
	return nil
}

func (r *Resolver) ensureDir(dir string) error {
	if r.DryRun {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			slog.Info("dry-run: would create directory", "path", dir)
		}
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// profileDirFromRegistry returns the directory of the named profile if
// it is already registered, honoring the IsRelative flag.
func profileDirFromRegistry(reg *registry.Registry, name, zenDir string) (dir string, existed bool) {
	sec := reg.FindProfile(name)
	if sec == nil {
		return "", false
	}
	p := sec.Get("Path")
	if p == "" {
		return "", false
	}
	if sec.Get("IsRelative") == "1" {
		return filepath.Join(zenDir, p), true
	}
	return p, true
}

func relativeProfilePath(zenDir, profileDir string) (string, error) {
	rel, err := filepath.Rel(zenDir, profileDir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", zenerrors.New(zenerrors.ErrCodeInvalidConfig,
			fmt.Sprintf("profile directory %s is outside the profile root %s", profileDir, zenDir))
	}
	return rel, nil
}
