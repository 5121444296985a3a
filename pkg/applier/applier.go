/*
Copyright © 2025 Zen Tools Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package applier orchestrates one apply run: profile resolution and
// registry merge, user.js rendering, policy installation, search
// keyword bookmarks, install-hash bootstrap, theme resolution, and the
// setup guide.
//
// Failure policy: malformed input, an invalid policy document, and
// privileged-install failures abort the run; network and
// browser-launch failures are downgraded to warnings and the run
// continues degraded.
package applier

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/zen-tools/zenctl/pkg/bookmarks"
	"github.com/zen-tools/zenctl/pkg/browser"
	"github.com/zen-tools/zenctl/pkg/config"
	"github.com/zen-tools/zenctl/pkg/policies"
	"github.com/zen-tools/zenctl/pkg/prefs"
	"github.com/zen-tools/zenctl/pkg/profile"
	"github.com/zen-tools/zenctl/pkg/report"
	"github.com/zen-tools/zenctl/pkg/themes"
)

// Applier runs the apply pipeline.
type Applier struct {
	version    string
	dryRun     bool
	home       string
	httpClient *http.Client
	browser    *browser.Browser
	storeURL   string
}

// Option is a functional option for configuring Applier instances.
type Option func(*Applier)

// WithVersion sets the tool version recorded in logs.
func WithVersion(version string) Option {
	return func(a *Applier) { a.version = version }
}

// WithDryRun enables preview mode: every artifact is rendered and
// reported but nothing is written and no process is launched.
func WithDryRun(dryRun bool) Option {
	return func(a *Applier) { a.dryRun = dryRun }
}

// WithHome overrides the user home directory (used by tests).
func WithHome(home string) Option {
	return func(a *Applier) { a.home = home }
}

// WithHTTPClient overrides the HTTP client used for the theme store.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Applier) { a.httpClient = client }
}

// WithThemeStoreURL overrides the theme store location (used by tests).
func WithThemeStoreURL(url string) Option {
	return func(a *Applier) { a.storeURL = url }
}

// WithBrowserExecutable overrides the browser binary.
func WithBrowserExecutable(executable string) Option {
	return func(a *Applier) { a.browser = &browser.Browser{Executable: executable} }
}

// New creates an Applier with the provided options.
func New(opts ...Option) *Applier {
	a := &Applier{browser: &browser.Browser{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run applies the configuration. configDir is the directory of the
// configuration file, used to resolve relative paths inside it.
func (a *Applier) Run(ctx context.Context, cfg *config.Config, configDir string) (*Result, error) {
	start := time.Now()
	res := &Result{DryRun: a.dryRun}

	out, err := a.run(ctx, cfg, configDir, res)
	res.Duration = time.Since(start)

	status := "success"
	if err != nil {
		status = "error"
	}
	applyTotal.WithLabelValues(status).Inc()
	applyDuration.Observe(res.Duration.Seconds())

	return out, err
}

func (a *Applier) run(ctx context.Context, cfg *config.Config, configDir string, res *Result) (*Result, error) {
	slog.Debug("starting apply run", "version", a.version, "dry_run", a.dryRun)

	resolver := &profile.Resolver{Home: a.home, DryRun: a.dryRun}

	paths, err := resolver.Resolve(ctx, cfg)
	if err != nil {
		return res, err
	}
	slog.Info("profile resolved",
		"profile", paths.ProfileName,
		"profile_dir", paths.ProfileDir,
		"install_dir", paths.InstallDir,
	)
	res.recordFile(filepath.Join(paths.ZenDir, "profiles.ini"), 0)

	if err := a.writeUserJS(cfg, paths, res); err != nil {
		return res, err
	}
	if err := a.installPolicies(ctx, cfg, configDir, paths, res); err != nil {
		return res, err
	}

	if err := bookmarks.Apply(ctx, paths.ProfileDir, cfg.SearchEngines, a.dryRun); err != nil {
		res.warn("search keyword bookmarks skipped", err)
	}

	a.bootstrap(ctx, resolver, paths, res)
	a.writeGuide(paths, cfg, res)
	a.openMods(ctx, cfg, res)

	slog.Info("configuration applied",
		"files", res.TotalFiles,
		"size_bytes", res.TotalSize,
		"warnings", len(res.Warnings),
		"dry_run", a.dryRun,
	)
	return res, nil
}

// writeUserJS renders the preference file into the profile directory.
func (a *Applier) writeUserJS(cfg *config.Config, paths *profile.Paths, res *Result) error {
	plain, zen, err := prefs.FromConfig(cfg)
	if err != nil {
		return err
	}
	toolbarState, err := prefs.ToolbarState(cfg)
	if err != nil {
		return err
	}

	data, err := prefs.RenderUserJS(prefs.RenderInput{
		Preferences:    plain,
		ZenPreferences: zen,
		Workspaces:     cfg.Workspaces,
		ToolbarState:   toolbarState,
	})
	if err != nil {
		return err
	}

	path := filepath.Join(paths.ProfileDir, "user.js")
	if a.dryRun {
		slog.Info("dry-run: would write", "path", path, "bytes", len(data))
	} else {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		slog.Info("user.js written", "path", path, "preferences", len(plain)+len(zen))
	}
	res.recordFile(path, int64(len(data)))
	return nil
}

// installPolicies renders, validates, and installs policies.json.
func (a *Applier) installPolicies(ctx context.Context, cfg *config.Config, configDir string, paths *profile.Paths, res *Result) error {
	certs, err := policies.CertificatePaths(cfg, configDir)
	if err != nil {
		return err
	}
	if len(certs) > 0 {
		slog.Info("found certificates to install", "count", len(certs))
	}

	doc, err := policies.Build(cfg, certs)
	if err != nil {
		return err
	}
	data, err := doc.Render()
	if err != nil {
		return err
	}

	path, err := policies.Install(ctx, paths.InstallDir, data, a.dryRun)
	if err != nil {
		return err
	}
	res.recordFile(path, int64(len(data)))
	return nil
}

// bootstrap discovers the install hash by launching the browser when
// the registry has none, then re-merges so the fresh Install sections
// point at the configured profile. All failures here are degraded-mode
// warnings except registry write errors on the re-merge.
func (a *Applier) bootstrap(ctx context.Context, resolver *profile.Resolver, paths *profile.Paths, res *Result) {
	found, err := resolver.BootstrapInstallHash(ctx, a.browser, paths)
	if err != nil {
		res.warn("install-hash bootstrap skipped", err)
		return
	}
	if !found {
		return
	}
	if err := resolver.Remerge(ctx, paths); err != nil {
		res.warn("registry re-merge after bootstrap failed", err)
	}
}

// writeGuide renders the setup guide and opens it in the browser.
func (a *Applier) writeGuide(paths *profile.Paths, cfg *config.Config, res *Result) {
	guidePath, err := report.Write(paths.ZenDir, cfg.Workspaces, a.dryRun)
	if err != nil {
		res.warn("setup guide not written", err)
		return
	}
	res.recordFile(guidePath, 0)

	if a.dryRun {
		return
	}
	if err := a.browser.OpenPage(guidePath); err != nil {
		res.warn("could not open setup guide, open it manually: "+guidePath, err)
		return
	}
	slog.Info("opened setup guide", "path", guidePath)
}

// openMods resolves configured mods against the theme store and opens
// their install pages. The store is optional: any failure skips mods
// with a warning.
func (a *Applier) openMods(ctx context.Context, cfg *config.Config, res *Result) {
	if len(cfg.ZenMods) == 0 {
		return
	}

	store, err := themes.Fetch(ctx, a.httpClient, a.storeURL)
	if err != nil {
		res.warn("theme store unavailable, skipping mods", err)
		return
	}

	opened := 0
	for _, mod := range cfg.ZenMods {
		id, theme, fuzzy, ok := store.Resolve(mod.ID, mod.Name)
		if !ok {
			res.warn("mod not found in theme store: "+modLabel(mod), nil)
			continue
		}
		if fuzzy {
			slog.Info("mod matched by closest name", "configured", mod.Name, "matched", theme.Name)
		}

		url := themes.InstallPageURL(id)
		if a.dryRun {
			slog.Info("dry-run: would open mod install page", "mod", theme.Name, "url", url)
			opened++
			continue
		}
		if err := a.browser.OpenPage(url); err != nil {
			res.warn("could not open install page for "+theme.Name, err)
			continue
		}
		slog.Info("opened mod install page", "mod", theme.Name)
		opened++
	}

	if opened > 0 && !a.dryRun {
		slog.Info("click Install on each opened mod page", "mods", opened)
	}
}

func modLabel(mod config.ModRef) string {
	if mod.Name != "" {
		return mod.Name
	}
	if mod.ID != "" {
		return mod.ID
	}
	return "unnamed"
}
