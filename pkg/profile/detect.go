package profile

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/zen-tools/zenctl/pkg/config"
)

// maxWrapperScriptSize bounds how much of a launcher on PATH is read
// when sniffing for the real binary behind a shell wrapper.
const maxWrapperScriptSize = 10 * 1024

// lookPath is stubbed in tests.
var lookPath = exec.LookPath

// candidateInstallDirs are the well-known installation locations
// probed when PATH detection fails, in preference order.
func candidateInstallDirs(home string) []string {
	return []string{
		"/opt/zen-browser",
		"/opt/zen-browser-bin",
		"/usr/lib/zen-browser",
		"/usr/local/lib/zen-browser",
		filepath.Join(home, ".local/share/zen-browser"),
	}
}

// DetectInstallation finds the browser installation directory. An
// explicit configured path wins when it exists; otherwise the
// zen-browser launcher on PATH is resolved (following exec-style shell
// wrappers), then well-known directories are probed. Detection never
// fails hard: the final fallback is returned with a warning, and a
// wrong guess only degrades policy installation.
func DetectInstallation(cfg *config.Config, home string) string {
	if p := cfg.Profile.ZenPath; p != "" && p != "auto" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
		slog.Warn("configured zen_path does not exist, falling back to auto-detection", "path", p)
	}

	if dir := detectFromPath(); dir != "" {
		slog.Info("found browser installation", "path", dir)
		return dir
	}

	for _, dir := range candidateInstallDirs(home) {
		if _, err := os.Stat(dir); err == nil {
			slog.Info("found browser installation", "path", dir)
			return dir
		}
	}

	slog.Warn("could not auto-detect browser installation; policies may need manual installation",
		"fallback", candidateInstallDirs(home)[0])
	return candidateInstallDirs(home)[0]
}

func detectFromPath() string {
	binPath, err := lookPath("zen-browser")
	if err != nil {
		return ""
	}

	if real := resolveWrapperScript(binPath); real != "" {
		return filepath.Dir(real)
	}

	resolved, err := filepath.EvalSymlinks(binPath)
	if err != nil {
		resolved = binPath
	}

	dir := filepath.Dir(resolved)
	for _, name := range []string{"zen-bin", "zen"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return dir
		}
	}

	// Launchers in bin directories (e.g. /usr/bin) sit one level below
	// the installation prefix.
	parent := filepath.Dir(dir)
	if _, err := os.Stat(parent); err == nil {
		return parent
	}
	return ""
}

// resolveWrapperScript inspects a small launcher script for an
// exec line pointing at the real browser binary, returning the binary
// path or "".
func resolveWrapperScript(binPath string) string {
	info, err := os.Stat(binPath)
	if err != nil || info.Size() >= maxWrapperScriptSize {
		return ""
	}

	content, err := os.ReadFile(binPath)
	if err != nil {
		return ""
	}

	for _, line := range strings.Split(string(content), "\n") {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "exec") || !strings.Contains(lower, "zen") {
			continue
		}
		for _, field := range strings.Fields(line) {
			if !strings.Contains(strings.ToLower(field), "zen") || !strings.Contains(field, "/") {
				continue
			}
			candidate := strings.Trim(field, `"'`)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
