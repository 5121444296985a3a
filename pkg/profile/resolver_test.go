package profile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zen-tools/zenctl/pkg/config"
)

func testConfig(t *testing.T, src string) *config.Config {
	t.Helper()
	cfg, err := config.FromReader(strings.NewReader(src))
	require.NoError(t, err)
	return cfg
}

func stubLookPathFail(t *testing.T) {
	t.Helper()
	orig := lookPath
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	t.Cleanup(func() { lookPath = orig })
}

func TestResolve_FirstRunCreatesProfileAndRegistry(t *testing.T) {
	stubLookPathFail(t)
	home := t.TempDir()
	r := &Resolver{Home: home}

	paths, err := r.Resolve(context.Background(), testConfig(t, `profile: {name: work}`))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".zen"), paths.ZenDir)
	assert.Equal(t, filepath.Join(home, ".zen", "work.default"), paths.ProfileDir)
	assert.Equal(t, "work.default", paths.RelativePath)
	assert.Equal(t, "work", paths.ProfileName)

	info, err := os.Stat(paths.ProfileDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	data, err := os.ReadFile(filepath.Join(paths.ZenDir, "profiles.ini"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Profile0]\nName=work\nIsRelative=1\nPath=work.default\nDefault=1")
}

func TestResolve_ExistingProfileKeepsDirectory(t *testing.T) {
	stubLookPathFail(t)
	home := t.TempDir()
	zenDir := filepath.Join(home, ".zen")
	require.NoError(t, os.MkdirAll(filepath.Join(zenDir, "abc123.work"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(zenDir, "profiles.ini"), []byte(`[Profile0]
Name=work
IsRelative=1
Path=abc123.work
`), 0o644))

	r := &Resolver{Home: home}
	paths, err := r.Resolve(context.Background(), testConfig(t, `profile: {name: work}`))
	require.NoError(t, err)

	// The registered directory wins over the <name>.default scheme.
	assert.Equal(t, filepath.Join(zenDir, "abc123.work"), paths.ProfileDir)
	assert.Equal(t, "abc123.work", paths.RelativePath)

	// Existing profile means update-only merge: numbering preserved.
	data, err := os.ReadFile(filepath.Join(zenDir, "profiles.ini"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Profile0]")
	assert.Contains(t, string(data), "Default=1")
}

func TestResolve_AbsoluteRegisteredPathOutsideRootRejected(t *testing.T) {
	stubLookPathFail(t)
	home := t.TempDir()
	zenDir := filepath.Join(home, ".zen")
	outside := t.TempDir()
	require.NoError(t, os.MkdirAll(zenDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(zenDir, "profiles.ini"), []byte(`[Profile0]
Name=work
IsRelative=0
Path=`+outside+`
`), 0o644))

	r := &Resolver{Home: home}
	_, err := r.Resolve(context.Background(), testConfig(t, `profile: {name: work}`))
	assert.Error(t, err)
}

func TestResolve_DryRunLeavesFilesystemUntouched(t *testing.T) {
	stubLookPathFail(t)
	home := t.TempDir()
	r := &Resolver{Home: home, DryRun: true}

	paths, err := r.Resolve(context.Background(), testConfig(t, `profile: {name: work}`))
	require.NoError(t, err)

	_, statErr := os.Stat(paths.ZenDir)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(paths.ZenDir, "profiles.ini"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestResolve_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Resolver{Home: t.TempDir()}
	_, err := r.Resolve(ctx, testConfig(t, `profile: {name: work}`))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRemerge_RedirectsNewInstallSections(t *testing.T) {
	stubLookPathFail(t)
	home := t.TempDir()
	r := &Resolver{Home: home}

	paths, err := r.Resolve(context.Background(), testConfig(t, `profile: {name: work}`))
	require.NoError(t, err)

	// Simulate the browser appending its own Install section.
	iniPath := filepath.Join(paths.ZenDir, "profiles.ini")
	current, err := os.ReadFile(iniPath)
	require.NoError(t, err)
	appended := string(current) + "\n[InstallCAFE]\nDefault=somewhere-else\nLocked=1\n"
	require.NoError(t, os.WriteFile(iniPath, []byte(appended), 0o644))

	require.NoError(t, r.Remerge(context.Background(), paths))

	merged, err := os.ReadFile(iniPath)
	require.NoError(t, err)
	assert.Contains(t, string(merged), "[InstallCAFE]\nDefault=work.default\nLocked=1")

	installs, err := os.ReadFile(filepath.Join(paths.ZenDir, "installs.ini"))
	require.NoError(t, err)
	assert.Equal(t, "[CAFE]\nDefault=work.default\nLocked=1\n", string(installs))
}
