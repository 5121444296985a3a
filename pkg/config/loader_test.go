package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zenerrors "github.com/zen-tools/zenctl/pkg/errors"
)

const sampleConfig = `
profile:
  name: work
  zen_path: auto

config:
  browser:
    tabs:
      warnOnClose: false
  zen:
    view:
      compact: true

workspaces:
  - name: dev
    icon: "🛠️"
    default_container: Work
    essentials:
      - https://github.com

extensions:
  uBlock0@raymondhill.net: https://addons.mozilla.org/firefox/downloads/latest/ublock-origin/latest.xpi

containers:
  - name: Work
    icon: briefcase
    color: blue

default_search_engine: DuckDuckGo

search_engines:
  - keyword: gh
    name: GitHub
    url: https://github.com/search?q=%s

zen_mods:
  - id: 0b24d02d-b2a9-4481-b0a7-c0419e2c0e66
  - name: Super Url Bar
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "work", cfg.ProfileName())
	assert.Equal(t, "auto", cfg.Profile.ZenPath)
	assert.True(t, cfg.HasTree())

	require.Len(t, cfg.Workspaces, 1)
	assert.Equal(t, "dev", cfg.Workspaces[0].Name)
	assert.Equal(t, []string{"https://github.com"}, cfg.Workspaces[0].Essentials)

	assert.Contains(t, cfg.Extensions, "uBlock0@raymondhill.net")
	require.Len(t, cfg.Containers, 1)
	assert.Equal(t, "blue", cfg.Containers[0].Color)
	assert.Equal(t, "DuckDuckGo", cfg.DefaultSearchEngine)

	require.Len(t, cfg.SearchEngines, 1)
	assert.Equal(t, "gh", cfg.SearchEngines[0].Keyword)

	require.Len(t, cfg.ZenMods, 2)
	assert.Equal(t, "0b24d02d-b2a9-4481-b0a7-c0419e2c0e66", cfg.ZenMods[0].ID)
	assert.Equal(t, "Super Url Bar", cfg.ZenMods[1].Name)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, zenerrors.IsCode(err, zenerrors.ErrCodeNotFound))
}

func TestFromReader_InvalidYAML(t *testing.T) {
	_, err := FromReader(strings.NewReader("profile: [unclosed"))
	require.Error(t, err)
	assert.True(t, zenerrors.IsCode(err, zenerrors.ErrCodeInvalidConfig))
}

func TestProfileName_Default(t *testing.T) {
	cfg, err := FromReader(strings.NewReader("config:\n  a: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.ProfileName())
}

func TestHasTree_AbsentTree(t *testing.T) {
	cfg, err := FromReader(strings.NewReader("preferences:\n  a.b: 1\n"))
	require.NoError(t, err)
	assert.False(t, cfg.HasTree())
}
