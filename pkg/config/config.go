// Package config loads the declarative zenctl configuration document.
//
// The document is YAML with a small typed envelope (profile, workspaces,
// extensions, search engines, mods) around one free-form subtree
// ("config") holding arbitrarily nested browser preferences. The
// subtree is kept as a yaml.Node so that declaration order survives
// into the generated user.js.
package config

import (
	"gopkg.in/yaml.v3"
)

// Config is the root configuration document.
type Config struct {
	Profile             Profile              `yaml:"profile"`
	Tree                yaml.Node            `yaml:"config"`
	Workspaces          []Workspace          `yaml:"workspaces"`
	Extensions          map[string]string    `yaml:"extensions"`
	ExtensionSettings   map[string]yaml.Node `yaml:"extension_settings"`
	Containers          []Container          `yaml:"containers"`
	DefaultSearchEngine string               `yaml:"default_search_engine"`
	SearchEngines       []SearchEngine       `yaml:"search_engines"`
	ZenMods             []ModRef             `yaml:"zen_mods"`
	Toolbar             yaml.Node            `yaml:"toolbar"`
	CertificatesDir     string               `yaml:"certificates_dir"`

	// Legacy flat-format inputs, honored only when the config subtree
	// is absent.
	Preferences    map[string]any `yaml:"preferences"`
	ZenPreferences map[string]any `yaml:"zen_preferences"`
	Zen            yaml.Node      `yaml:"zen"`
}

// Profile selects the target browser profile and installation.
type Profile struct {
	// Name is the profile name registered in profiles.ini.
	// Defaults to "default".
	Name string `yaml:"name"`

	// ZenPath is the browser installation directory, or "auto" (the
	// default) to probe PATH and well-known locations.
	ZenPath string `yaml:"zen_path"`
}

// Workspace describes a browser workspace for the setup guide.
type Workspace struct {
	Name             string   `yaml:"name"`
	Icon             string   `yaml:"icon"`
	DefaultContainer string   `yaml:"default_container"`
	Essentials       []string `yaml:"essentials"`
}

// Container describes a contextual identity (container tab).
type Container struct {
	Name  string `yaml:"name"`
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
}

// SearchEngine describes a keyword search bookmark.
type SearchEngine struct {
	Keyword string `yaml:"keyword"`
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
}

// ModRef identifies a theme-store mod by ID, name, or both.
type ModRef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// ProfileName returns the configured profile name or "default".
func (c *Config) ProfileName() string {
	if c.Profile.Name == "" {
		return "default"
	}
	return c.Profile.Name
}

// HasTree reports whether the unified nested config subtree is present.
func (c *Config) HasTree() bool {
	return c.Tree.Kind == yaml.MappingNode
}
