// Package policies builds the browser enterprise-policy document
// (policies.json), validates it, and installs it into the browser's
// distribution directory.
package policies

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zen-tools/zenctl/pkg/config"
	zenerrors "github.com/zen-tools/zenctl/pkg/errors"
)

// Document is the policies.json root object.
type Document struct {
	Policies map[string]any `json:"policies"`
}

// Build assembles the policy document from the configuration:
// force-installed extensions, raw extension settings, containers, the
// default search engine, and certificates to trust.
func Build(cfg *config.Config, certPaths []string) (*Document, error) {
	policies := make(map[string]any)

	extensionSettings := make(map[string]any)
	for id, url := range cfg.Extensions {
		extensionSettings[id] = map[string]any{
			"installation_mode": "force_installed",
			"install_url":       url,
		}
	}
	for id, node := range cfg.ExtensionSettings {
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, zenerrors.Wrap(zenerrors.ErrCodeInvalidConfig,
				"extension_settings for "+id, err)
		}
		// Raw settings override the generated entry wholesale.
		extensionSettings[id] = v
	}
	if len(extensionSettings) > 0 {
		policies["ExtensionSettings"] = extensionSettings
	}

	if len(cfg.Containers) > 0 {
		containers := make([]map[string]any, 0, len(cfg.Containers))
		for _, c := range cfg.Containers {
			containers = append(containers, map[string]any{
				"name":  c.Name,
				"icon":  c.Icon,
				"color": c.Color,
			})
		}
		policies["Containers"] = map[string]any{"Default": containers}
	}

	if cfg.DefaultSearchEngine != "" {
		policies["SearchEngines"] = map[string]any{
			"Default": cfg.DefaultSearchEngine,
		}
	}

	if len(certPaths) > 0 {
		policies["Certificates"] = map[string]any{
			"ImportEnterpriseRoots": true,
			"Install":               certPaths,
		}
	}

	return &Document{Policies: policies}, nil
}

// Render serializes and validates the document. An invalid document is
// fatal: installing a broken policy file would silently disable every
// policy in it.
func (d *Document) Render() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, zenerrors.Wrap(zenerrors.ErrCodeInternal, "serializing policies", err)
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// CertificatePaths returns absolute paths of all .crt and .pem files
// under the configured certificates directory, resolved relative to
// the configuration file's directory. A missing directory is not an
// error; certificates are optional.
func CertificatePaths(cfg *config.Config, configDir string) ([]string, error) {
	dir := cfg.CertificatesDir
	if dir == "" {
		dir = "certificates"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(configDir, dir)
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var paths []string
	for _, pattern := range []string{"*.crt", "*.pem"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil {
				return nil, err
			}
			paths = append(paths, abs)
		}
	}
	return paths, nil
}
