package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	zenerrors "github.com/zen-tools/zenctl/pkg/errors"
)

// Load reads and parses a configuration document from path.
// A parse failure is fatal; there is no partial recovery.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zenerrors.Wrap(zenerrors.ErrCodeNotFound,
			fmt.Sprintf("configuration file %s", path), err)
	}
	defer f.Close()

	return FromReader(f)
}

// FromReader parses a configuration document from r. Useful for
// in-memory fixtures in tests.
func FromReader(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, zenerrors.Wrap(zenerrors.ErrCodeInvalidConfig,
			"failed to parse configuration YAML", err)
	}
	return &cfg, nil
}
