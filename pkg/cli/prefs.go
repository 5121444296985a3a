/*
Copyright © 2025 Zen Tools Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/zen-tools/zenctl/pkg/config"
	"github.com/zen-tools/zenctl/pkg/prefs"
	"github.com/zen-tools/zenctl/pkg/serializer"
)

func prefsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "prefs",
		EnableShellCompletion: true,
		Usage:                 "Preview the flattened preference list for a configuration",
		ArgsUsage:             "[config-file]",
		Description: `Flattens the nested config subtree into the dot-notation preference
assignments that apply would write to user.js, without touching the
profile. Zen-specific preferences are shown with their full zen. key.

The list can be output in JSON, YAML, or table format.

# Examples

  zenctl prefs
  zenctl prefs config.yaml --format table`,
		Flags: []cli.Flag{
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			configPath := cmd.Args().First()
			if configPath == "" {
				configPath = defaultConfigFile
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			plain, zen, err := prefs.FromConfig(cfg)
			if err != nil {
				return err
			}

			list := make(prefs.List, 0, len(plain)+len(zen))
			list = append(list, plain...)
			for _, p := range zen {
				list = append(list, prefs.Pref{Key: "zen." + p.Key, Value: p.Value})
			}

			return serializer.NewStdoutWriter(outFormat).Serialize(ctx, list)
		},
	}
}
