/*
Copyright © 2025 Zen Tools Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/zen-tools/zenctl/pkg/logging"
)

// version is set at build time via ldflags.
var version = "dev"

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"t"},
	Value:   "yaml",
	Usage:   "output format (yaml, json, table)",
}

// New constructs the root command.
func New() *cli.Command {
	return &cli.Command{
		Name:                  "zenctl",
		Usage:                 "Declarative configuration for Zen Browser",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Output logs in JSON format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.Setup(logging.Options{
				Debug: cmd.Bool("debug"),
				JSON:  cmd.Bool("log-json"),
			})
			return ctx, nil
		},
		Commands: []*cli.Command{
			applyCmd(),
			prefsCmd(),
			versionCmd(),
		},
	}
}
