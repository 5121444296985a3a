/*
Copyright © 2025 Zen Tools Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/zen-tools/zenctl/pkg/applier"
	"github.com/zen-tools/zenctl/pkg/config"
)

// defaultConfigFile is used when no config path argument is given.
const defaultConfigFile = "config.yaml"

func applyCmd() *cli.Command {
	return &cli.Command{
		Name:                  "apply",
		EnableShellCompletion: true,
		Usage:                 "Apply a declarative configuration to Zen Browser",
		ArgsUsage:             "[config-file]",
		Description: `Applies a YAML configuration file to the local Zen Browser installation:

  - Resolves or creates the target profile and merges profiles.ini
  - Renders user.js from the nested config subtree
  - Generates and installs enterprise policies.json (extensions,
    containers, search engines, certificates)
  - Seeds search keyword bookmarks in places.sqlite
  - Bootstraps the installation hash by launching the browser when
    profiles.ini has no Install section yet
  - Writes an HTML setup guide for the remaining manual steps and
    opens configured mod install pages

# Examples

Apply the default config file in the current directory:
  zenctl apply

Apply a specific file:
  zenctl apply ~/dotfiles/zen/config.yaml

Preview without writing anything:
  zenctl apply --dry-run`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Render and report every artifact without writing files or launching the browser",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configPath := cmd.Args().First()
			if configPath == "" {
				configPath = defaultConfigFile
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			configDir, err := filepath.Abs(filepath.Dir(configPath))
			if err != nil {
				return fmt.Errorf("failed to resolve config directory: %w", err)
			}

			dryRun := cmd.Bool("dry-run")
			slog.Info("applying configuration",
				slog.String("config", configPath),
				slog.String("profile", cfg.ProfileName()),
				slog.Bool("dry_run", dryRun),
			)

			a := applier.New(
				applier.WithVersion(version),
				applier.WithDryRun(dryRun),
			)

			res, err := a.Run(ctx, cfg, configDir)
			if err != nil {
				slog.Error("apply failed", "error", err)
				return err
			}

			printApplySummary(res)
			return nil
		},
	}
}

// printApplySummary prints a user-facing summary of the run.
func printApplySummary(res *applier.Result) {
	if res.DryRun {
		fmt.Printf("\nDry run complete. %d file(s) would be written:\n", res.TotalFiles)
	} else {
		fmt.Printf("\nConfiguration applied. %d file(s) managed:\n", res.TotalFiles)
	}
	for _, f := range res.Files {
		fmt.Printf("  %s\n", f.Path)
	}
	if len(res.Warnings) > 0 {
		fmt.Printf("\n%d warning(s):\n", len(res.Warnings))
		for _, w := range res.Warnings {
			fmt.Printf("  - %s\n", w.Message)
		}
	}
}
