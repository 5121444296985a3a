/*
Copyright © 2025 Zen Tools Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface for the zenctl tool.
//
// # Overview
//
// zenctl applies a declarative YAML configuration to a Zen Browser
// installation: it resolves (or creates) the target profile, merges
// the profile registry, renders user.js, installs enterprise policies,
// seeds search keyword bookmarks, and produces an HTML setup guide for
// the remaining manual steps.
//
// # Commands
//
// apply - Apply a configuration file:
//
//	zenctl apply [config.yaml] [--dry-run]
//
// Applies the full configuration. With --dry-run every artifact is
// rendered and reported but nothing is written and no browser process
// is launched.
//
// prefs - Preview the flattened preference list:
//
//	zenctl prefs [config.yaml] [--format yaml|json|table]
//
// Flattens the nested config subtree into the dot-notation assignments
// that would be written to user.js, without touching the profile.
//
// version - Print version information.
//
// # Global Flags
//
//	--debug      Enable debug logging
//	--log-json   Output logs in JSON format
//	--help, -h   Show command help
//
// # Environment Variables
//
//	LOG_LEVEL   Set logging verbosity (debug, info, warn, error)
//	HOME        User home directory; the profile root is $HOME/.zen
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid configuration, execution failure)
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to
// specialized packages:
//   - pkg/applier - Apply pipeline orchestration
//   - pkg/config - Configuration loading
//   - pkg/prefs - Preference flattening and user.js rendering
//   - pkg/profile - Profile resolution and registry merge
//   - pkg/policies - policies.json generation and installation
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/zen-tools/zenctl/pkg/cli.version=1.0.0'"
package cli
