// Package command provides CLI command definitions for pak-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: root command, global flags, configuration loading
//   - key.go: generate, check, hash, inspect and digests
//   - config.go: config show, path and init
//   - remote.go: the same key operations against a running pak-server
//   - version.go: build information
//
// Commands follow a consistent pattern of parsing flags, calling the key
// service and formatting output through internal/cli/output.
package command
