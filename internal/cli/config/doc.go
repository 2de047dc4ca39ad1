// Package config provides CLI configuration for pak-cli.
//
//   - spec.go: CLIConfig struct
//   - loader.go: file discovery, loading and saving
//
// Settings are resolved from, in increasing priority: built-in defaults,
// the config file (pak_config.toml in the working directory, then
// ~/.pak/cli.yaml), PAK_* environment variables and command-line flags.
package config
