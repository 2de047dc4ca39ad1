// Package config defines the pak-server configuration.
//
//   - spec.go: ServerConfig struct definition
//   - default.go: default values
//   - verify.go: validation run before the server starts
//   - sanitize.go: a copy safe to log
//
// Configuration is loaded via internal/infra/confloader from a YAML or
// TOML file, PAK_ environment variables and flags.
package config
