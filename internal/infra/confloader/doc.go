// Package confloader loads configuration from files, environment
// variables and flag maps using koanf.
//
// Priority (highest to lowest):
//
//  1. Command-line flags (LoadMap)
//  2. Environment variables (PAK_ prefix by default)
//  3. Configuration file (.yaml, .yml or .toml)
//  4. Values already present in the target struct
//
// Watcher reports changes to a configuration file so long-running
// processes can re-apply settings that are safe to change live.
package confloader
