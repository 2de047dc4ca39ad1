package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/pak-go/internal/infra/confloader"
)

// LocalConfigFile is looked up in the working directory first.
const LocalConfigFile = "pak_config.toml"

// DefaultConfigPath returns the per-user CLI config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".pak", "cli.yaml")
}

// FindConfigFile returns the first existing default config file, or ""
// when there is none.
func FindConfigFile() string {
	for _, path := range []string{LocalConfigFile, DefaultConfigPath()} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load loads the CLI configuration. An empty path searches the default
// locations; a missing default file yields the defaults, while an
// explicit path must exist.
//
// The returned loader holds the merged sources, so callers can layer
// flags on top with LoadMap and Unmarshal again.
func Load(path string) (*CLIConfig, *confloader.Loader, error) {
	if path == "" {
		path = FindConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("config file: %w", err)
	}

	cfg := Default()
	loader := confloader.NewLoader(confloader.WithConfigFile(path))
	if err := loader.Load(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, loader, nil
}

// Save writes cfg as YAML, creating the parent directory. The file is
// private to the user.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
