package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yndnr/pak-go/internal/core/service"
	"github.com/yndnr/pak-go/pkg/pak"
)

// CLIConfig is the configuration for pak-cli.
type CLIConfig struct {
	// Generator defaults for generate, check and hash.
	Digest           string `koanf:"digest" yaml:"digest"`
	RNG              string `koanf:"rng" yaml:"rng"`
	ShortTokenPrefix string `koanf:"short_token_prefix" yaml:"short_token_prefix,omitempty"`
	ShortTokenLength int    `koanf:"short_token_length" yaml:"short_token_length"`
	LongTokenLength  int    `koanf:"long_token_length" yaml:"long_token_length"`

	// Output is the default format: table, json, yaml.
	Output string `koanf:"output" yaml:"output"`

	// Server is the pak-server address used by the remote commands.
	Server string `koanf:"server" yaml:"server"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Digest:           pak.DefaultDigest,
		RNG:              pak.DefaultRandomSource,
		ShortTokenLength: pak.DefaultShortTokenLength,
		LongTokenLength:  pak.DefaultLongTokenLength,
		Output:           "table",
		Server:           "http://127.0.0.1:5080",
	}
}

// Settings returns key service settings for prefix.
func (c *CLIConfig) Settings(prefix string) service.Settings {
	return service.Settings{
		Prefix:           prefix,
		Digest:           c.Digest,
		RandomSource:     c.RNG,
		ShortTokenPrefix: c.ShortTokenPrefix,
		ShortTokenLength: c.ShortTokenLength,
		LongTokenLength:  c.LongTokenLength,
	}
}

// Verify checks the values a command would otherwise reject late.
func Verify(c *CLIConfig) error {
	if _, err := pak.NewDigest(c.Digest); err != nil {
		return fmt.Errorf("digest: %w", err)
	}
	if !slices.Contains(pak.RandomSourceNames(), c.RNG) {
		return fmt.Errorf("rng: %w", pak.ErrUnknownRandomSource.WithDetails(c.RNG))
	}
	if c.ShortTokenLength < 1 || c.LongTokenLength < 1 {
		return errors.New("token lengths must be at least 1")
	}
	if strings.Contains(c.ShortTokenPrefix, pak.Separator) {
		return fmt.Errorf("short_token_prefix %q must not contain %q", c.ShortTokenPrefix, pak.Separator)
	}
	switch c.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("output %q is not one of table, json, yaml", c.Output)
	}
	return nil
}
