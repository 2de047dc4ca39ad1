package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"slices"
	"strings"

	"github.com/yndnr/pak-go/internal/telemetry/logger"
	"github.com/yndnr/pak-go/pkg/pak"
)

// Verify validates the configuration and returns the first problem found.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyKey(&cfg.Key); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if _, _, err := net.SplitHostPort(cfg.HTTP.Addr); err != nil {
		return fmt.Errorf("server.http.addr %q: %w", cfg.HTTP.Addr, err)
	}

	if (cfg.HTTP.TLSCertFile == "") != (cfg.HTTP.TLSKeyFile == "") {
		return errors.New("server.http.tls_cert_file and server.http.tls_key_file must be set together")
	}
	for _, path := range []string{cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("tls file: %w", err)
		}
	}

	if cfg.HTTP.ReadTimeout < 0 || cfg.HTTP.WriteTimeout < 0 || cfg.HTTP.ShutdownTimeout < 0 {
		return errors.New("server.http timeouts must not be negative")
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.RequestsPerSecond <= 0 {
			return errors.New("server.rate_limit.requests_per_second must be positive")
		}
		if cfg.RateLimit.Burst < 1 {
			return errors.New("server.rate_limit.burst must be at least 1")
		}
	}
	if _, err := cfg.RateLimit.ProxyPrefixes(); err != nil {
		return fmt.Errorf("server.rate_limit.trusted_proxies: %w", err)
	}
	return nil
}

func verifyKey(cfg *KeySection) error {
	if cfg.Prefix == "" {
		return errors.New("key.prefix is required")
	}
	// Keys whose parts contain the separator could never be parsed back.
	if strings.Contains(cfg.Prefix, pak.Separator) {
		return fmt.Errorf("key.prefix %q must not contain %q", cfg.Prefix, pak.Separator)
	}
	if strings.Contains(cfg.ShortTokenPrefix, pak.Separator) {
		return fmt.Errorf("key.short_token_prefix %q must not contain %q", cfg.ShortTokenPrefix, pak.Separator)
	}

	if _, err := pak.NewDigest(cfg.Digest); err != nil {
		return fmt.Errorf("key.digest: %w", err)
	}
	if !slices.Contains(pak.RandomSourceNames(), cfg.RandomSource) {
		return fmt.Errorf("key.random_source: %w", pak.ErrUnknownRandomSource.WithDetails(cfg.RandomSource))
	}

	if cfg.ShortTokenLength < 1 {
		return errors.New("key.short_token_length must be at least 1")
	}
	if cfg.LongTokenLength < 1 {
		return errors.New("key.long_token_length must be at least 1")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
		return nil
	default:
		return fmt.Errorf("log.format %q is not json or text", cfg.Format)
	}
}
