package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/yndnr/pak-go/internal/core/service"
)

// ServerConfig is the root configuration for pak-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Key     KeySection     `koanf:"key"`
	Metrics MetricsSection `koanf:"metrics"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures the HTTP endpoint.
type ServerSection struct {
	HTTP      HTTPConfig      `koanf:"http"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr            string        `koanf:"addr"`
	TLSCertFile     string        `koanf:"tls_cert_file"`
	TLSKeyFile      string        `koanf:"tls_key_file"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// RateLimitConfig configures the per client IP token bucket.
type RateLimitConfig struct {
	Enabled           bool    `koanf:"enabled"`
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
	// TrustedProxies lists proxy addresses or CIDRs whose X-Forwarded-For
	// and X-Real-IP headers are believed. Empty trusts no header.
	TrustedProxies []string `koanf:"trusted_proxies"`
}

// ProxyPrefixes parses TrustedProxies. A bare address becomes a single
// host prefix.
func (c RateLimitConfig) ProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, entry := range c.TrustedProxies {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// KeySection configures the key generator.
type KeySection struct {
	Prefix           string `koanf:"prefix"`
	Digest           string `koanf:"digest"`
	RandomSource     string `koanf:"random_source"`
	ShortTokenPrefix string `koanf:"short_token_prefix"`
	ShortTokenLength int    `koanf:"short_token_length"`
	LongTokenLength  int    `koanf:"long_token_length"`
}

// Settings converts the section into key service settings.
func (k KeySection) Settings() service.Settings {
	return service.Settings{
		Prefix:           k.Prefix,
		Digest:           k.Digest,
		RandomSource:     k.RandomSource,
		ShortTokenPrefix: k.ShortTokenPrefix,
		ShortTokenLength: k.ShortTokenLength,
		LongTokenLength:  k.LongTokenLength,
	}
}

// MetricsSection configures the /metrics endpoint.
type MetricsSection struct {
	Enabled bool `koanf:"enabled"`
	// Token, when set, must be presented as a bearer token to scrape.
	Token string `koanf:"token"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
