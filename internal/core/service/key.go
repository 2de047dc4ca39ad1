package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yndnr/pak-go/internal/telemetry/logger"
	"github.com/yndnr/pak-go/pkg/pak"
)

// MaxBatchSize caps the number of keys issued by one IssueBatch call.
const MaxBatchSize = 100

// Metrics receives key service events. *metric.Registry implements it.
type Metrics interface {
	IncKeysIssued()
	ObserveHashCheck(match bool)
	IncRandomnessFailures()
	IncMalformedKeys()
}

type nopMetrics struct{}

func (nopMetrics) IncKeysIssued()         {}
func (nopMetrics) ObserveHashCheck(bool)  {}
func (nopMetrics) IncRandomnessFailures() {}
func (nopMetrics) IncMalformedKeys()      {}

// IssuedKey is a freshly generated key with the hash to persist.
type IssuedKey struct {
	Key  *pak.Key
	Hash string
}

// KeyInfo describes a key without its long token.
type KeyInfo struct {
	Prefix          string `json:"prefix" yaml:"prefix"`
	ShortToken      string `json:"short_token" yaml:"short_token"`
	LongTokenLength int    `json:"long_token_length" yaml:"long_token_length"`
	Masked          string `json:"masked" yaml:"masked"`
	PrefixMatches   bool   `json:"prefix_matches" yaml:"prefix_matches"`
}

// KeyService issues and verifies prefixed API keys.
type KeyService struct {
	gen      *pak.Generator
	settings Settings
	logger   logger.Logger
	metrics  Metrics
}

// Option configures a KeyService.
type Option func(*KeyService)

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *KeyService) {
		s.logger = l
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(s *KeyService) {
		s.metrics = m
	}
}

// NewKeyService builds the generator described by settings.
//
// A short token prefix that fills the whole short token is accepted, but
// every key will then share one short token; a warning is logged.
func NewKeyService(settings Settings, opts ...Option) (*KeyService, error) {
	gen, err := NewGeneratorFromSettings(settings)
	if err != nil {
		return nil, fmt.Errorf("build generator: %w", err)
	}

	s := &KeyService{
		gen:      gen,
		settings: settings,
		logger:   logger.Default(),
		metrics:  nopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}

	logger.RegisterKeyPrefix(settings.Prefix)

	if gen.PrefixConsumesShortToken() {
		s.logger.Warn("short token prefix fills the short token; all keys will share one short token",
			"short_token_prefix", settings.ShortTokenPrefix,
			"short_token_length", settings.ShortTokenLength,
		)
	}
	return s, nil
}

// Settings returns the settings the service was built from.
func (s *KeyService) Settings() Settings {
	return s.settings
}

// Generator returns the underlying generator.
func (s *KeyService) Generator() *pak.Generator {
	return s.gen
}

// Issue generates one key and the hash of its long token.
func (s *KeyService) Issue(ctx context.Context) (*IssuedKey, error) {
	key, hash, err := s.gen.GenerateKeyAndHash()
	if err != nil {
		if errors.Is(err, pak.ErrRandomnessUnavailable) {
			s.metrics.IncRandomnessFailures()
		}
		s.log(ctx).Error("key generation failed", "error", err)
		return nil, err
	}

	s.metrics.IncKeysIssued()
	s.log(ctx).Info("key issued", "key", key)
	return &IssuedKey{Key: key, Hash: hash}, nil
}

// IssueBatch generates n keys. It stops early if ctx is cancelled.
func (s *KeyService) IssueBatch(ctx context.Context, n int) ([]*IssuedKey, error) {
	if n < 1 || n > MaxBatchSize {
		return nil, ErrInvalidArgument.WithDetails(fmt.Sprintf("count must be between 1 and %d, got %d", MaxBatchSize, n))
	}

	keys := make([]*IssuedKey, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		issued, err := s.Issue(ctx)
		if err != nil {
			return nil, err
		}
		keys = append(keys, issued)
	}
	return keys, nil
}

// Hash parses text and returns the hash of its long token.
func (s *KeyService) Hash(ctx context.Context, text string) (string, error) {
	key, err := s.parse(ctx, text)
	if err != nil {
		return "", err
	}
	return s.gen.HashOf(key), nil
}

// Verify reports whether hash belongs to the key in text. The key's prefix
// is not compared with the configured prefix; only the hash decides.
func (s *KeyService) Verify(ctx context.Context, text, hash string) (bool, error) {
	key, err := s.parse(ctx, text)
	if err != nil {
		return false, err
	}

	match := s.gen.CheckHash(key, hash)
	s.metrics.ObserveHashCheck(match)
	s.log(ctx).Debug("key verified", "key", key, "match", match)
	return match, nil
}

// Inspect parses text and describes it without the long token.
func (s *KeyService) Inspect(text string) (*KeyInfo, error) {
	key, err := pak.ParseKey(text)
	if err != nil {
		s.metrics.IncMalformedKeys()
		return nil, err
	}

	return &KeyInfo{
		Prefix:          key.Prefix(),
		ShortToken:      key.ShortToken(),
		LongTokenLength: len(key.LongToken()),
		Masked:          key.String(),
		PrefixMatches:   key.Prefix() == s.settings.Prefix,
	}, nil
}

func (s *KeyService) parse(ctx context.Context, text string) (*pak.Key, error) {
	key, err := pak.ParseKey(text)
	if err != nil {
		s.metrics.IncMalformedKeys()
		s.log(ctx).Debug("rejected malformed key", "error", err)
		return nil, err
	}
	return key, nil
}

// log returns the service logger tagged with the request ID from ctx.
func (s *KeyService) log(ctx context.Context) logger.Logger {
	l := s.logger.WithContext(ctx)
	if id := logger.RequestIDFromContext(ctx); id != "" {
		l = l.With("request_id", id)
	}
	return l
}
