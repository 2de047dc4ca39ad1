package service

import "github.com/yndnr/pak-go/pkg/pak"

// Settings names every generator parameter by value, as configuration
// files and flags carry them.
type Settings struct {
	Prefix           string
	Digest           string
	RandomSource     string
	ShortTokenPrefix string
	ShortTokenLength int
	LongTokenLength  int
}

// DefaultSettings returns SHA-256, the OS random source and the default
// token lengths for prefix.
func DefaultSettings(prefix string) Settings {
	return Settings{
		Prefix:           prefix,
		Digest:           pak.DefaultDigest,
		RandomSource:     pak.DefaultRandomSource,
		ShortTokenLength: pak.DefaultShortTokenLength,
		LongTokenLength:  pak.DefaultLongTokenLength,
	}
}

// NewGeneratorFromSettings builds a generator through pak.Builder, so
// named presets and lengths get the same validation as library callers.
func NewGeneratorFromSettings(s Settings) (*pak.Generator, error) {
	return pak.NewBuilder().
		Prefix(s.Prefix).
		DigestNamed(s.Digest).
		RandomNamed(s.RandomSource).
		ShortTokenPrefix(s.ShortTokenPrefix).
		ShortTokenLength(s.ShortTokenLength).
		LongTokenLength(s.LongTokenLength).
		Finalize()
}
