package pak

import (
	"crypto/subtle"
	"sync"

	"github.com/mr-tron/base58"
)

// Default token lengths, shared with other prefixed API key implementations
// so keys look alike across languages.
const (
	DefaultShortTokenLength = 8
	DefaultLongTokenLength  = 24
)

// Generator mints keys and hashes their long tokens.
//
// A Generator owns its random source and digest and mutates both on every
// call. Calls are serialized internally, so one Generator may be shared by
// many goroutines.
type Generator struct {
	mu sync.Mutex

	prefix           string
	random           RandomSource
	digest           Digest
	shortTokenPrefix string
	shortTokenLength int
	longTokenLength  int
}

// NewGenerator creates a generator directly from its parts.
// Builder is the validated way to assemble one.
func NewGenerator(prefix string, random RandomSource, digest Digest, shortTokenPrefix string, shortTokenLength, longTokenLength int) *Generator {
	return &Generator{
		prefix:           prefix,
		random:           random,
		digest:           digest,
		shortTokenPrefix: shortTokenPrefix,
		shortTokenLength: shortTokenLength,
		longTokenLength:  longTokenLength,
	}
}

// Prefix returns the configured key prefix.
func (g *Generator) Prefix() string { return g.prefix }

// ShortTokenPrefix returns the configured short token prefix, if any.
func (g *Generator) ShortTokenPrefix() string { return g.shortTokenPrefix }

// ShortTokenLength returns the short token length in characters.
func (g *Generator) ShortTokenLength() int { return g.shortTokenLength }

// LongTokenLength returns the number of random bytes in a long token.
func (g *Generator) LongTokenLength() int { return g.longTokenLength }

// PrefixConsumesShortToken reports whether the short token prefix fills the
// whole short token. Every key then shares the same short token.
func (g *Generator) PrefixConsumesShortToken() bool {
	return len([]rune(g.shortTokenPrefix)) >= g.shortTokenLength
}

// randomToken draws n bytes and base58 encodes them.
func (g *Generator) randomToken(n int) (string, error) {
	buf, err := readRandom(g.random, n)
	if err != nil {
		return "", err
	}
	return base58.Encode(buf), nil
}

// GenerateKey mints a new key. The hash of its long token is not computed;
// see GenerateKeyAndHash.
//
// The short token is the short token prefix followed by base58 randomness,
// cut to exactly ShortTokenLength characters. The cut applies with or
// without a short token prefix: base58 of n bytes usually runs past n
// characters, so keys from other generators may carry longer short tokens
// (ParseKey and CheckHash accept them). When the prefix alone is that long,
// the short token is the truncated prefix and the randomness is discarded.
//
// A failing random source yields an error matching ErrRandomnessUnavailable.
func (g *Generator) GenerateKey() (*Key, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generateKey()
}

func (g *Generator) generateKey() (*Key, error) {
	encoded, err := g.randomToken(g.shortTokenLength)
	if err != nil {
		return nil, err
	}
	shortToken := truncate(g.shortTokenPrefix+encoded, g.shortTokenLength)

	longToken, err := g.randomToken(g.longTokenLength)
	if err != nil {
		return nil, err
	}

	return NewKey(g.prefix, shortToken, longToken), nil
}

// GenerateKeyAndHash mints a new key and returns it with the hash of its
// long token. The hash is what callers persist.
func (g *Generator) GenerateKeyAndHash() (*Key, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key, err := g.generateKey()
	if err != nil {
		return nil, "", err
	}
	return key, key.HashedLongToken(g.digest), nil
}

// MustGenerateKey is GenerateKey for callers that treat missing entropy as
// fatal. It panics if the random source fails.
func (g *Generator) MustGenerateKey() *Key {
	key, err := g.GenerateKey()
	if err != nil {
		panic(err)
	}
	return key
}

// MustGenerateKeyAndHash is GenerateKeyAndHash that panics if the random
// source fails.
func (g *Generator) MustGenerateKeyAndHash() (*Key, string) {
	key, hash, err := g.GenerateKeyAndHash()
	if err != nil {
		panic(err)
	}
	return key, hash
}

// HashOf returns the hash of key's long token using the configured digest.
// A nil key hashes to the empty string.
func (g *Generator) HashOf(key *Key) string {
	if key == nil {
		return ""
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return key.HashedLongToken(g.digest)
}

// CheckHash reports whether hash is the hash of key's long token.
//
// The comparison takes the same time wherever the two values first differ.
// Any mismatch, including a malformed hash, is simply false.
func (g *Generator) CheckHash(key *Key, hash string) bool {
	if key == nil {
		return false
	}
	actual := g.HashOf(key)
	return subtle.ConstantTimeCompare([]byte(actual), []byte(hash)) == 1
}

// truncate returns the first n characters of s.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
