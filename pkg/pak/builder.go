package pak

import "fmt"

// Builder accumulates generator settings and validates them in Finalize.
//
// Setters are independent of each other and may be called in any order:
//
//	gen, err := pak.NewBuilder().
//		Prefix("mycompany").
//		OSRandom().
//		DigestSHA256().
//		DefaultLengths().
//		Finalize()
type Builder struct {
	prefix           *string
	random           RandomSource
	digest           Digest
	shortTokenPrefix string
	shortTokenLength *int
	longTokenLength  *int

	// err holds the first failure from a named preset; Finalize reports it.
	err error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Prefix sets the key prefix, usually the issuing company or system.
func (b *Builder) Prefix(prefix string) *Builder {
	b.prefix = &prefix
	return b
}

// RandomSource sets the source of key randomness.
func (b *Builder) RandomSource(random RandomSource) *Builder {
	b.random = random
	return b
}

// Digest sets the digest used to hash long tokens.
func (b *Builder) Digest(digest Digest) *Builder {
	b.digest = digest
	return b
}

// ShortTokenPrefix sets an optional prefix for short tokens. It counts
// toward the short token length and should leave room for randomness.
func (b *Builder) ShortTokenPrefix(prefix string) *Builder {
	b.shortTokenPrefix = prefix
	return b
}

// ShortTokenLength sets the short token length in characters.
func (b *Builder) ShortTokenLength(n int) *Builder {
	b.shortTokenLength = &n
	return b
}

// LongTokenLength sets the number of random bytes in the long token.
func (b *Builder) LongTokenLength(n int) *Builder {
	b.longTokenLength = &n
	return b
}

// DefaultLengths sets the short token length to 8 and the long token
// length to 24.
func (b *Builder) DefaultLengths() *Builder {
	return b.ShortTokenLength(DefaultShortTokenLength).LongTokenLength(DefaultLongTokenLength)
}

// OSRandom uses the operating system CSPRNG.
func (b *Builder) OSRandom() *Builder {
	return b.RandomSource(OSRandom())
}

// ChaCha20Random uses a ChaCha20 keystream keyed from the operating system.
func (b *Builder) ChaCha20Random() *Builder {
	return b.RandomNamed(RandomChaCha20)
}

// RandomNamed uses the random source registered under name. An unknown
// name is reported by Finalize.
func (b *Builder) RandomNamed(name string) *Builder {
	random, err := NewRandomSource(name)
	if err != nil {
		b.setErr(err)
		return b
	}
	return b.RandomSource(random)
}

// DigestSHA256 hashes long tokens with SHA-256.
func (b *Builder) DigestSHA256() *Builder {
	return b.DigestNamed(DigestSHA256)
}

// DigestNamed uses the digest registered under name. An unknown name is
// reported by Finalize.
func (b *Builder) DigestNamed(name string) *Builder {
	digest, err := NewDigest(name)
	if err != nil {
		b.setErr(err)
		return b
	}
	return b.Digest(digest)
}

// StandardDefaults configures SHA-256, the OS random source and the
// default lengths. Only the prefix is left to set.
func (b *Builder) StandardDefaults() *Builder {
	return b.DigestSHA256().OSRandom().DefaultLengths()
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Finalize validates the settings and returns a Generator.
//
// Required settings are checked in the order prefix, random source, digest,
// short token length, long token length; the first missing one is returned
// as a *MissingFieldError. Lengths must be positive.
func (b *Builder) Finalize() (*Generator, error) {
	if b.err != nil {
		return nil, b.err
	}

	switch {
	case b.prefix == nil:
		return nil, &MissingFieldError{Field: FieldPrefix}
	case b.random == nil:
		return nil, &MissingFieldError{Field: FieldRandomSource}
	case b.digest == nil:
		return nil, &MissingFieldError{Field: FieldDigest}
	case b.shortTokenLength == nil:
		return nil, &MissingFieldError{Field: FieldShortTokenLength}
	case b.longTokenLength == nil:
		return nil, &MissingFieldError{Field: FieldLongTokenLength}
	}

	if *b.shortTokenLength <= 0 {
		return nil, ErrInvalidConfig.WithDetails(fmt.Sprintf("%s must be positive, got %d", FieldShortTokenLength, *b.shortTokenLength))
	}
	if *b.longTokenLength <= 0 {
		return nil, ErrInvalidConfig.WithDetails(fmt.Sprintf("%s must be positive, got %d", FieldLongTokenLength, *b.longTokenLength))
	}

	return NewGenerator(
		*b.prefix,
		b.random,
		b.digest,
		b.shortTokenPrefix,
		*b.shortTokenLength,
		*b.longTokenLength,
	), nil
}
