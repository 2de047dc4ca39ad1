package pak

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Separator joins the three parts of a key.
const Separator = "_"

// mask replaces the long token in every loggable form of a Key.
const mask = "***"

// Key is a prefixed API key: a public prefix, a public short token and a
// secret long token.
//
// A Key never prints its long token. String, GoString, the fmt verbs,
// slog and JSON all show "***" in its place; FullString is the only way to
// get the complete credential back.
type Key struct {
	prefix     string
	shortToken string
	longToken  string
}

// NewKey constructs a key from its parts. The parts are not validated.
func NewKey(prefix, shortToken, longToken string) *Key {
	return &Key{
		prefix:     prefix,
		shortToken: shortToken,
		longToken:  longToken,
	}
}

// ParseKey parses the text form "<prefix>_<short>_<long>".
//
// It only checks that the text splits into exactly three parts; the parts
// themselves are taken as-is.
func ParseKey(s string) (*Key, error) {
	parts := strings.Split(s, Separator)
	if len(parts) != 3 {
		return nil, &MalformedKeyError{Segments: len(parts)}
	}
	return NewKey(parts[0], parts[1], parts[2]), nil
}

// Prefix returns the key prefix.
func (k Key) Prefix() string { return k.prefix }

// ShortToken returns the public short token.
func (k Key) ShortToken() string { return k.shortToken }

// LongToken returns the secret long token.
func (k Key) LongToken() string { return k.longToken }

// FullString returns the complete key including the secret long token.
// This is the value handed to the key's owner, never to a log.
func (k Key) FullString() string {
	return k.prefix + Separator + k.shortToken + Separator + k.longToken
}

// String returns the key with the long token masked.
func (k Key) String() string {
	return k.prefix + Separator + k.shortToken + Separator + mask
}

// GoString masks the long token for %#v.
func (k Key) GoString() string {
	return fmt.Sprintf("pak.Key{Prefix:%q, ShortToken:%q, LongToken:%q}", k.prefix, k.shortToken, mask)
}

// LogValue implements slog.LogValuer.
func (k Key) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("prefix", k.prefix),
		slog.String("short_token", k.shortToken),
		slog.String("long_token", mask),
	)
}

// MarshalJSON encodes the masked form of the key.
func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Prefix     string `json:"prefix"`
		ShortToken string `json:"short_token"`
		LongToken  string `json:"long_token"`
	}{k.prefix, k.shortToken, mask})
}

// Equal reports whether both keys have identical parts.
func (k *Key) Equal(other *Key) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.prefix == other.prefix &&
		k.shortToken == other.shortToken &&
		k.longToken == other.longToken
}

// HashedLongToken hashes the long token with d and returns lowercase hex.
//
// d is reset after finalizing, so the same digest can be handed to the
// next, unrelated call without reinitialization.
func (k Key) HashedLongToken(d Digest) string {
	d.Write([]byte(k.longToken))
	sum := d.Sum(nil)
	d.Reset()
	return hex.EncodeToString(sum)
}
