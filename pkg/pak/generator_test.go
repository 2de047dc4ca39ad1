package pak

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/mr-tron/base58"
)

// fixedBytes returns n bytes counting up from start.
func fixedBytes(start byte, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = start + byte(i)
	}
	return b
}

// failingReader fails every read.
type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

// countingReader records how often it was asked for bytes.
type countingReader struct {
	calls int
	err   error
}

func (r *countingReader) Read([]byte) (int, error) {
	r.calls++
	return 0, r.err
}

func newTestGenerator(t *testing.T, random RandomSource, shortPrefix string, shortLen, longLen int) *Generator {
	t.Helper()
	gen, err := NewBuilder().
		Prefix("mycompany").
		RandomSource(random).
		DigestSHA256().
		ShortTokenPrefix(shortPrefix).
		ShortTokenLength(shortLen).
		LongTokenLength(longLen).
		Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return gen
}

func TestGenerator_GenerateKey_Deterministic(t *testing.T) {
	stream := append(fixedBytes(1, 8), fixedBytes(9, 24)...)
	gen := newTestGenerator(t, bytes.NewReader(stream), "", 8, 24)

	key, err := gen.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}

	if key.Prefix() != "mycompany" {
		t.Errorf("Prefix() = %q, want %q", key.Prefix(), "mycompany")
	}
	// base58(01..08) = "An6UebxCZd", cut to 8 characters.
	if key.ShortToken() != "An6UebxC" {
		t.Errorf("ShortToken() = %q, want %q", key.ShortToken(), "An6UebxC")
	}
	if key.LongToken() != "po7Y9JpQpmpFeGs8pZkc8x3t148gPpGX" {
		t.Errorf("LongToken() = %q, want %q", key.LongToken(), "po7Y9JpQpmpFeGs8pZkc8x3t148gPpGX")
	}
}

func TestGenerator_GenerateKey_RoundTrip(t *testing.T) {
	gen := newTestGenerator(t, rand.Reader, "", 8, 24)

	key, err := gen.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}

	parsed, err := ParseKey(key.FullString())
	if err != nil {
		t.Fatalf("ParseKey() error = %v", err)
	}
	if parsed.FullString() != key.FullString() {
		t.Errorf("round trip = %q, want %q", parsed.FullString(), key.FullString())
	}
}

func TestGenerator_LengthContract(t *testing.T) {
	tests := []struct {
		name      string
		shortLen  int
		longLen   int
		shortPref string
	}{
		{"defaults", 8, 24, ""},
		{"tiny", 1, 1, ""},
		{"long", 32, 64, ""},
		{"with short prefix", 12, 24, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newTestGenerator(t, rand.Reader, tt.shortPref, tt.shortLen, tt.longLen)

			for i := 0; i < 50; i++ {
				key, err := gen.GenerateKey()
				if err != nil {
					t.Fatalf("GenerateKey() error = %v", err)
				}

				if got := len([]rune(key.ShortToken())); got != tt.shortLen {
					t.Errorf("short token %q length = %d, want %d", key.ShortToken(), got, tt.shortLen)
				}
				if !strings.HasPrefix(key.ShortToken(), tt.shortPref) {
					t.Errorf("short token %q missing prefix %q", key.ShortToken(), tt.shortPref)
				}

				decoded, err := base58.Decode(key.LongToken())
				if err != nil {
					t.Fatalf("long token %q is not base58: %v", key.LongToken(), err)
				}
				if len(decoded) != tt.longLen {
					t.Errorf("decoded long token length = %d, want %d", len(decoded), tt.longLen)
				}
			}
		})
	}
}

func TestGenerator_ShortTokenLength_AllZeroBytes(t *testing.T) {
	// Leading zero bytes encode to '1' and must not shorten the token.
	gen := newTestGenerator(t, bytes.NewReader(make([]byte, 8+24)), "", 8, 24)

	key, err := gen.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	if key.ShortToken() != "11111111" {
		t.Errorf("ShortToken() = %q, want %q", key.ShortToken(), "11111111")
	}
	if key.LongToken() != strings.Repeat("1", 24) {
		t.Errorf("LongToken() = %q, want 24 '1's", key.LongToken())
	}
}

func TestGenerator_NoSeparatorInTokens(t *testing.T) {
	gen := newTestGenerator(t, rand.Reader, "", 8, 24)

	for i := 0; i < 100; i++ {
		key := gen.MustGenerateKey()
		if strings.Contains(key.ShortToken(), Separator) || strings.Contains(key.LongToken(), Separator) {
			t.Fatalf("generated token contains separator: %q", key.FullString())
		}
	}
}

func TestGenerator_ShortTokenPrefixTruncation(t *testing.T) {
	shortPrefix := strings.Repeat("a", 8)
	gen := newTestGenerator(t, rand.Reader, shortPrefix, 8, 24)

	for i := 0; i < 10; i++ {
		key, err := gen.GenerateKey()
		if err != nil {
			t.Fatalf("GenerateKey() error = %v", err)
		}
		if key.ShortToken() != shortPrefix {
			t.Errorf("ShortToken() = %q, want %q", key.ShortToken(), shortPrefix)
		}
	}

	if !gen.PrefixConsumesShortToken() {
		t.Error("PrefixConsumesShortToken() = false, want true")
	}
}

func TestGenerator_ShortTokenPrefixLongerThanLength(t *testing.T) {
	gen := newTestGenerator(t, rand.Reader, "abcdefghij", 4, 24)

	key := gen.MustGenerateKey()
	if key.ShortToken() != "abcd" {
		t.Errorf("ShortToken() = %q, want %q", key.ShortToken(), "abcd")
	}
}

func TestGenerator_ShortTokenPrefixPartial(t *testing.T) {
	stream := append(fixedBytes(1, 8), fixedBytes(9, 24)...)
	gen := newTestGenerator(t, bytes.NewReader(stream), "zz", 8, 24)

	key := gen.MustGenerateKey()
	if key.ShortToken() != "zzAn6Ueb" {
		t.Errorf("ShortToken() = %q, want %q", key.ShortToken(), "zzAn6Ueb")
	}
	if gen.PrefixConsumesShortToken() {
		t.Error("PrefixConsumesShortToken() = true, want false")
	}
}

func TestGenerator_LongTokenHasNoShortPrefix(t *testing.T) {
	gen := newTestGenerator(t, rand.Reader, "zzzz", 8, 24)

	for i := 0; i < 20; i++ {
		key := gen.MustGenerateKey()
		if _, err := base58.Decode(key.LongToken()); err != nil {
			t.Fatalf("long token %q is not pure base58", key.LongToken())
		}
	}
}

func TestGenerator_GenerateKeyAndHash(t *testing.T) {
	gen := newTestGenerator(t, rand.Reader, "", 8, 24)

	key, hash, err := gen.GenerateKeyAndHash()
	if err != nil {
		t.Fatalf("GenerateKeyAndHash() error = %v", err)
	}
	if !gen.CheckHash(key, hash) {
		t.Error("CheckHash() = false for freshly generated key")
	}
	if hash != gen.HashOf(key) {
		t.Errorf("hash = %q, HashOf() = %q", hash, gen.HashOf(key))
	}
}

func TestGenerator_HashOf_Golden(t *testing.T) {
	gen := newTestGenerator(t, rand.Reader, "", 8, 24)
	key, _ := ParseKey(goldenKey)

	if got := gen.HashOf(key); got != goldenHash {
		t.Errorf("HashOf() = %q, want %q", got, goldenHash)
	}
}

func TestGenerator_DigestResetsBetweenCalls(t *testing.T) {
	gen := newTestGenerator(t, rand.Reader, "", 8, 24)
	key1, _ := ParseKey(goldenKey)
	key2, _ := ParseKey(goldenKey)

	if got := gen.HashOf(key1); got != goldenHash {
		t.Errorf("first HashOf() = %q, want %q", got, goldenHash)
	}
	if got := gen.HashOf(key2); got != goldenHash {
		t.Errorf("second HashOf() = %q, want %q", got, goldenHash)
	}

	// Generating keys in between must not disturb the digest either.
	gen.MustGenerateKeyAndHash()
	if got := gen.HashOf(key1); got != goldenHash {
		t.Errorf("HashOf() after generation = %q, want %q", got, goldenHash)
	}
}

func TestGenerator_CheckHash(t *testing.T) {
	gen := newTestGenerator(t, rand.Reader, "", 8, 24)
	key, _ := ParseKey(goldenKey)

	tests := []struct {
		name string
		hash string
		want bool
	}{
		{"matching", goldenHash, true},
		{"not the hash", "not-the-hash", false},
		{"empty", "", false},
		{"uppercase", strings.ToUpper(goldenHash), false},
		{"truncated", goldenHash[:63], false},
		{"extended", goldenHash + "0", false},
		{"last char differs", goldenHash[:63] + "f", false},
		{"non-hex", strings.Repeat("z", 64), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gen.CheckHash(key, tt.hash); got != tt.want {
				t.Errorf("CheckHash(%q) = %v, want %v", tt.hash, got, tt.want)
			}
		})
	}
}

func TestGenerator_CheckHash_NilKey(t *testing.T) {
	gen := newTestGenerator(t, rand.Reader, "", 8, 24)

	if gen.CheckHash(nil, goldenHash) {
		t.Error("CheckHash(nil) = true, want false")
	}
	if gen.HashOf(nil) != "" {
		t.Error("HashOf(nil) should be empty")
	}
}

func TestGenerator_RandomnessFailure(t *testing.T) {
	cause := errors.New("entropy pool exhausted")
	gen := newTestGenerator(t, failingReader{err: cause}, "", 8, 24)

	key, err := gen.GenerateKey()
	if key != nil {
		t.Errorf("GenerateKey() key = %v, want nil", key)
	}
	if !errors.Is(err, ErrRandomnessUnavailable) {
		t.Fatalf("GenerateKey() error = %v, want ErrRandomnessUnavailable", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error should wrap the random source failure")
	}

	_, hash, err := gen.GenerateKeyAndHash()
	if !errors.Is(err, ErrRandomnessUnavailable) || hash != "" {
		t.Errorf("GenerateKeyAndHash() = %q, %v", hash, err)
	}
}

func TestGenerator_RandomnessFailure_NoRetry(t *testing.T) {
	r := &countingReader{err: errors.New("boom")}
	gen := newTestGenerator(t, r, "", 8, 24)

	if _, err := gen.GenerateKey(); err == nil {
		t.Fatal("GenerateKey() error = nil, want failure")
	}
	if r.calls != 1 {
		t.Errorf("random source read %d times, want exactly 1", r.calls)
	}
}

func TestGenerator_ShortRead(t *testing.T) {
	// Enough bytes for the short token only.
	gen := newTestGenerator(t, bytes.NewReader(fixedBytes(1, 8)), "", 8, 24)

	if _, err := gen.GenerateKey(); !errors.Is(err, ErrRandomnessUnavailable) {
		t.Errorf("GenerateKey() error = %v, want ErrRandomnessUnavailable", err)
	}
}

func TestGenerator_MustGenerateKey_Panics(t *testing.T) {
	gen := newTestGenerator(t, failingReader{err: errors.New("boom")}, "", 8, 24)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustGenerateKey() did not panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrRandomnessUnavailable) {
			t.Errorf("panic value = %v, want ErrRandomnessUnavailable", r)
		}
	}()
	gen.MustGenerateKey()
}

func TestGenerator_MustGenerateKeyAndHash_Panics(t *testing.T) {
	gen := newTestGenerator(t, failingReader{err: errors.New("boom")}, "", 8, 24)

	defer func() {
		if recover() == nil {
			t.Fatal("MustGenerateKeyAndHash() did not panic")
		}
	}()
	gen.MustGenerateKeyAndHash()
}

func TestGenerator_Uniqueness(t *testing.T) {
	gen := newTestGenerator(t, rand.Reader, "", 8, 24)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		key := gen.MustGenerateKey()
		if seen[key.LongToken()] {
			t.Fatalf("duplicate long token: %s", key)
		}
		seen[key.LongToken()] = true
	}
}

func TestGenerator_Concurrent(t *testing.T) {
	gen := newTestGenerator(t, rand.Reader, "", 8, 24)
	golden, _ := ParseKey(goldenKey)

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				key, hash, err := gen.GenerateKeyAndHash()
				if err != nil {
					errs <- err.Error()
					return
				}
				if !gen.CheckHash(key, hash) {
					errs <- "hash mismatch for " + key.String()
					return
				}
				if gen.HashOf(golden) != goldenHash {
					errs <- "golden hash drifted under concurrency"
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}

func TestNewGenerator_Direct(t *testing.T) {
	gen := NewGenerator("mycompany", rand.Reader, sha256.New(), "", 8, 24)

	if gen.Prefix() != "mycompany" || gen.ShortTokenLength() != 8 || gen.LongTokenLength() != 24 || gen.ShortTokenPrefix() != "" {
		t.Errorf("accessors = %q %d %d %q", gen.Prefix(), gen.ShortTokenLength(), gen.LongTokenLength(), gen.ShortTokenPrefix())
	}

	key, hash := gen.MustGenerateKeyAndHash()
	if !gen.CheckHash(key, hash) {
		t.Error("CheckHash() = false")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"abcdef", 3, "abc"},
		{"abc", 3, "abc"},
		{"ab", 3, "ab"},
		{"abc", 0, ""},
		{"héllo", 2, "hé"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func BenchmarkGenerateKey(b *testing.B) {
	gen, _ := NewBuilder().Prefix("bench").StandardDefaults().Finalize()
	for i := 0; i < b.N; i++ {
		gen.GenerateKey()
	}
}

func BenchmarkGenerateKeyAndHash(b *testing.B) {
	gen, _ := NewBuilder().Prefix("bench").StandardDefaults().Finalize()
	for i := 0; i < b.N; i++ {
		gen.GenerateKeyAndHash()
	}
}

func BenchmarkCheckHash(b *testing.B) {
	gen, _ := NewBuilder().Prefix("bench").StandardDefaults().Finalize()
	key, _ := ParseKey(goldenKey)
	for i := 0; i < b.N; i++ {
		gen.CheckHash(key, goldenHash)
	}
}
