package pak

import (
	"crypto/rand"
	"errors"
	"io"
	"sort"

	"golang.org/x/crypto/chacha20"
)

// RandomSource fills buffers with unpredictable bytes.
//
// crypto/rand.Reader is the usual choice. A source that returns an error
// or a short read with an error makes key generation fail; the generator
// never retries a failed draw.
type RandomSource interface {
	io.Reader
}

// Random source names understood by NewRandomSource.
const (
	RandomOS       = "osrng"
	RandomChaCha20 = "chacha20"
)

// DefaultRandomSource is the random source used when none is named.
const DefaultRandomSource = RandomOS

var randomConstructors = map[string]func() (RandomSource, error){
	RandomOS:       func() (RandomSource, error) { return OSRandom(), nil },
	RandomChaCha20: NewChaCha20Random,
}

// NewRandomSource returns a random source for a registered name.
func NewRandomSource(name string) (RandomSource, error) {
	ctor, ok := randomConstructors[name]
	if !ok {
		return nil, ErrUnknownRandomSource.WithDetails(name)
	}
	return ctor()
}

// RandomSourceNames returns the registered random source names, sorted.
func RandomSourceNames() []string {
	names := make([]string, 0, len(randomConstructors))
	for name := range randomConstructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OSRandom returns the operating system CSPRNG.
func OSRandom() RandomSource {
	return rand.Reader
}

// chacha20Limit is the keystream length after which the 32-bit block
// counter would wrap.
const chacha20Limit = uint64(1) << 38

var errChaCha20Exhausted = errors.New("chacha20 keystream exhausted")

// ChaCha20Random is a userspace CSPRNG: a ChaCha20 keystream keyed once
// from the operating system. It avoids a syscall per draw and fails,
// rather than wrapping, once its keystream is used up.
type ChaCha20Random struct {
	cipher   *chacha20.Cipher
	produced uint64
}

// NewChaCha20Random keys a new ChaCha20Random from crypto/rand.
func NewChaCha20Random() (RandomSource, error) {
	seed := make([]byte, chacha20.KeySize+chacha20.NonceSize)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, ErrRandomnessUnavailable.WithCause(err)
	}
	return newChaCha20Random(seed[:chacha20.KeySize], seed[chacha20.KeySize:])
}

func newChaCha20Random(key, nonce []byte) (*ChaCha20Random, error) {
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, ErrRandomnessUnavailable.WithCause(err)
	}
	return &ChaCha20Random{cipher: c}, nil
}

// Read fills p with keystream bytes.
func (r *ChaCha20Random) Read(p []byte) (int, error) {
	if r.produced+uint64(len(p)) > chacha20Limit {
		return 0, errChaCha20Exhausted
	}
	clear(p)
	r.cipher.XORKeyStream(p, p)
	r.produced += uint64(len(p))
	return len(p), nil
}

// readRandom draws exactly n bytes from src.
func readRandom(src RandomSource, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(src, buf); err != nil {
		return nil, ErrRandomnessUnavailable.WithCause(err)
	}
	return buf, nil
}
