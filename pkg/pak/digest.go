package pak

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"io"
	"sort"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// Digest is a reusable cryptographic hash.
//
// Every hash.Hash satisfies Digest. The generator writes the long token,
// calls Sum, then Reset, so one instance serves any number of hashes.
type Digest interface {
	io.Writer
	Sum(b []byte) []byte
	Reset()
}

// Digest names understood by NewDigest.
const (
	DigestSHA224     = "sha224"
	DigestSHA256     = "sha256"
	DigestSHA384     = "sha384"
	DigestSHA512     = "sha512"
	DigestSHA512_224 = "sha512_224"
	DigestSHA512_256 = "sha512_256"
	DigestSHA3_256   = "sha3_256"
	DigestSHA3_512   = "sha3_512"
	DigestBLAKE2b256 = "blake2b_256"
	DigestBLAKE2b512 = "blake2b_512"
	DigestBLAKE2s256 = "blake2s_256"
)

// DefaultDigest is the digest used when none is named.
const DefaultDigest = DigestSHA256

var digestConstructors = map[string]func() hash.Hash{
	DigestSHA224:     sha256.New224,
	DigestSHA256:     sha256.New,
	DigestSHA384:     sha512.New384,
	DigestSHA512:     sha512.New,
	DigestSHA512_224: sha512.New512_224,
	DigestSHA512_256: sha512.New512_256,
	DigestSHA3_256:   sha3.New256,
	DigestSHA3_512:   sha3.New512,
	DigestBLAKE2b256: func() hash.Hash { return mustKeyless(blake2b.New256(nil)) },
	DigestBLAKE2b512: func() hash.Hash { return mustKeyless(blake2b.New512(nil)) },
	DigestBLAKE2s256: func() hash.Hash { return mustKeyless(blake2s.New256(nil)) },
}

// mustKeyless unwraps the BLAKE2 constructors, which only fail for
// oversized keys and are always called with a nil key here.
func mustKeyless(h hash.Hash, err error) hash.Hash {
	if err != nil {
		panic("pak: keyless blake2 constructor failed: " + err.Error())
	}
	return h
}

// NewDigest returns a fresh digest for a registered name.
func NewDigest(name string) (Digest, error) {
	ctor, ok := digestConstructors[name]
	if !ok {
		return nil, ErrUnknownDigest.WithDetails(name)
	}
	return ctor(), nil
}

// DigestNames returns the registered digest names, sorted.
func DigestNames() []string {
	names := make([]string, 0, len(digestConstructors))
	for name := range digestConstructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FreshDigest adapts a hash constructor whose instances cannot be reset in
// place. Reset discards the current instance and builds a new one.
func FreshDigest(ctor func() hash.Hash) Digest {
	return &freshDigest{ctor: ctor, h: ctor()}
}

type freshDigest struct {
	ctor func() hash.Hash
	h    hash.Hash
}

func (d *freshDigest) Write(p []byte) (int, error) { return d.h.Write(p) }

func (d *freshDigest) Sum(b []byte) []byte { return d.h.Sum(b) }

func (d *freshDigest) Reset() { d.h = d.ctor() }
