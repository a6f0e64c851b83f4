package service

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"

	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
)

// RawSum is a digest's native byte output. Hex encodes each byte as two lowercase
// hex digits, concatenated in byte order (0x0a becomes "0a").
type RawSum []byte

// Hex implements Sum.
func (s RawSum) Hex() string {
	return hex.EncodeToString(s)
}

// EncodedSum is output that is already lowercase hex and is returned verbatim.
type EncodedSum string

// Hex implements Sum.
func (s EncodedSum) Hex() string {
	return string(s)
}

// hashDigest adapts a standard hash.Hash.
type hashDigest struct {
	h hash.Hash
}

func (d *hashDigest) Write(p []byte) (int, error) {
	return d.h.Write(p)
}

func (d *hashDigest) Sum() Sum {
	return RawSum(d.h.Sum(nil))
}

// blake3Digest goes straight to the encoded form instead of handing raw bytes to the
// shared encoding step.
type blake3Digest struct {
	h *blake3.Hasher
}

func (d *blake3Digest) Write(p []byte) (int, error) {
	return d.h.Write(p)
}

func (d *blake3Digest) Sum() Sum {
	return EncodedSum(fmt.Sprintf("%x", d.h.Sum(nil)))
}

type digestFactory func() Digest

func fromHash(newHash func() hash.Hash) digestFactory {
	return func() Digest {
		return &hashDigest{h: newHash()}
	}
}

// digests is the dispatch table of the registry. init checks it against
// recipeDomain.Algorithms() so a variant without an entry fails at startup.
var digests = map[recipeDomain.Algorithm]digestFactory{
	recipeDomain.SHA256:   fromHash(sha256.New),
	recipeDomain.SHA512:   fromHash(sha512.New),
	recipeDomain.SHA3_256: fromHash(sha3.New256),
	recipeDomain.SHA3_512: fromHash(sha3.New512),
	recipeDomain.BLAKE2b_512: fromHash(func() hash.Hash {
		// nil key never fails
		h, _ := blake2b.New512(nil)
		return h
	}),
	recipeDomain.BLAKE2s_256: fromHash(func() hash.Hash {
		h, _ := blake2s.New256(nil)
		return h
	}),
	recipeDomain.BLAKE3: func() Digest {
		return &blake3Digest{h: blake3.New(recipeDomain.BLAKE3.Size(), nil)}
	},
}

func init() {
	if err := validateRegistry(digests); err != nil {
		panic(err)
	}
}

func validateRegistry(table map[recipeDomain.Algorithm]digestFactory) error {
	for _, alg := range recipeDomain.Algorithms() {
		if _, ok := table[alg]; !ok {
			return fmt.Errorf("digest registry: no implementation for %s", alg)
		}
	}
	if len(table) != len(recipeDomain.Algorithms()) {
		return fmt.Errorf("digest registry: %d entries for %d algorithms", len(table), len(recipeDomain.Algorithms()))
	}
	return nil
}

// NewDigest returns a freshly initialized digest computation for alg.
// It panics if alg is not an enumerated algorithm; recipes only ever hold valid ones.
func NewDigest(alg recipeDomain.Algorithm) Digest {
	factory, ok := digests[alg]
	if !ok {
		panic(fmt.Sprintf("digest registry: unsupported algorithm %s", alg))
	}
	return factory()
}
