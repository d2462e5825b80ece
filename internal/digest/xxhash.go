package digest

import "github.com/cespare/xxhash/v2"

// XXHasher is a faster, still-unkeyed alternative to DJB2Hasher, backed by
// github.com/cespare/xxhash/v2. Swapping the Hasher does not change the
// external contract of the trie: the digest stays 8 nibbles regardless of
// which 32 bits of the underlying sum feed it.
type XXHasher struct{}

// Sum returns the low 32 bits of the 64-bit xxhash sum of key.
func (XXHasher) Sum(key []byte) uint32 {
	h := xxhash.New()
	_, _ = h.Write(key)
	return uint32(h.Sum64())
}
