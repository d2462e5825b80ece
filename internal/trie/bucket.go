package trie

import "github.com/anudeepreddy/megahash/internal/record"

// findInChain returns the bucket whose packed record's key matches key, or
// nil if no such bucket is in the chain. First match wins, which is moot
// since store guarantees unique keys per chain.
func findInChain(head *bucketNode, key []byte) *bucketNode {
	for b := head; b != nil; b = b.next {
		if record.KeyEquals(b.rec, key) {
			return b
		}
	}
	return nil
}
