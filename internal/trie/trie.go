// Package trie implements the digit-trie-of-indexes-plus-bucket-chains
// engine: digest-driven descent, store/fetch/remove, local reindex of
// saturated chains into deeper index nodes, and the resumable
// firstKey/nextKey traversal. It is not safe for concurrent use; callers
// needing thread safety must provide their own synchronization.
package trie

import (
	"fmt"

	"github.com/anudeepreddy/megahash/internal/digest"
	"github.com/anudeepreddy/megahash/internal/record"
)

// Trie is the engine behind megahash.Hash. maxBuckets and reindexScatter
// are assumed already validated and clamped by the caller (megahash.New);
// this package trusts them as given.
type Trie struct {
	root           *indexNode
	hasher         digest.Hasher
	maxBuckets     int
	reindexScatter int

	numKeys   int
	indexSize int64
	metaSize  int64
	dataSize  int64

	reindexCount int64
}

// New builds an empty Trie. hasher derives the descent digest for every
// key; maxBuckets and reindexScatter govern the reindex policy of Store.
func New(hasher digest.Hasher, maxBuckets, reindexScatter int) *Trie {
	return &Trie{
		root:           &indexNode{},
		hasher:         hasher,
		maxBuckets:     maxBuckets,
		reindexScatter: reindexScatter,
		indexSize:      indexNodeBytes,
	}
}

// Stats reports the current memory-accounting counters.
func (t *Trie) Stats() (numKeys int, indexSize, metaSize, dataSize int64, reindexCount int64) {
	return t.numKeys, t.indexSize, t.metaSize, t.dataSize, t.reindexCount
}

// Store inserts or replaces key's value. added is true for a brand new key,
// false when an existing key's value was replaced (numKeys unchanged). An
// error here means the table is left exactly as it was before the call
// (packed-record encoding is the only failure mode at this layer).
func (t *Trie) Store(key, value []byte, flags byte) (added bool, err error) {
	rec, err := record.Encode(key, value)
	if err != nil {
		return false, fmt.Errorf("trie: store: %w", err)
	}

	d := digest.Of(t.hasher, key)
	cur := t.root
	i := 0
	for {
		s := d[i]
		sl := &cur.slots[s]
		switch sl.kind {
		case tagEmpty:
			sl.kind = tagBucket
			sl.chain = &bucketNode{flags: flags, rec: rec}
			t.numKeys++
			t.metaSize += bucketHeaderBytes
			t.dataSize += int64(len(rec))
			return true, nil

		case tagIndex:
			cur = sl.index
			i++
			continue

		case tagBucket:
			if existing := findInChain(sl.chain, key); existing != nil {
				t.dataSize -= int64(len(existing.rec))
				existing.rec = rec
				existing.flags = flags
				t.dataSize += int64(len(rec))
				return false, nil
			}

			if chainLen(sl.chain) >= t.maxBuckets && i < digest.Size-1 {
				t.reindexSlot(cur, s, i)
				// cur.slots[s] now holds an Index; re-examine it without
				// advancing i, which lands in the tagIndex case above.
				continue
			}

			sl.chain = &bucketNode{flags: flags, rec: rec, next: sl.chain}
			t.numKeys++
			t.metaSize += bucketHeaderBytes
			t.dataSize += int64(len(rec))
			return true, nil
		}
	}
}

// reindexSlot promotes the saturated chain at parent.slots[s] (found at
// descent depth d) into a new index node, redistributing its buckets by
// digest[d+1]. Sub-chains that would themselves still overflow get a
// widened acceptance threshold of maxBuckets+reindexScatter; only sub-chains
// exceeding that widened threshold are recursively reindexed immediately
// (this is what keeps a run of colliding digests from looping), everything
// else is left alone for the next Store that touches it.
func (t *Trie) reindexSlot(parent *indexNode, s byte, d int) {
	old := parent.slots[s].chain
	newIdx := &indexNode{}
	t.indexSize += indexNodeBytes
	t.reindexCount++

	for b, next := old, (*bucketNode)(nil); b != nil; b = next {
		next = b.next
		nibble := digest.Of(t.hasher, record.Key(b.rec))[d+1]
		tgt := &newIdx.slots[nibble]
		b.next = tgt.chain
		tgt.chain = b
		tgt.kind = tagBucket
	}
	parent.slots[s] = slot{kind: tagIndex, index: newIdx}

	if d+1 >= digest.Size-1 {
		return
	}
	threshold := t.maxBuckets + t.reindexScatter
	for n := range newIdx.slots {
		sl := &newIdx.slots[n]
		if sl.kind == tagBucket && chainLen(sl.chain) > threshold {
			t.reindexSlot(newIdx, byte(n), d+1)
		}
	}
}

// Fetch returns a borrowed view of key's stored value and flags. The
// returned slice must not be retained past the next mutating call on t.
func (t *Trie) Fetch(key []byte) (value []byte, flags byte, ok bool) {
	d := digest.Of(t.hasher, key)
	cur := t.root
	for i := 0; i < digest.Size; i++ {
		s := d[i]
		sl := &cur.slots[s]
		switch sl.kind {
		case tagEmpty:
			return nil, 0, false
		case tagIndex:
			cur = sl.index
			continue
		case tagBucket:
			b := findInChain(sl.chain, key)
			if b == nil {
				return nil, 0, false
			}
			return record.Value(b.rec), b.flags, true
		}
	}
	return nil, 0, false
}

// Remove deletes key if present. The slot is cleared if its chain becomes
// empty, but the surrounding index is never contracted.
func (t *Trie) Remove(key []byte) bool {
	d := digest.Of(t.hasher, key)
	cur := t.root
	for i := 0; i < digest.Size; i++ {
		s := d[i]
		sl := &cur.slots[s]
		switch sl.kind {
		case tagEmpty:
			return false
		case tagIndex:
			cur = sl.index
			continue
		case tagBucket:
			var prev *bucketNode
			for b := sl.chain; b != nil; b = b.next {
				if !record.KeyEquals(b.rec, key) {
					prev = b
					continue
				}
				if prev == nil {
					sl.chain = b.next
				} else {
					prev.next = b.next
				}
				if sl.chain == nil {
					sl.kind = tagEmpty
				}
				t.numKeys--
				t.metaSize -= bucketHeaderBytes
				t.dataSize -= int64(len(b.rec))
				return true
			}
			return false
		}
	}
	return false
}

// Clear releases the entire trie and resets all stats.
func (t *Trie) Clear() {
	t.root = &indexNode{}
	t.numKeys = 0
	t.indexSize = indexNodeBytes
	t.metaSize = 0
	t.dataSize = 0
	t.reindexCount = 0
}

// ClearSlice releases only the subtree under root slot n (0..fanout-1),
// leaving the rest of the trie intact.
func (t *Trie) ClearSlice(n int) error {
	if n < 0 || n >= fanout {
		return fmt.Errorf("trie: slice %d out of range [0,%d)", n, fanout)
	}
	sl := &t.root.slots[n]
	idxBytes, metaBytes, dataBytes, keys := releaseSlot(sl)
	t.indexSize -= idxBytes
	t.metaSize -= metaBytes
	t.dataSize -= dataBytes
	t.numKeys -= keys
	*sl = slot{}
	return nil
}

// releaseSlot computes, post-order, the bytes and key count that tearing
// down sl would free, without mutating anything.
func releaseSlot(sl *slot) (idxBytes, metaBytes, dataBytes int64, keys int) {
	switch sl.kind {
	case tagIndex:
		idxBytes += indexNodeBytes
		for i := range sl.index.slots {
			di, dm, dd, dk := releaseSlot(&sl.index.slots[i])
			idxBytes += di
			metaBytes += dm
			dataBytes += dd
			keys += dk
		}
	case tagBucket:
		for b := sl.chain; b != nil; b = b.next {
			metaBytes += bucketHeaderBytes
			dataBytes += int64(len(b.rec))
			keys++
		}
	}
	return
}
