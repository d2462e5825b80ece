package trie

// tagKind discriminates what a slot currently holds. A slot is the
// degenerate case of the source's single-inheritance Tag: at most one of
// Index or Bucket chain head is live per slot, never both.
type tagKind uint8

const (
	tagEmpty tagKind = iota
	tagIndex
	tagBucket
)

// fanout is the number of slots per index node: one per nibble value.
const fanout = 16

// indexNodeBytes approximates the live memory footprint of one indexNode,
// used for indexSize accounting. It is a fixed per-node overhead
// independent of how many of its slots are occupied.
const indexNodeBytes = int64(fanout * 24) // kind byte + two pointers per slot, rounded for alignment

// bucketHeaderBytes approximates the live memory footprint of one
// bucketNode's header (flags + record pointer + next pointer), excluding
// the packed record it points to (that is accounted for in dataSize).
const bucketHeaderBytes = int64(24)

// slot is one of the fanout cells of an indexNode: empty, a nested index,
// or the head of a bucket chain.
type slot struct {
	kind  tagKind
	index *indexNode
	chain *bucketNode
}

// indexNode is a fixed fan-out-16 branching node in the trie. It is created
// either as the root or by reindexSlot, and is never destroyed except by
// Clear/ClearSlice.
type indexNode struct {
	slots [fanout]slot
}

// bucketNode is one stored entry: a flags byte opaque to the trie, a
// pointer to its packed (key, value) record, and the next bucket sharing
// this slot's collision chain.
type bucketNode struct {
	flags byte
	rec   []byte
	next  *bucketNode
}

// chainLen walks a chain on demand; used only by the overflow check, never
// on the fetch/remove hot path.
func chainLen(head *bucketNode) int {
	n := 0
	for b := head; b != nil; b = b.next {
		n++
	}
	return n
}
