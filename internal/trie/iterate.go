package trie

import (
	"github.com/anudeepreddy/megahash/internal/digest"
	"github.com/anudeepreddy/megahash/internal/record"
)

// frame records a parent node and the slot already visited within it, so
// that nextKey's resume walk can pop back up and continue scanning
// ascending slots — an explicit descent stack standing in for the source's
// recursive "found, now return the next leaf" flag.
type frame struct {
	node *indexNode
	slot int
}

// FirstKey returns the key of the first bucket in ascending-slot,
// link-order traversal, or ok=false if the trie is empty.
func (t *Trie) FirstKey() (key []byte, ok bool) {
	return findFirstFrom(t.root, 0)
}

// findFirstFrom scans node's slots starting at 'from', descending into any
// index node it encounters, and returns the first key reachable.
func findFirstFrom(node *indexNode, from int) ([]byte, bool) {
	for s := from; s < fanout; s++ {
		sl := &node.slots[s]
		switch sl.kind {
		case tagIndex:
			if k, ok := findFirstFrom(sl.index, 0); ok {
				return k, true
			}
		case tagBucket:
			return record.Key(sl.chain.rec), true
		}
	}
	return nil, false
}

// NextKey returns the key immediately following previousKey in traversal
// order. It re-descends using previousKey's own digest to relocate it, then
// resumes the in-order walk from there. Any Store/Remove between a
// FirstKey/NextKey pair may invalidate the resume point; this is not
// stable under concurrent mutation.
func (t *Trie) NextKey(previousKey []byte) (key []byte, ok bool) {
	d := digest.Of(t.hasher, previousKey)
	var stack []frame
	cur := t.root

	for i := 0; i < digest.Size; i++ {
		s := int(d[i])
		sl := &cur.slots[s]
		switch sl.kind {
		case tagEmpty:
			return nil, false

		case tagIndex:
			stack = append(stack, frame{node: cur, slot: s})
			cur = sl.index
			continue

		case tagBucket:
			b := sl.chain
			for b != nil && !record.KeyEquals(b.rec, previousKey) {
				b = b.next
			}
			if b == nil {
				return nil, false
			}
			if b.next != nil {
				return record.Key(b.next.rec), true
			}
			if k, ok := findFirstFrom(cur, s+1); ok {
				return k, true
			}
			return resumeFromStack(stack)
		}
	}
	return nil, false
}

// resumeFromStack pops ancestor frames looking for the next occupied slot
// after the one already visited at each level.
func resumeFromStack(stack []frame) ([]byte, bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		f := stack[i]
		if k, ok := findFirstFrom(f.node, f.slot+1); ok {
			return k, true
		}
	}
	return nil, false
}
