package megahash

import "iter"

// Keys returns a Go range-over-func sequence that walks every currently
// stored key in digest-driven traversal order, built on top of
// FirstKey/NextKey. It is additive sugar, not a replacement: the resumable
// two-call protocol is still the primitive, and this wrapper is subject to
// the same not-stable-under-concurrent-mutation caveat. Grounded in the
// iter.Seq-based walk surface of this pack's geche trie cache
// (KVCache.ListByPrefix).
func (h *Hash) Keys() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		resp := h.FirstKey()
		for resp.Result == ResultOK {
			if !yield(resp.Content) {
				return
			}
			resp = h.NextKey(resp.Content)
		}
	}
}
