// Package megahash is an in-process, in-memory associative store mapping
// arbitrary byte-string keys to arbitrary byte-string values. It is built
// on a digit-trie of fan-out-16 index nodes over an 8-nibble digest, with
// linear bucket chains at the leaves that are promoted into deeper index
// nodes when they grow past a configurable threshold.
//
// The store is single-threaded: Hash exposes no internal locking, and all
// operations are non-reentrant. Concurrent callers must provide their own
// synchronization; concurrent readers with no writer are not a supported
// mode either, since iteration's resume point can be invalidated by any
// intervening Store or Remove.
package megahash

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/anudeepreddy/megahash/internal/digest"
	"github.com/anudeepreddy/megahash/internal/trie"
)

const (
	// DefaultMaxBuckets is the advisory chain-length threshold at which a
	// chain is promoted into a deeper index node.
	DefaultMaxBuckets = 16
	// DefaultReindexScatter is the additive slack applied to maxBuckets
	// while redistributing a saturated chain's buckets during reindex.
	DefaultReindexScatter = 1
	// reindexScatterCeiling bounds maxBuckets+reindexScatter; beyond it,
	// reindexScatter is reset to 1 to stop the widened acceptance
	// threshold from ever exceeding what a byte-addressed bucket count
	// can sensibly represent.
	reindexScatterCeiling = 256
)

// Hash is the public, in-memory key/value store described by this package.
// It is a thin wrapper around internal/trie.Trie, the way store.Store in
// this lineage wraps index.Index plus a primary storage backend.
type Hash struct {
	id uuid.UUID
	t  *trie.Trie
}

// Option configures a Hash at construction time.
type Option func(*config)

type config struct {
	maxBuckets     int
	reindexScatter int
	hasher         digest.Hasher
}

// WithMaxBuckets overrides the default advisory chain-length threshold.
// Values below 1 are clamped to 1.
func WithMaxBuckets(n int) Option {
	return func(c *config) { c.maxBuckets = n }
}

// WithReindexScatter overrides the default reindex acceptance slack.
// Values below 1 are clamped to 1.
func WithReindexScatter(n int) Option {
	return func(c *config) { c.reindexScatter = n }
}

// WithHasher overrides the digest algorithm. The default is the
// spec-mandated DJB2 hash (digest.DJB2Hasher); digest.XXHasher is a
// faster, still-unkeyed alternative. Swapping hashers does not change the
// external contract — the digest stays 8 nibbles regardless.
func WithHasher(h digest.Hasher) Option {
	return func(c *config) { c.hasher = h }
}

// New builds an empty Hash. Construction-time parameters are validated and
// clamped the way store/index.Open validates indexSizeBits/maxFileSize:
// out-of-range values are corrected rather than rejected.
func New(opts ...Option) *Hash {
	c := config{
		maxBuckets:     DefaultMaxBuckets,
		reindexScatter: DefaultReindexScatter,
		hasher:         digest.DJB2Hasher{},
	}
	for _, opt := range opts {
		opt(&c)
	}

	if c.maxBuckets < 1 {
		c.maxBuckets = 1
	}
	if c.reindexScatter < 1 {
		c.reindexScatter = 1
	}
	if c.maxBuckets+c.reindexScatter > reindexScatterCeiling {
		c.reindexScatter = 1
	}

	h := &Hash{
		id: uuid.New(),
		t:  trie.New(c.hasher, c.maxBuckets, c.reindexScatter),
	}
	log.Debugw("constructed hash table", "id", h.id, "maxBuckets", c.maxBuckets, "reindexScatter", c.reindexScatter)
	return h
}

// Store inserts or replaces key's value, tagging it with the given
// caller-defined flags byte. The result is ResultOK (interpreted as "add")
// for a brand new key, ResultReplace for an existing one, or ResultError if
// the record could not be built (the table is left unchanged).
func (h *Hash) Store(key, value []byte, flags byte) Response {
	added, err := h.t.Store(key, value, flags)
	if err != nil {
		log.Debugw("store failed", "id", h.id, "err", err)
		return Response{Result: ResultError}
	}
	if added {
		return Response{Result: ResultOK}
	}
	return Response{Result: ResultReplace}
}

// StoreErr behaves exactly like Store but additionally returns the
// underlying cause on failure, wrapped around ErrAllocation, for callers
// that want more than ResultError's yes/no. Most callers should prefer
// Store; this exists for the same reason ClearSlice returns an error
// instead of a Response — the failure is a caller-programming concern
// (oversized input), not a data-plane outcome.
func (h *Hash) StoreErr(key, value []byte, flags byte) (Response, error) {
	added, err := h.t.Store(key, value, flags)
	if err != nil {
		log.Debugw("store failed", "id", h.id, "err", err)
		return Response{Result: ResultError}, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	if added {
		return Response{Result: ResultOK}, nil
	}
	return Response{Result: ResultReplace}, nil
}

// Fetch looks up key. On success, Response.Content borrows the stored
// value and Response.Flags carries the stored flags byte; the borrow is
// valid until the next mutating call on h.
func (h *Hash) Fetch(key []byte) Response {
	val, flags, ok := h.t.Fetch(key)
	if !ok {
		return Response{Result: ResultError}
	}
	return Response{Result: ResultOK, Flags: flags, Content: val}
}

// Remove deletes key if present. The surrounding index is never
// contracted, only the emptied chain slot.
func (h *Hash) Remove(key []byte) Response {
	if !h.t.Remove(key) {
		return Response{Result: ResultError}
	}
	return Response{Result: ResultOK}
}

// FirstKey returns the key of the first entry in digest-driven traversal
// order, or ResultError if the table is empty.
func (h *Hash) FirstKey() Response {
	key, ok := h.t.FirstKey()
	if !ok {
		return Response{Result: ResultError}
	}
	return Response{Result: ResultOK, Content: key}
}

// NextKey returns the key that immediately follows previousKey in
// traversal order, or ResultError if previousKey was last (end of
// iteration) or is not present. Any Store/Remove between a FirstKey/NextKey
// pair may invalidate the resume point.
func (h *Hash) NextKey(previousKey []byte) Response {
	key, ok := h.t.NextKey(previousKey)
	if !ok {
		return Response{Result: ResultError}
	}
	return Response{Result: ResultOK, Content: key}
}

// Clear releases the entire trie and resets stats.
func (h *Hash) Clear() {
	h.t.Clear()
	log.Debugw("cleared hash table", "id", h.id)
}

// ClearSlice releases only the subtree reachable from root slot n
// (0..15), leaving the rest of the trie intact. This supports a
// coarse-grained partitioned teardown for callers sharding by top nibble.
func (h *Hash) ClearSlice(n int) error {
	if err := h.t.ClearSlice(n); err != nil {
		return fmt.Errorf("megahash: %w", err)
	}
	log.Debugw("cleared hash table slice", "id", h.id, "slice", n)
	return nil
}

// Stats returns a snapshot of the table's memory-accounting counters.
func (h *Hash) Stats() Stats {
	numKeys, indexSize, metaSize, dataSize, reindexCount := h.t.Stats()
	return Stats{
		NumKeys:      numKeys,
		IndexSize:    indexSize,
		MetaSize:     metaSize,
		DataSize:     dataSize,
		ReindexCount: reindexCount,
	}
}
