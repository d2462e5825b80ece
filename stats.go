package megahash

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Stats is a snapshot of the four memory-accounting counters plus a
// reindex counter that is not part of spec.md's core four but is useful
// operational signal for the same reason store/index.go tracks GC/translate
// progress: it tells a caller how much local restructuring has happened.
type Stats struct {
	// NumKeys is the number of distinct keys currently stored.
	NumKeys int
	// IndexSize is the live byte footprint of index nodes.
	IndexSize int64
	// MetaSize is the live byte footprint of bucket headers.
	MetaSize int64
	// DataSize is the live byte footprint of packed (key, value) records.
	DataSize int64
	// ReindexCount is the number of reindex operations performed since
	// construction or the last Clear.
	ReindexCount int64
}

// String renders a human-readable summary, grounded in
// index-slot-to-cid.go's use of humanize.Comma for item counts; purely a
// debug/observability convenience, never consulted on a hot path.
func (s Stats) String() string {
	return fmt.Sprintf(
		"keys=%s index=%s meta=%s data=%s reindexes=%s",
		humanize.Comma(int64(s.NumKeys)),
		humanize.Bytes(uint64(s.IndexSize)),
		humanize.Bytes(uint64(s.MetaSize)),
		humanize.Bytes(uint64(s.DataSize)),
		humanize.Comma(s.ReindexCount),
	)
}

// Total returns the sum of IndexSize, MetaSize and DataSize: the total live
// memory the table is currently accounting for.
func (s Stats) Total() int64 {
	return s.IndexSize + s.MetaSize + s.DataSize
}
