package trie

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anudeepreddy/megahash/internal/digest"
)

func newTestTrie(maxBuckets, reindexScatter int) *Trie {
	return New(digest.DJB2Hasher{}, maxBuckets, reindexScatter)
}

func TestStoreFetchAdd(t *testing.T) {
	tr := newTestTrie(16, 1)
	added, err := tr.Store([]byte("foo"), []byte("bar"), 0)
	require.NoError(t, err)
	assert.True(t, added)

	val, flags, ok := tr.Fetch([]byte("foo"))
	require.True(t, ok)
	assert.Equal(t, []byte("bar"), val)
	assert.Equal(t, byte(0), flags)
}

func TestStoreReplace(t *testing.T) {
	tr := newTestTrie(16, 1)
	_, err := tr.Store([]byte("foo"), []byte("bar"), 7)
	require.NoError(t, err)

	added, err := tr.Store([]byte("foo"), []byte("quux"), 9)
	require.NoError(t, err)
	assert.False(t, added)

	val, flags, ok := tr.Fetch([]byte("foo"))
	require.True(t, ok)
	assert.Equal(t, []byte("quux"), val)
	assert.Equal(t, byte(9), flags)

	numKeys, _, _, _, _ := tr.Stats()
	assert.Equal(t, 1, numKeys)
}

func TestRemove(t *testing.T) {
	tr := newTestTrie(16, 1)
	_, err := tr.Store([]byte("foo"), []byte("bar"), 0)
	require.NoError(t, err)

	assert.True(t, tr.Remove([]byte("foo")))
	_, _, ok := tr.Fetch([]byte("foo"))
	assert.False(t, ok)

	numKeys, _, _, _, _ := tr.Stats()
	assert.Equal(t, 0, numKeys)

	assert.False(t, tr.Remove([]byte("foo")))
}

func TestStoreRemoveStoreIndistinguishableFromFresh(t *testing.T) {
	tr := newTestTrie(16, 1)
	_, err := tr.Store([]byte("foo"), []byte("v1"), 1)
	require.NoError(t, err)
	require.True(t, tr.Remove([]byte("foo")))

	added, err := tr.Store([]byte("foo"), []byte("v2"), 2)
	require.NoError(t, err)
	assert.True(t, added)

	val, flags, ok := tr.Fetch([]byte("foo"))
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), val)
	assert.Equal(t, byte(2), flags)
}

func TestNumKeysTracksDistinctKeys(t *testing.T) {
	tr := newTestTrie(16, 1)
	keys := []string{"a", "b", "c", "d", "e"}
	for _, k := range keys {
		_, err := tr.Store([]byte(k), []byte(k+"-val"), 0)
		require.NoError(t, err)
	}
	numKeys, _, _, _, _ := tr.Stats()
	assert.Equal(t, len(keys), numKeys)

	_, err := tr.Store([]byte("a"), []byte("a-val2"), 0)
	require.NoError(t, err)
	numKeys, _, _, _, _ = tr.Stats()
	assert.Equal(t, len(keys), numKeys)
}

func TestOverflowTriggersReindex(t *testing.T) {
	tr := newTestTrie(2, 1)

	// Find three keys whose digest[0] collides, using brute force over a
	// deterministic key stream so the test is not flaky.
	var clustered [][]byte
	target := byte(255) // sentinel until set below
	for n := 0; len(clustered) < 3; n++ {
		k := []byte(fmt.Sprintf("key-%d", n))
		d := digest.Of(digest.DJB2Hasher{}, k)
		if target == 255 {
			target = d[0]
		}
		if d[0] == target {
			clustered = append(clustered, k)
		}
	}

	for _, k := range clustered {
		_, err := tr.Store(k, []byte("v"), 0)
		require.NoError(t, err)
	}

	for _, k := range clustered {
		_, _, ok := tr.Fetch(k)
		assert.True(t, ok, "key %q should still be fetchable after reindex", k)
	}

	numKeys, _, _, _, reindexCount := tr.Stats()
	assert.Equal(t, 3, numKeys)
	assert.GreaterOrEqual(t, reindexCount, int64(1))
}

func TestIterationVisitsEachKeyExactlyOnce(t *testing.T) {
	tr := newTestTrie(16, 1)
	keys := []string{"a", "b", "c", "d", "e"}
	for _, k := range keys {
		_, err := tr.Store([]byte(k), []byte(k), 0)
		require.NoError(t, err)
	}

	seen := map[string]int{}
	k, ok := tr.FirstKey()
	for ok {
		seen[string(k)]++
		k, ok = tr.NextKey(k)
	}

	assert.Len(t, seen, len(keys))
	for _, want := range keys {
		assert.Equal(t, 1, seen[want])
	}
}

func TestEmptyTrieIteration(t *testing.T) {
	tr := newTestTrie(16, 1)
	_, ok := tr.FirstKey()
	assert.False(t, ok)

	_, ok = tr.NextKey([]byte("anything"))
	assert.False(t, ok)
}

func TestClearResetsStatsAndReplayIsIndependentOfHistory(t *testing.T) {
	tr := newTestTrie(2, 1)
	for i := 0; i < 20; i++ {
		_, err := tr.Store([]byte(fmt.Sprintf("k%d", i)), []byte("v"), 0)
		require.NoError(t, err)
	}
	tr.Clear()

	numKeys, indexSize, metaSize, dataSize, _ := tr.Stats()
	assert.Equal(t, 0, numKeys)
	assert.Equal(t, indexNodeBytes, indexSize)
	assert.Equal(t, int64(0), metaSize)
	assert.Equal(t, int64(0), dataSize)

	fresh := newTestTrie(2, 1)
	for i := 0; i < 20; i++ {
		_, err := tr.Store([]byte(fmt.Sprintf("k%d", i)), []byte("v"), 0)
		require.NoError(t, err)
		_, err = fresh.Store([]byte(fmt.Sprintf("k%d", i)), []byte("v"), 0)
		require.NoError(t, err)
	}
	nk1, _, _, _, _ := tr.Stats()
	nk2, _, _, _, _ := fresh.Stats()
	assert.Equal(t, nk2, nk1)
	for i := 0; i < 20; i++ {
		v1, _, _ := tr.Fetch([]byte(fmt.Sprintf("k%d", i)))
		v2, _, _ := fresh.Fetch([]byte(fmt.Sprintf("k%d", i)))
		assert.Equal(t, v2, v1)
	}
}

func TestClearSliceOnlyAffectsThatSlice(t *testing.T) {
	tr := newTestTrie(16, 1)
	// Plant one key directly in each of the 16 root slots by trying keys
	// until each slot has at least one occupant.
	byFirstNibble := make(map[byte]string)
	for n := 0; len(byFirstNibble) < fanout; n++ {
		k := fmt.Sprintf("seed-%d", n)
		d := digest.Of(digest.DJB2Hasher{}, []byte(k))
		if _, exists := byFirstNibble[d[0]]; !exists {
			byFirstNibble[d[0]] = k
			_, err := tr.Store([]byte(k), []byte(k), 0)
			require.NoError(t, err)
		}
	}

	victimNibble := byte(0)
	victimKey := byFirstNibble[victimNibble]

	require.NoError(t, tr.ClearSlice(int(victimNibble)))

	_, _, ok := tr.Fetch([]byte(victimKey))
	assert.False(t, ok)

	for nibble, k := range byFirstNibble {
		if nibble == victimNibble {
			continue
		}
		_, _, ok := tr.Fetch([]byte(k))
		assert.True(t, ok, "key %q in untouched slice should survive", k)
	}
}

func TestEmptyKeyAndValueAreValid(t *testing.T) {
	tr := newTestTrie(16, 1)
	added, err := tr.Store([]byte{}, []byte{}, 3)
	require.NoError(t, err)
	assert.True(t, added)

	val, flags, ok := tr.Fetch([]byte{})
	require.True(t, ok)
	assert.Equal(t, []byte{}, val)
	assert.Equal(t, byte(3), flags)

	other, _, ok := tr.Fetch([]byte("not-empty"))
	assert.False(t, ok)
	assert.Nil(t, other)
}

func TestMaxBucketsAdvisoryAtMaxDepth(t *testing.T) {
	// With maxBuckets=1, any two keys whose digest matches in all 8 nibbles
	// both end up in the same depth-8 chain, which cannot be reindexed
	// further (no nibbles remain) and is therefore allowed to exceed
	// maxBuckets.
	tr := newTestTrie(1, 1)
	k1, k2 := findFullDigestCollision(t)

	_, err := tr.Store(k1, []byte("v1"), 0)
	require.NoError(t, err)
	_, err = tr.Store(k2, []byte("v2"), 0)
	require.NoError(t, err)

	v1, _, ok := tr.Fetch(k1)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), v1)
	v2, _, ok := tr.Fetch(k2)
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), v2)
}

// findFullDigestCollision brute-forces two distinct keys whose full 8-nibble
// DJB2 digest collides, by grouping a deterministic key stream by digest.
// The stream appends n as four raw big-endian bytes, so keys such as
// ...{0,33} and ...{1,0} hash identically (0*33+33 == 1*33+0).
func findFullDigestCollision(t *testing.T) ([]byte, []byte) {
	t.Helper()
	seen := map[digest.Digest][]byte{}
	for n := 0; n < 2_000_000; n++ {
		k := binary.BigEndian.AppendUint32([]byte("coll-"), uint32(n))
		d := digest.Of(digest.DJB2Hasher{}, k)
		if prior, ok := seen[d]; ok {
			return prior, k
		}
		seen[d] = k
	}
	t.Fatal("did not find a full digest collision in the search budget")
	return nil, nil
}
