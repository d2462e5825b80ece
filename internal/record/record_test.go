package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		key  []byte
		val  []byte
	}{
		{"both-empty", []byte{}, []byte{}},
		{"empty-key", []byte{}, []byte("bar")},
		{"empty-value", []byte("foo"), []byte{}},
		{"both-set", []byte("foo"), []byte("bar")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec, err := Encode(c.key, c.val)
			require.NoError(t, err)
			assert.Equal(t, len(c.key), KeyLen(rec))
			assert.Equal(t, c.key, Key(rec))
			assert.Equal(t, len(c.val), ValLen(rec))
			assert.Equal(t, c.val, Value(rec))
			assert.Equal(t, len(rec), Size(len(c.key), len(c.val)))
		})
	}
}

func TestKeyEquals(t *testing.T) {
	rec, err := Encode([]byte("foo"), []byte("bar"))
	require.NoError(t, err)

	assert.True(t, KeyEquals(rec, []byte("foo")))
	assert.False(t, KeyEquals(rec, []byte("fo")))
	assert.False(t, KeyEquals(rec, []byte("food")))
	assert.False(t, KeyEquals(rec, []byte("bar")))
}

func TestEncodeRejectsOversizedKey(t *testing.T) {
	big := make([]byte, MaxKeyLen+1)
	_, err := Encode(big, nil)
	assert.Error(t, err)
}
