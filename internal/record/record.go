// Package record implements the packed (key, value) byte layout stored by
// every bucket in package trie: a single contiguous allocation holding a
// length-prefixed key followed by a length-prefixed value. Keeping both
// fields in one allocation is load-bearing for memory accounting — it is
// what makes per-entry overhead independent of key and value size.
package record

import (
	"encoding/binary"
	"fmt"
)

// Field widths, in bytes, of the packed layout:
//
//	[ keyLength : KeyLenBytes, host byte order ]
//	[ key       : keyLength bytes              ]
//	[ valLength : ValLenBytes, host byte order  ]
//	[ value     : valLength bytes               ]
const (
	KeyLenBytes = 2
	ValLenBytes = 4

	// MaxKeyLen is the largest key length the 16-bit length prefix can hold.
	MaxKeyLen = 1<<16 - 1
	// MaxValLen is the largest value length the 32-bit length prefix can hold.
	MaxValLen = 1<<32 - 1
)

// Encode packs key and value into a single freshly allocated byte region.
// It returns an error rather than silently truncating if either length
// prefix would overflow.
func Encode(key, value []byte) ([]byte, error) {
	if len(key) > MaxKeyLen {
		return nil, fmt.Errorf("record: key length %d exceeds maximum %d", len(key), MaxKeyLen)
	}
	if uint64(len(value)) > MaxValLen {
		return nil, fmt.Errorf("record: value length %d exceeds maximum %d", len(value), MaxValLen)
	}

	size := KeyLenBytes + len(key) + ValLenBytes + len(value)
	buf := make([]byte, size)

	binary.NativeEndian.PutUint16(buf, uint16(len(key)))
	off := KeyLenBytes
	copy(buf[off:], key)
	off += len(key)

	binary.NativeEndian.PutUint32(buf[off:], uint32(len(value)))
	off += ValLenBytes
	copy(buf[off:], value)

	return buf, nil
}

// Size returns the number of bytes Encode(key, value) would allocate,
// without doing the allocation.
func Size(keyLen, valLen int) int {
	return KeyLenBytes + keyLen + ValLenBytes + valLen
}

// KeyLen returns the key length stored in the header of a packed record.
func KeyLen(rec []byte) int {
	return int(binary.NativeEndian.Uint16(rec))
}

// Key returns the key slice borrowed from the packed record. The caller
// must not retain it past the lifetime of rec.
func Key(rec []byte) []byte {
	kl := KeyLen(rec)
	return rec[KeyLenBytes : KeyLenBytes+kl]
}

// ValLen returns the value length stored in the header of a packed record.
func ValLen(rec []byte) int {
	kl := KeyLen(rec)
	off := KeyLenBytes + kl
	return int(binary.NativeEndian.Uint32(rec[off:]))
}

// Value returns the value slice borrowed from the packed record. The caller
// must not retain it past the lifetime of rec.
func Value(rec []byte) []byte {
	kl := KeyLen(rec)
	off := KeyLenBytes + kl
	vl := int(binary.NativeEndian.Uint32(rec[off:]))
	off += ValLenBytes
	return rec[off : off+vl]
}

// KeyEquals reports whether the packed record's key is byte-equal to key,
// without fully decoding the record.
func KeyEquals(rec []byte, key []byte) bool {
	kl := KeyLen(rec)
	if kl != len(key) {
		return false
	}
	return string(rec[KeyLenBytes:KeyLenBytes+kl]) == string(key)
}
