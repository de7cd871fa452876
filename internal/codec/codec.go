// Package codec implements the fixed-width three-byte big-endian encoding
// used to pack word ids into PhraseSet keys. Three bytes give 2^24 distinct
// ids, comfortably more than any realistic phrase-corpus vocabulary while
// keeping concatenated phrase keys compact and easy to re-slice.
package codec

import (
	"encoding/binary"
	"fmt"
)

// MaxWordID is the largest id representable in three bytes.
const MaxWordID = 1<<24 - 1

// EncodeWordID packs id into three big-endian bytes. It returns an error if
// id does not fit (id > MaxWordID).
func EncodeWordID(id uint32) ([3]byte, error) {
	var out [3]byte
	if id > MaxWordID {
		return out, fmt.Errorf("codec: word id %d exceeds %d-bit limit", id, 24)
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], id)
	copy(out[:], buf[1:])
	return out, nil
}

// DecodeWordID unpacks three big-endian bytes back into a word id.
func DecodeWordID(b []byte) uint32 {
	var buf [4]byte
	copy(buf[1:], b[:3])
	return binary.BigEndian.Uint32(buf[:])
}

// EncodePhrase concatenates the three-byte encoding of each word id in
// order, with no separators, producing the PhraseSet FST key for the
// phrase.
func EncodePhrase(ids []uint32) ([]byte, error) {
	key := make([]byte, 0, len(ids)*3)
	for _, id := range ids {
		enc, err := EncodeWordID(id)
		if err != nil {
			return nil, err
		}
		key = append(key, enc[:]...)
	}
	return key, nil
}

// DecodePhrase splits a PhraseSet key back into its constituent word ids.
// key's length must be a multiple of 3.
func DecodePhrase(key []byte) []uint32 {
	ids := make([]uint32, 0, len(key)/3)
	for i := 0; i+3 <= len(key); i += 3 {
		ids = append(ids, DecodeWordID(key[i:i+3]))
	}
	return ids
}
