// Binary encoding for term values.
//
// Each term key maps to an 8-byte little-endian unix timestamp (seconds) of
// when it was added. Short values decode to the zero time.
package bbolt

import (
	"encoding/binary"
	"time"
)

// stampSize is the byte size of an encoded timestamp.
const stampSize = 8

func encodeAddedAt(t time.Time) []byte {
	buf := make([]byte, stampSize)
	binary.LittleEndian.PutUint64(buf, uint64(t.Unix()))
	return buf
}

func decodeAddedAt(v []byte) time.Time {
	if len(v) < stampSize {
		return time.Time{}
	}
	return time.Unix(int64(binary.LittleEndian.Uint64(v)), 0)
}
