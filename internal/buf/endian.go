// Package buf contains helpers for building and decoding ordered byte keys.
package buf

import "encoding/binary"

// U64BE reads a big-endian uint64 from b. Returns 0 when b is too short.
func U64BE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// AppendU64BE appends v to b in big-endian order, so encoded values sort
// the same way as the numbers they hold.
func AppendU64BE(b []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(b, v)
}
