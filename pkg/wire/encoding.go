package wire

import "encoding/binary"

// EncodeUint16 encodes a 16-bit unsigned integer in big-endian order.
// Returns 2 on success, 0 if buffer is too small.
func EncodeUint16(buf []byte, value uint16) int {
	if len(buf) < 2 {
		return 0
	}
	binary.BigEndian.PutUint16(buf, value)
	return 2
}

// DecodeUint16 decodes a 16-bit unsigned integer from big-endian bytes.
// Returns the value, 2 bytes consumed, and success flag.
func DecodeUint16(buf []byte) (value uint16, n int, ok bool) {
	if len(buf) < 2 {
		return 0, 0, false
	}
	return binary.BigEndian.Uint16(buf), 2, true
}
