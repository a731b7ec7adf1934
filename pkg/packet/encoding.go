package packet

import (
	"encoding/binary"

	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

// EncodeVarInt encodes a variable byte integer into buf and returns the number of bytes written.
// Returns 0 if the value is too large or the buffer is too small.
// MQTT 3.1.1 Section 2.2.3
func EncodeVarInt(buf []byte, value uint32) int {
	if value > MaxRemainingLength {
		return 0
	}

	i := 0
	for {
		if i >= len(buf) {
			return 0
		}
		encodedByte := byte(value & 0x7F)
		value >>= 7
		if value > 0 {
			encodedByte |= 0x80
		}
		buf[i] = encodedByte
		i++
		if value == 0 {
			break
		}
	}
	return i
}

// DecodeVarInt decodes a variable byte integer from buf.
// Returns the value, number of bytes consumed, and success flag.
// Returns (0, 0, false) on error or incomplete data.
func DecodeVarInt(buf []byte) (value uint32, n int, ok bool) {
	var multiplier uint32 = 1

	for i := 0; i < len(buf) && i < 4; i++ {
		encodedByte := buf[i]
		value += uint32(encodedByte&0x7F) * multiplier

		if encodedByte&0x80 == 0 {
			return value, i + 1, true
		}

		multiplier *= 128
	}

	return 0, 0, false
}

// VarIntSize returns the number of bytes needed to encode a value as a variable byte integer.
func VarIntSize(value uint32) int {
	switch {
	case value < 128:
		return 1
	case value < 16384:
		return 2
	case value < 2097152:
		return 3
	default:
		return 4
	}
}

// EncodeBytes encodes binary data with a 2-byte length prefix.
// Returns the number of bytes written, or 0 on error.
func EncodeBytes(buf []byte, data []byte) int {
	dlen := len(data)
	if dlen > 65535 {
		return 0
	}
	if len(buf) < 2+dlen {
		return 0
	}
	binary.BigEndian.PutUint16(buf, uint16(dlen))
	copy(buf[2:], data)
	return 2 + dlen
}

// DecodeBytes decodes length-prefixed data from buf.
// Returns a slice referencing the original buffer, bytes consumed, and success flag.
func DecodeBytes(buf []byte) (data []byte, n int, ok bool) {
	if len(buf) < 2 {
		return nil, 0, false
	}
	dlen := int(binary.BigEndian.Uint16(buf))
	if len(buf) < 2+dlen {
		return nil, 0, false
	}
	return buf[2 : 2+dlen], 2 + dlen, true
}

// encodeText converts s with the designated text encoding and checks that
// it fits a 2-byte length prefix.
func encodeText(s, field string) ([]byte, error) {
	b, err := wire.EncodeText(s)
	if err != nil {
		return nil, err
	}
	if len(b) > 65535 {
		return nil, wire.Invalidf("%s exceeds 65535 bytes", field)
	}
	return b, nil
}

// decodeText decodes a length-prefixed text field. A bad length prefix is a
// malformed frame; bad text falls back to "" with a diagnostic.
func decodeText(buf []byte, field string) (string, int, error) {
	data, n, ok := DecodeBytes(buf)
	if !ok {
		return "", 0, wire.Malformedf("truncated %s", field)
	}
	return wire.DecodeText(data, field), n, nil
}

// decodeBinary decodes a length-prefixed binary field into a fresh slice.
func decodeBinary(buf []byte, field string) ([]byte, int, error) {
	data, n, ok := DecodeBytes(buf)
	if !ok {
		return nil, 0, wire.Malformedf("truncated %s", field)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, n, nil
}

// FixedHeaderSize calculates the size of the fixed header for a given remaining length.
func FixedHeaderSize(remainingLength uint32) int {
	return 1 + VarIntSize(remainingLength)
}

// EncodeFixedHeader encodes the fixed header into buf.
// Returns the number of bytes written, or 0 on error.
func EncodeFixedHeader(buf []byte, packetType Type, flags byte, remainingLength uint32) int {
	if len(buf) < 1 {
		return 0
	}
	buf[0] = byte(packetType)<<4 | (flags & 0x0F)
	n := EncodeVarInt(buf[1:], remainingLength)
	if n == 0 {
		return 0
	}
	return 1 + n
}

// DecodeFixedHeader decodes the fixed header from buf.
// Returns packet type, flags, remaining length, bytes consumed, and success flag.
func DecodeFixedHeader(buf []byte) (packetType Type, flags byte, remainingLength uint32, n int, ok bool) {
	if len(buf) < 2 {
		return 0, 0, 0, 0, false
	}

	packetType = Type(buf[0] >> 4)
	flags = buf[0] & 0x0F

	remainingLength, varIntLen, ok := DecodeVarInt(buf[1:])
	if !ok {
		return 0, 0, 0, 0, false
	}

	return packetType, flags, remainingLength, 1 + varIntLen, true
}

// FixedHeader is a decoded fixed header.
type FixedHeader struct {
	Type            Type
	Flags           byte
	RemainingLength uint32
	Size            int // bytes taken by the header itself
}

// FrameSize returns the size of the whole frame described by the header.
func (fh FixedHeader) FrameSize() int {
	return fh.Size + int(fh.RemainingLength)
}

// splitFrame parses the fixed header of a complete frame and returns the body.
// Bytes past the declared frame length are ignored.
func splitFrame(buf []byte) (FixedHeader, []byte, error) {
	if len(buf) < 2 {
		return FixedHeader{}, nil, wire.Malformedf("frame of %d bytes is shorter than a fixed header", len(buf))
	}

	t, flags, rl, n, ok := DecodeFixedHeader(buf)
	if !ok {
		return FixedHeader{}, nil, ErrMalformedRemainingLength
	}

	fh := FixedHeader{Type: t, Flags: flags, RemainingLength: rl, Size: n}
	if fh.FrameSize() > len(buf) {
		return FixedHeader{}, nil, wire.Malformedf("%s declares %d bytes, %d available", t, fh.FrameSize(), len(buf))
	}
	return fh, buf[n:fh.FrameSize()], nil
}

// beginFrame validates buf against the frame size and writes the fixed header.
func beginFrame(buf []byte, t Type, flags byte, remainingLength int) (int, error) {
	if remainingLength > MaxRemainingLength {
		return 0, wire.Invalidf("%s remaining length %d exceeds %d", t, remainingLength, MaxRemainingLength)
	}
	rl := uint32(remainingLength)
	if len(buf) < FixedHeaderSize(rl)+remainingLength {
		return 0, wire.ErrShortBuffer
	}
	return EncodeFixedHeader(buf, t, flags, rl), nil
}
