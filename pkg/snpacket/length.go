package snpacket

import (
	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

// lengthMarker as the first byte announces the three byte length form.
const lengthMarker = 0x01

// Length is a decoded length prefix: the total frame length and the number
// of bytes the prefix itself takes (1 or 3).
type Length struct {
	Total int
	Width int
}

// ReadLength decodes the length prefix at the start of buf.
func ReadLength(buf []byte) (Length, error) {
	if len(buf) == 0 {
		return Length{}, wire.Malformedf("empty frame")
	}
	if buf[0] != lengthMarker {
		return Length{Total: int(buf[0]), Width: 1}, nil
	}
	if len(buf) < 3 {
		return Length{}, wire.Malformedf("three byte length prefix with %d bytes available", len(buf))
	}
	total, _, _ := wire.DecodeUint16(buf[1:])
	return Length{Total: int(total), Width: 3}, nil
}

// LengthFor returns the shortest prefix for a frame whose bytes after the
// prefix (type byte included) number body.
func LengthFor(body int) (Length, error) {
	if body+1 <= 255 {
		return Length{Total: body + 1, Width: 1}, nil
	}
	if body+3 > MaxFrameSize {
		return Length{}, ErrFrameTooLarge
	}
	return Length{Total: body + 3, Width: 3}, nil
}

// Put writes the prefix to buf and returns its width.
func (l Length) Put(buf []byte) int {
	if l.Width == 1 {
		buf[0] = byte(l.Total)
		return 1
	}
	buf[0] = lengthMarker
	wire.EncodeUint16(buf[1:], uint16(l.Total))
	return 3
}

// WriteLength returns the length prefix for a frame of the given total
// length, choosing the one byte form when total fits in it.
func WriteLength(total int) ([]byte, error) {
	switch {
	case total < 2:
		return nil, wire.Invalidf("frame length %d leaves no room for a type byte", total)
	case total > MaxFrameSize:
		return nil, ErrFrameTooLarge
	case total <= 255:
		return []byte{byte(total)}, nil
	default:
		buf := make([]byte, 3)
		Length{Total: total, Width: 3}.Put(buf)
		return buf, nil
	}
}
