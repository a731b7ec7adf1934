package snpacket

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// Message is the interface implemented by all MQTT-SN messages.
type Message interface {
	// Type returns the message type.
	Type() MsgType

	// Encode encodes the message into buf and returns the bytes written.
	// Nothing is written when an error is returned.
	Encode(buf []byte) (int, error)

	// EncodedSize returns the total size of the encoded frame.
	EncodedSize() int
}

// Marshal encodes m into a freshly allocated buffer owned by the caller.
func Marshal(m Message) ([]byte, error) {
	buf := make([]byte, m.EncodedSize())
	n, err := m.Encode(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Header is the decoded start of a frame.
type Header struct {
	Length Length
	Type   MsgType
}

// Size returns the header width: length prefix plus type byte.
func (h Header) Size() int {
	return h.Length.Width + 1
}

// PayloadLen returns the number of bytes following the type byte.
func (h Header) PayloadLen() int {
	return h.Length.Total - h.Size()
}

// ParseHeader reads the length prefix and type byte of the frame at the
// start of buf and returns the payload. Bytes past the declared length are
// ignored.
func ParseHeader(buf []byte) (Header, []byte, error) {
	l, err := ReadLength(buf)
	if err != nil {
		return Header{}, nil, err
	}
	if l.Total > len(buf) {
		return Header{}, nil, wire.Malformedf("frame declares %d bytes, %d available", l.Total, len(buf))
	}
	if l.Total < l.Width+1 {
		return Header{}, nil, wire.Malformedf("frame length %d leaves no room for a type byte", l.Total)
	}

	h := Header{Length: l, Type: MsgType(buf[l.Width])}
	return h, buf[h.Size():l.Total], nil
}

// payloadOf parses the header of buf and checks it carries the expected kind.
func payloadOf(buf []byte, want MsgType) ([]byte, error) {
	h, payload, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	if h.Type != want {
		return nil, wire.Unknownf("expected %s, got %s", want, h.Type)
	}
	return payload, nil
}

// fixedPayload is payloadOf for kinds whose payload has a minimum size.
func fixedPayload(buf []byte, want MsgType, size int) ([]byte, error) {
	payload, err := payloadOf(buf, want)
	if err != nil {
		return nil, err
	}
	if len(payload) < size {
		return nil, wire.Malformedf("%s payload of %d bytes, need %d", want, len(payload), size)
	}
	return payload, nil
}

// frameSize returns the size of a frame carrying payloadLen bytes after the
// type byte. Oversized frames report the three byte form size; Encode
// rejects them.
func frameSize(payloadLen int) int {
	l, err := LengthFor(1 + payloadLen)
	if err != nil {
		return 4 + payloadLen
	}
	return l.Total
}

// beginFrame checks buf against the frame size and writes the length
// prefix and type byte, returning the offset of the payload.
func beginFrame(buf []byte, t MsgType, payloadLen int) (int, error) {
	l, err := LengthFor(1 + payloadLen)
	if err != nil {
		return 0, err
	}
	if len(buf) < l.Total {
		return 0, wire.ErrShortBuffer
	}
	n := l.Put(buf)
	buf[n] = byte(t)
	return n + 1, nil
}

// decodeName decodes a text field, falling back to "" on bad text.
func decodeName(b []byte, field string) string {
	if len(b) == 0 {
		return ""
	}
	return wire.DecodeText(b, field)
}

func clone(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
