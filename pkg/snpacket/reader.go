package snpacket

import (
	"bufio"
	"errors"
	"io"

	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

// Reader splits a byte stream into MQTT-SN frames. Datagram transports
// carry one frame per packet and can call Decode directly; Reader serves
// stream transports and capture replays.
// It is not safe for concurrent use.
type Reader struct {
	r   *bufio.Reader
	buf []byte
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:   bufio.NewReader(r),
		buf: make([]byte, 256),
	}
}

// ReadFrame reads the next complete frame. The returned slice is only
// valid until the next call. A stream ending between frames returns io.EOF;
// one ending inside a frame returns io.ErrUnexpectedEOF.
func (r *Reader) ReadFrame() ([]byte, error) {
	first, err := r.r.ReadByte()
	if err != nil {
		return nil, err
	}

	r.buf[0] = first
	width := 1
	if first == lengthMarker {
		if _, err := io.ReadFull(r.r, r.buf[1:3]); err != nil {
			return nil, unexpected(err)
		}
		width = 3
	}

	l, err := ReadLength(r.buf[:width])
	if err != nil {
		return nil, err
	}
	if l.Total < width+1 {
		return nil, wire.Malformedf("frame length %d leaves no room for a type byte", l.Total)
	}

	if cap(r.buf) < l.Total {
		grown := make([]byte, l.Total)
		copy(grown, r.buf[:width])
		r.buf = grown
	}
	r.buf = r.buf[:cap(r.buf)]

	if _, err := io.ReadFull(r.r, r.buf[width:l.Total]); err != nil {
		return nil, unexpected(err)
	}
	return r.buf[:l.Total], nil
}

// ReadMessage reads and decodes the next message.
func (r *Reader) ReadMessage() (Message, error) {
	frame, err := r.ReadFrame()
	if err != nil {
		return nil, err
	}
	return Decode(frame)
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
