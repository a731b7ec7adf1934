package packet

import (
	"io"
)

// Reader reads classic packets from a byte stream.
// It is not safe for concurrent use.
type Reader struct {
	r       io.Reader
	buf     []byte
	pos     int
	end     int
	maxSize int
}

// NewReader creates a new packet reader. maxSize bounds the size of a
// single frame; values <= 0 select MaxPacketSize.
func NewReader(r io.Reader, bufSize, maxSize int) *Reader {
	if bufSize < 1024 {
		bufSize = 1024
	}
	if maxSize <= 0 || maxSize > MaxPacketSize {
		maxSize = MaxPacketSize
	}
	return &Reader{
		r:       r,
		buf:     make([]byte, bufSize),
		maxSize: maxSize,
	}
}

// fill reads more data into the buffer.
func (r *Reader) fill() error {
	// Shift remaining data to the beginning
	if r.pos > 0 {
		copy(r.buf, r.buf[r.pos:r.end])
		r.end -= r.pos
		r.pos = 0
	}

	// Grow buffer if needed
	if r.end == len(r.buf) {
		newBuf := make([]byte, len(r.buf)*2)
		copy(newBuf, r.buf)
		r.buf = newBuf
	}

	n, err := r.r.Read(r.buf[r.end:])
	if n > 0 {
		r.end += n
	}
	if err == io.EOF && n > 0 {
		return nil
	}
	if err == io.EOF && r.available() > 0 {
		return io.ErrUnexpectedEOF
	}
	return err
}

// available returns the number of unread bytes in the buffer.
func (r *Reader) available() int {
	return r.end - r.pos
}

// ReadFrame reads the next complete frame. The returned slice is only
// valid until the next call.
func (r *Reader) ReadFrame() ([]byte, error) {
	// Read until we have at least 2 bytes for the fixed header
	for r.available() < 2 {
		if err := r.fill(); err != nil {
			return nil, err
		}
	}

	_, _, remainingLength, headerLen, ok := DecodeFixedHeader(r.buf[r.pos:r.end])
	if !ok {
		// Need more data for remaining length
		for !ok && r.available() < 5 {
			if err := r.fill(); err != nil {
				return nil, err
			}
			_, _, remainingLength, headerLen, ok = DecodeFixedHeader(r.buf[r.pos:r.end])
		}
		if !ok {
			return nil, ErrMalformedRemainingLength
		}
	}

	totalLen := headerLen + int(remainingLength)
	if totalLen > r.maxSize {
		return nil, ErrPacketTooLarge
	}

	// Read until we have the complete packet
	for r.available() < totalLen {
		if err := r.fill(); err != nil {
			return nil, err
		}
	}

	frame := r.buf[r.pos : r.pos+totalLen]
	r.pos += totalLen
	return frame, nil
}

// ReadPacket reads and decodes the next packet.
func (r *Reader) ReadPacket() (Packet, error) {
	frame, err := r.ReadFrame()
	if err != nil {
		return nil, err
	}
	return Decode(frame)
}
