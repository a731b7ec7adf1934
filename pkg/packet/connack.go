package packet

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// Connack represents an MQTT CONNACK packet.
// MQTT 3.1.1 Section 3.2
type Connack struct {
	// Session present flag (3.1.1 only, always false for 3.1)
	SessionPresent bool

	ReturnCode ConnackReturnCode
}

// NewConnack creates a new CONNACK packet.
func NewConnack(sessionPresent bool, code ConnackReturnCode) *Connack {
	return &Connack{
		SessionPresent: sessionPresent,
		ReturnCode:     code,
	}
}

// Type returns TypeConnack.
func (c *Connack) Type() Type {
	return TypeConnack
}

// EncodedSize returns the total size of the encoded CONNACK packet.
func (c *Connack) EncodedSize() int {
	return 4
}

// Encode encodes the CONNACK packet into buf.
func (c *Connack) Encode(buf []byte) (int, error) {
	pos, err := beginFrame(buf, TypeConnack, 0, 2)
	if err != nil {
		return 0, err
	}

	// Acknowledge flags (only bit 0 - session present)
	if c.SessionPresent {
		buf[pos] = 0x01
	} else {
		buf[pos] = 0x00
	}
	pos++

	buf[pos] = byte(c.ReturnCode)
	pos++

	return pos, nil
}

// DecodeConnack decodes a CONNACK packet from a complete frame.
func DecodeConnack(buf []byte) (*Connack, error) {
	_, body, err := splitFrame(buf)
	if err != nil {
		return nil, err
	}
	if len(body) < 2 {
		return nil, wire.Malformedf("CONNACK body of %d bytes", len(body))
	}

	// Bits 7-1 must be 0
	if body[0]&0xFE != 0 {
		return nil, ErrInvalidFlags
	}

	return &Connack{
		SessionPresent: body[0]&0x01 != 0,
		ReturnCode:     ConnackReturnCode(body[1]),
	}, nil
}
