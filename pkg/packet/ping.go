package packet

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// emptySize is the size of packets with no variable header or payload.
const emptySize = 2

func encodeEmpty(buf []byte, t Type) (int, error) {
	if len(buf) < emptySize {
		return 0, wire.ErrShortBuffer
	}
	buf[0] = byte(t) << 4
	buf[1] = 0 // Remaining length
	return emptySize, nil
}

func decodeEmpty(buf []byte, t Type) error {
	fh, _, err := splitFrame(buf)
	if err != nil {
		return err
	}
	if fh.RemainingLength != 0 {
		return wire.Malformedf("%s with remaining length %d", t, fh.RemainingLength)
	}
	return nil
}

// Pingreq represents an MQTT PINGREQ packet.
// MQTT 3.1.1 Section 3.12
type Pingreq struct{}

// Type returns TypePingreq.
func (p *Pingreq) Type() Type {
	return TypePingreq
}

// EncodedSize returns the total size of the encoded PINGREQ packet.
func (p *Pingreq) EncodedSize() int {
	return emptySize
}

// Encode encodes the PINGREQ packet into buf.
func (p *Pingreq) Encode(buf []byte) (int, error) {
	return encodeEmpty(buf, TypePingreq)
}

// DecodePingreq decodes a PINGREQ packet.
func DecodePingreq(buf []byte) (*Pingreq, error) {
	if err := decodeEmpty(buf, TypePingreq); err != nil {
		return nil, err
	}
	return &Pingreq{}, nil
}

// Pingresp represents an MQTT PINGRESP packet.
// MQTT 3.1.1 Section 3.13
type Pingresp struct{}

// Type returns TypePingresp.
func (p *Pingresp) Type() Type {
	return TypePingresp
}

// EncodedSize returns the total size of the encoded PINGRESP packet.
func (p *Pingresp) EncodedSize() int {
	return emptySize
}

// Encode encodes the PINGRESP packet into buf.
func (p *Pingresp) Encode(buf []byte) (int, error) {
	return encodeEmpty(buf, TypePingresp)
}

// DecodePingresp decodes a PINGRESP packet.
func DecodePingresp(buf []byte) (*Pingresp, error) {
	if err := decodeEmpty(buf, TypePingresp); err != nil {
		return nil, err
	}
	return &Pingresp{}, nil
}

// Disconnect represents an MQTT DISCONNECT packet.
// MQTT 3.1.1 Section 3.14
type Disconnect struct{}

// Type returns TypeDisconnect.
func (d *Disconnect) Type() Type {
	return TypeDisconnect
}

// EncodedSize returns the total size of the encoded DISCONNECT packet.
func (d *Disconnect) EncodedSize() int {
	return emptySize
}

// Encode encodes the DISCONNECT packet into buf.
func (d *Disconnect) Encode(buf []byte) (int, error) {
	return encodeEmpty(buf, TypeDisconnect)
}

// DecodeDisconnect decodes a DISCONNECT packet.
func DecodeDisconnect(buf []byte) (*Disconnect, error) {
	if err := decodeEmpty(buf, TypeDisconnect); err != nil {
		return nil, err
	}
	return &Disconnect{}, nil
}
