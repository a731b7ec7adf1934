package packet

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// AckSize is the size of every acknowledgment frame.
const AckSize = 4

// Ack is a fixed four byte acknowledgment that carries only a packet
// identifier: PUBACK, PUBREC, PUBREL, PUBCOMP and UNSUBACK.
// MQTT 3.1.1 Sections 3.4-3.7 and 3.11
type Ack struct {
	Kind     Type
	PacketID uint16
}

// IsAck reports whether t is an acknowledgment type.
func IsAck(t Type) bool {
	switch t {
	case TypePuback, TypePubrec, TypePubrel, TypePubcomp, TypeUnsuback:
		return true
	}
	return false
}

// NewPuback creates a PUBACK for packetID.
func NewPuback(packetID uint16) *Ack { return &Ack{Kind: TypePuback, PacketID: packetID} }

// NewPubrec creates a PUBREC for packetID.
func NewPubrec(packetID uint16) *Ack { return &Ack{Kind: TypePubrec, PacketID: packetID} }

// NewPubrel creates a PUBREL for packetID.
func NewPubrel(packetID uint16) *Ack { return &Ack{Kind: TypePubrel, PacketID: packetID} }

// NewPubcomp creates a PUBCOMP for packetID.
func NewPubcomp(packetID uint16) *Ack { return &Ack{Kind: TypePubcomp, PacketID: packetID} }

// NewUnsuback creates an UNSUBACK for packetID.
func NewUnsuback(packetID uint16) *Ack { return &Ack{Kind: TypeUnsuback, PacketID: packetID} }

// Type returns the acknowledgment kind.
func (a *Ack) Type() Type {
	return a.Kind
}

// EncodedSize returns AckSize.
func (a *Ack) EncodedSize() int {
	return AckSize
}

// Encode writes the type byte, a remaining length of 2 and the big-endian
// packet identifier.
func (a *Ack) Encode(buf []byte) (int, error) {
	if !IsAck(a.Kind) {
		return 0, wire.Invalidf("%s is not an acknowledgment", a.Kind)
	}
	if len(buf) < AckSize {
		return 0, wire.ErrShortBuffer
	}

	buf[0] = byte(a.Kind)<<4 | reservedFlags(a.Kind)
	buf[1] = 2
	wire.EncodeUint16(buf[2:], a.PacketID)
	return AckSize, nil
}

// DecodeAck decodes an acknowledgment of the given kind from a complete frame.
// The packet identifier is read from bytes 2-3; the fixed header itself is
// checked by Decode.
func DecodeAck(kind Type, buf []byte) (*Ack, error) {
	if !IsAck(kind) {
		return nil, wire.Unknownf("%s is not an acknowledgment", kind)
	}
	if len(buf) < AckSize {
		return nil, wire.Malformedf("%s needs %d bytes, got %d", kind, AckSize, len(buf))
	}

	id, _, _ := wire.DecodeUint16(buf[2:])
	return &Ack{Kind: kind, PacketID: id}, nil
}
