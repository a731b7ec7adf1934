package snpacket

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// Connect represents an MQTT-SN CONNECT message.
// MQTT-SN 1.2 Section 5.4.4
type Connect struct {
	Will         bool // client will send WILLTOPIC and WILLMSG
	CleanSession bool
	Duration     uint16 // keep alive in seconds
	ClientID     string
}

// Type returns TypeConnect.
func (c *Connect) Type() MsgType {
	return TypeConnect
}

// EncodedSize returns the total size of the encoded frame.
func (c *Connect) EncodedSize() int {
	return frameSize(4 + wire.TextLen(c.ClientID))
}

// Encode encodes the message into buf.
func (c *Connect) Encode(buf []byte) (int, error) {
	flags, err := Flags{Will: c.Will, CleanSession: c.CleanSession}.Encode()
	if err != nil {
		return 0, err
	}
	id, err := wire.EncodeText(c.ClientID)
	if err != nil {
		return 0, err
	}

	pos, err := beginFrame(buf, TypeConnect, 4+len(id))
	if err != nil {
		return 0, err
	}
	buf[pos] = flags
	buf[pos+1] = ProtocolID
	pos += 2
	pos += wire.EncodeUint16(buf[pos:], c.Duration)
	pos += copy(buf[pos:], id)
	return pos, nil
}

// DecodeConnect decodes a CONNECT frame.
func DecodeConnect(buf []byte) (*Connect, error) {
	payload, err := fixedPayload(buf, TypeConnect, 4)
	if err != nil {
		return nil, err
	}
	if payload[1] != ProtocolID {
		return nil, ErrInvalidProtocolID
	}

	f := DecodeFlags(payload[0])
	duration, _, _ := wire.DecodeUint16(payload[2:])
	return &Connect{
		Will:         f.Will,
		CleanSession: f.CleanSession,
		Duration:     duration,
		ClientID:     decodeName(payload[4:], "client_id"),
	}, nil
}

// Pingreq represents a PINGREQ. A ClientID is only sent by a sleeping
// client checking for buffered messages.
// MQTT-SN 1.2 Section 5.4.19
type Pingreq struct {
	ClientID string
}

// Type returns TypePingreq.
func (p *Pingreq) Type() MsgType {
	return TypePingreq
}

// EncodedSize returns the total size of the encoded frame.
func (p *Pingreq) EncodedSize() int {
	return frameSize(wire.TextLen(p.ClientID))
}

// Encode encodes the message into buf.
func (p *Pingreq) Encode(buf []byte) (int, error) {
	var id []byte
	if p.ClientID != "" {
		var err error
		if id, err = wire.EncodeText(p.ClientID); err != nil {
			return 0, err
		}
	}
	return encodeRaw(buf, TypePingreq, id)
}

// DecodePingreq decodes a PINGREQ frame.
func DecodePingreq(buf []byte) (*Pingreq, error) {
	payload, err := payloadOf(buf, TypePingreq)
	if err != nil {
		return nil, err
	}
	return &Pingreq{ClientID: decodeName(payload, "client_id")}, nil
}

// Disconnect represents a DISCONNECT. A non-zero Duration asks the gateway
// to keep the session asleep for that many seconds; zero omits the field.
// MQTT-SN 1.2 Section 5.4.21
type Disconnect struct {
	Duration uint16
}

// Type returns TypeDisconnect.
func (d *Disconnect) Type() MsgType {
	return TypeDisconnect
}

// EncodedSize returns the total size of the encoded frame.
func (d *Disconnect) EncodedSize() int {
	if d.Duration == 0 {
		return 2
	}
	return 4
}

// Encode encodes the message into buf.
func (d *Disconnect) Encode(buf []byte) (int, error) {
	if d.Duration == 0 {
		return beginFrame(buf, TypeDisconnect, 0)
	}
	pos, err := beginFrame(buf, TypeDisconnect, 2)
	if err != nil {
		return 0, err
	}
	pos += wire.EncodeUint16(buf[pos:], d.Duration)
	return pos, nil
}

// DecodeDisconnect decodes a DISCONNECT frame.
func DecodeDisconnect(buf []byte) (*Disconnect, error) {
	payload, err := payloadOf(buf, TypeDisconnect)
	if err != nil {
		return nil, err
	}

	d := &Disconnect{}
	switch len(payload) {
	case 0:
	case 2:
		d.Duration, _, _ = wire.DecodeUint16(payload)
	default:
		return nil, wire.Malformedf("DISCONNECT payload of %d bytes", len(payload))
	}
	return d, nil
}
