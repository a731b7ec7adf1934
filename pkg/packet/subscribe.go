package packet

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// Subscription represents a single topic subscription.
type Subscription struct {
	TopicFilter string
	QoS         QoS
}

// Subscribe represents an MQTT SUBSCRIBE packet.
// MQTT 3.1.1 Section 3.8
type Subscribe struct {
	PacketID      uint16
	Subscriptions []Subscription
}

// Type returns TypeSubscribe.
func (s *Subscribe) Type() Type {
	return TypeSubscribe
}

// EncodedSize returns the total size of the encoded SUBSCRIBE packet.
func (s *Subscribe) EncodedSize() int {
	rl := 2
	for _, sub := range s.Subscriptions {
		rl += 2 + wire.TextLen(sub.TopicFilter) + 1 // length + topic + options byte
	}
	return FixedHeaderSize(uint32(rl)) + rl
}

// Encode encodes the SUBSCRIBE packet into buf.
func (s *Subscribe) Encode(buf []byte) (int, error) {
	if s.PacketID == 0 {
		return 0, wire.Invalidf("SUBSCRIBE needs a packet identifier")
	}
	if len(s.Subscriptions) == 0 {
		return 0, wire.Invalidf("SUBSCRIBE needs at least one subscription")
	}

	filters := make([][]byte, len(s.Subscriptions))
	rl := 2
	for i, sub := range s.Subscriptions {
		if !sub.QoS.Valid() {
			return 0, wire.Invalidf("subscription %q QoS %d", sub.TopicFilter, sub.QoS)
		}
		f, err := encodeText(sub.TopicFilter, "topic filter")
		if err != nil {
			return 0, err
		}
		filters[i] = f
		rl += 2 + len(f) + 1
	}

	// Fixed header (SUBSCRIBE has reserved flags 0010)
	pos, err := beginFrame(buf, TypeSubscribe, SubscribeFlags, rl)
	if err != nil {
		return 0, err
	}

	pos += wire.EncodeUint16(buf[pos:], s.PacketID)
	for i, sub := range s.Subscriptions {
		pos += EncodeBytes(buf[pos:], filters[i])
		buf[pos] = byte(sub.QoS)
		pos++
	}

	return pos, nil
}

// DecodeSubscribe decodes a SUBSCRIBE packet from a complete frame.
func DecodeSubscribe(buf []byte) (*Subscribe, error) {
	_, body, err := splitFrame(buf)
	if err != nil {
		return nil, err
	}
	if len(body) < 5 { // Minimum: packet ID + one subscription
		return nil, wire.Malformedf("SUBSCRIBE body of %d bytes", len(body))
	}

	s := &Subscribe{}
	packetID, pos, _ := wire.DecodeUint16(body)
	if packetID == 0 {
		return nil, ErrInvalidPacketID
	}
	s.PacketID = packetID

	for pos < len(body) {
		filter, n, err := decodeText(body[pos:], "topic_filter")
		if err != nil {
			return nil, err
		}
		pos += n

		if pos >= len(body) {
			return nil, wire.Malformedf("missing requested QoS for %q", filter)
		}
		options := body[pos]
		pos++

		// Bits 7-2 are reserved
		if options&0xFC != 0 {
			return nil, ErrInvalidFlags
		}
		qos := QoS(options & 0x03)
		if !qos.Valid() {
			return nil, ErrInvalidQoS
		}

		s.Subscriptions = append(s.Subscriptions, Subscription{TopicFilter: filter, QoS: qos})
	}

	return s, nil
}

// Suback represents an MQTT SUBACK packet.
// MQTT 3.1.1 Section 3.9
type Suback struct {
	PacketID uint16

	// One granted QoS (0-2) or SubackFailure per requested subscription.
	ReturnCodes []byte
}

// Type returns TypeSuback.
func (s *Suback) Type() Type {
	return TypeSuback
}

// EncodedSize returns the total size of the encoded SUBACK packet.
func (s *Suback) EncodedSize() int {
	rl := 2 + len(s.ReturnCodes)
	return FixedHeaderSize(uint32(rl)) + rl
}

// Encode encodes the SUBACK packet into buf.
func (s *Suback) Encode(buf []byte) (int, error) {
	if len(s.ReturnCodes) == 0 {
		return 0, wire.Invalidf("SUBACK needs at least one return code")
	}
	for _, code := range s.ReturnCodes {
		if code != SubackFailure && !QoS(code).Valid() {
			return 0, wire.Invalidf("SUBACK return code 0x%02x", code)
		}
	}

	pos, err := beginFrame(buf, TypeSuback, 0, 2+len(s.ReturnCodes))
	if err != nil {
		return 0, err
	}

	pos += wire.EncodeUint16(buf[pos:], s.PacketID)
	pos += copy(buf[pos:], s.ReturnCodes)

	return pos, nil
}

// DecodeSuback decodes a SUBACK packet from a complete frame.
func DecodeSuback(buf []byte) (*Suback, error) {
	_, body, err := splitFrame(buf)
	if err != nil {
		return nil, err
	}
	if len(body) < 3 {
		return nil, wire.Malformedf("SUBACK body of %d bytes", len(body))
	}

	s := &Suback{}
	s.PacketID, _, _ = wire.DecodeUint16(body)
	s.ReturnCodes = make([]byte, len(body)-2)
	copy(s.ReturnCodes, body[2:])

	return s, nil
}
