package packet

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// Unsubscribe represents an MQTT UNSUBSCRIBE packet.
// MQTT 3.1.1 Section 3.10
type Unsubscribe struct {
	PacketID     uint16
	TopicFilters []string
}

// Type returns TypeUnsubscribe.
func (u *Unsubscribe) Type() Type {
	return TypeUnsubscribe
}

// EncodedSize returns the total size of the encoded UNSUBSCRIBE packet.
func (u *Unsubscribe) EncodedSize() int {
	rl := 2
	for _, filter := range u.TopicFilters {
		rl += 2 + wire.TextLen(filter)
	}
	return FixedHeaderSize(uint32(rl)) + rl
}

// Encode encodes the UNSUBSCRIBE packet into buf.
func (u *Unsubscribe) Encode(buf []byte) (int, error) {
	if u.PacketID == 0 {
		return 0, wire.Invalidf("UNSUBSCRIBE needs a packet identifier")
	}
	if len(u.TopicFilters) == 0 {
		return 0, wire.Invalidf("UNSUBSCRIBE needs at least one topic filter")
	}

	filters := make([][]byte, len(u.TopicFilters))
	rl := 2
	for i, filter := range u.TopicFilters {
		f, err := encodeText(filter, "topic filter")
		if err != nil {
			return 0, err
		}
		filters[i] = f
		rl += 2 + len(f)
	}

	// Fixed header (UNSUBSCRIBE has reserved flags 0010)
	pos, err := beginFrame(buf, TypeUnsubscribe, UnsubscribeFlags, rl)
	if err != nil {
		return 0, err
	}

	pos += wire.EncodeUint16(buf[pos:], u.PacketID)
	for _, f := range filters {
		pos += EncodeBytes(buf[pos:], f)
	}

	return pos, nil
}

// DecodeUnsubscribe decodes an UNSUBSCRIBE packet from a complete frame.
func DecodeUnsubscribe(buf []byte) (*Unsubscribe, error) {
	_, body, err := splitFrame(buf)
	if err != nil {
		return nil, err
	}
	if len(body) < 4 { // packet ID + at least one (possibly empty) filter
		return nil, wire.Malformedf("UNSUBSCRIBE body of %d bytes", len(body))
	}

	u := &Unsubscribe{}
	packetID, pos, _ := wire.DecodeUint16(body)
	if packetID == 0 {
		return nil, ErrInvalidPacketID
	}
	u.PacketID = packetID

	for pos < len(body) {
		filter, n, err := decodeText(body[pos:], "topic_filter")
		if err != nil {
			return nil, err
		}
		u.TopicFilters = append(u.TopicFilters, filter)
		pos += n
	}

	return u, nil
}
