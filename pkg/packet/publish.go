package packet

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// Publish represents an MQTT PUBLISH packet.
// MQTT 3.1.1 Section 3.3
type Publish struct {
	// Fixed header flags
	Dup    bool // Duplicate delivery flag
	QoS    QoS  // Quality of Service level
	Retain bool // Retain flag

	// Variable header
	TopicName string // Topic name
	PacketID  uint16 // Packet identifier (only for QoS > 0)

	// Payload
	Payload []byte
}

// NewPublish creates a new PUBLISH packet.
func NewPublish(topic string, payload []byte, qos QoS, retain bool) *Publish {
	return &Publish{
		TopicName: topic,
		Payload:   payload,
		QoS:       qos,
		Retain:    retain,
	}
}

// Type returns TypePublish.
func (p *Publish) Type() Type {
	return TypePublish
}

// flags returns the fixed header flags for this PUBLISH packet.
func (p *Publish) flags() byte {
	var flags byte
	if p.Retain {
		flags |= PublishFlagRetain
	}
	flags |= byte(p.QoS) << 1
	if p.Dup {
		flags |= PublishFlagDup
	}
	return flags
}

func (p *Publish) remainingLength(topic []byte) int {
	n := 2 + len(topic) + len(p.Payload)
	if p.QoS > QoS0 {
		n += 2
	}
	return n
}

// EncodedSize returns the total size of the encoded PUBLISH packet.
func (p *Publish) EncodedSize() int {
	rl := 2 + wire.TextLen(p.TopicName) + len(p.Payload)
	if p.QoS > QoS0 {
		rl += 2
	}
	return FixedHeaderSize(uint32(rl)) + rl
}

// Encode encodes the PUBLISH packet into buf.
func (p *Publish) Encode(buf []byte) (int, error) {
	if !p.QoS.Valid() {
		return 0, wire.Invalidf("PUBLISH QoS %d", p.QoS)
	}
	if p.QoS > QoS0 && p.PacketID == 0 {
		return 0, wire.Invalidf("PUBLISH QoS %d needs a packet identifier", p.QoS)
	}
	if p.QoS == QoS0 && p.Dup {
		return 0, wire.Invalidf("PUBLISH DUP set at QoS 0")
	}

	topic, err := encodeText(p.TopicName, "topic name")
	if err != nil {
		return 0, err
	}

	pos, err := beginFrame(buf, TypePublish, p.flags(), p.remainingLength(topic))
	if err != nil {
		return 0, err
	}

	pos += EncodeBytes(buf[pos:], topic)
	if p.QoS > QoS0 {
		pos += wire.EncodeUint16(buf[pos:], p.PacketID)
	}
	pos += copy(buf[pos:], p.Payload)

	return pos, nil
}

// DecodePublish decodes a PUBLISH packet from a complete frame.
func DecodePublish(buf []byte) (*Publish, error) {
	fh, body, err := splitFrame(buf)
	if err != nil {
		return nil, err
	}

	p := &Publish{
		Retain: fh.Flags&PublishFlagRetain != 0,
		QoS:    QoS((fh.Flags >> 1) & 0x03),
		Dup:    fh.Flags&PublishFlagDup != 0,
	}

	if !p.QoS.Valid() {
		return nil, ErrInvalidQoS
	}

	// DUP must be 0 for QoS 0
	if p.QoS == QoS0 && p.Dup {
		return nil, ErrInvalidFlags
	}

	topic, pos, err := decodeText(body, "topic_name")
	if err != nil {
		return nil, err
	}
	p.TopicName = topic

	if p.QoS > QoS0 {
		packetID, n, ok := wire.DecodeUint16(body[pos:])
		if !ok {
			return nil, wire.Malformedf("truncated PUBLISH packet identifier")
		}
		if packetID == 0 {
			return nil, ErrInvalidPacketID
		}
		p.PacketID = packetID
		pos += n
	}

	if pos < len(body) {
		p.Payload = make([]byte, len(body)-pos)
		copy(p.Payload, body[pos:])
	}

	return p, nil
}
