package snpacket

import (
	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

// Publish represents an MQTT-SN PUBLISH message.
// MQTT-SN 1.2 Section 5.4.12
type Publish struct {
	DUP         bool
	QoS         QoS
	Retain      bool
	TopicIDType TopicIDType

	// TopicID is a registered or predefined id, or the two bytes of a
	// short topic name.
	TopicID uint16
	MsgID   uint16
	Data    []byte
}

// NewShortPublish creates a PUBLISH addressed by a two character topic name.
func NewShortPublish(name string, data []byte, qos QoS, retain bool) (*Publish, error) {
	id, err := ShortTopicID(name)
	if err != nil {
		return nil, err
	}
	return &Publish{
		QoS:         qos,
		Retain:      retain,
		TopicIDType: TopicIDShort,
		TopicID:     id,
		Data:        data,
	}, nil
}

// ShortTopicID packs a two byte topic name into a topic id.
func ShortTopicID(name string) (uint16, error) {
	if len(name) != 2 {
		return 0, wire.Invalidf("short topic name %q must be two bytes", name)
	}
	return uint16(name[0])<<8 | uint16(name[1]), nil
}

// ShortTopicName unpacks a topic id carrying a short topic name.
func ShortTopicName(id uint16) string {
	return string([]byte{byte(id >> 8), byte(id)})
}

// TopicName returns the short topic name carried in TopicID, or "" when
// the topic is addressed by id.
func (p *Publish) TopicName() string {
	if p.TopicIDType != TopicIDShort {
		return ""
	}
	return ShortTopicName(p.TopicID)
}

// Type returns TypePublish.
func (p *Publish) Type() MsgType {
	return TypePublish
}

// EncodedSize returns the total size of the encoded frame.
func (p *Publish) EncodedSize() int {
	return frameSize(5 + len(p.Data))
}

// Encode encodes the message into buf.
func (p *Publish) Encode(buf []byte) (int, error) {
	if p.QoS == QoSMinusOne && p.TopicIDType == TopicIDNormal {
		return 0, wire.Invalidf("PUBLISH QoS -1 needs a predefined or short topic")
	}
	flags, err := Flags{
		DUP:         p.DUP,
		QoS:         p.QoS,
		Retain:      p.Retain,
		TopicIDType: p.TopicIDType,
	}.Encode()
	if err != nil {
		return 0, err
	}

	pos, err := beginFrame(buf, TypePublish, 5+len(p.Data))
	if err != nil {
		return 0, err
	}
	buf[pos] = flags
	pos++
	pos += wire.EncodeUint16(buf[pos:], p.TopicID)
	pos += wire.EncodeUint16(buf[pos:], p.MsgID)
	pos += copy(buf[pos:], p.Data)
	return pos, nil
}

// DecodePublish decodes a PUBLISH frame.
func DecodePublish(buf []byte) (*Publish, error) {
	payload, err := fixedPayload(buf, TypePublish, 5)
	if err != nil {
		return nil, err
	}

	f := DecodeFlags(payload[0])
	topicID, _, _ := wire.DecodeUint16(payload[1:])
	msgID, _, _ := wire.DecodeUint16(payload[3:])
	return &Publish{
		DUP:         f.DUP,
		QoS:         f.QoS,
		Retain:      f.Retain,
		TopicIDType: f.TopicIDType,
		TopicID:     topicID,
		MsgID:       msgID,
		Data:        clone(payload[5:]),
	}, nil
}

// Puback acknowledges a QoS 1 PUBLISH, or rejects a PUBLISH of any level.
// MQTT-SN 1.2 Section 5.4.13
type Puback struct {
	TopicID    uint16
	MsgID      uint16
	ReturnCode ReturnCode
}

// Type returns TypePuback.
func (p *Puback) Type() MsgType {
	return TypePuback
}

// EncodedSize returns 7.
func (p *Puback) EncodedSize() int {
	return 7
}

// Encode encodes the message into buf.
func (p *Puback) Encode(buf []byte) (int, error) {
	return encodeTopicAck(buf, TypePuback, p.TopicID, p.MsgID, p.ReturnCode)
}

// DecodePuback decodes a PUBACK frame.
func DecodePuback(buf []byte) (*Puback, error) {
	payload, err := fixedPayload(buf, TypePuback, 5)
	if err != nil {
		return nil, err
	}
	p := &Puback{}
	p.TopicID, p.MsgID, p.ReturnCode = decodeTopicAck(payload)
	return p, nil
}

// Ack represents the messages that carry only a message id:
// PUBREC, PUBREL, PUBCOMP and UNSUBACK.
// MQTT-SN 1.2 Sections 5.4.14 and 5.4.18
type Ack struct {
	Kind  MsgType
	MsgID uint16
}

// IsAck reports whether t is a kind carried by Ack.
func IsAck(t MsgType) bool {
	switch t {
	case TypePubrec, TypePubrel, TypePubcomp, TypeUnsuback:
		return true
	default:
		return false
	}
}

// Type returns the message kind.
func (a *Ack) Type() MsgType {
	return a.Kind
}

// EncodedSize returns 4.
func (a *Ack) EncodedSize() int {
	return 4
}

// Encode encodes the message into buf.
func (a *Ack) Encode(buf []byte) (int, error) {
	if !IsAck(a.Kind) {
		return 0, wire.Invalidf("%s is not an acknowledgment", a.Kind)
	}
	pos, err := beginFrame(buf, a.Kind, 2)
	if err != nil {
		return 0, err
	}
	pos += wire.EncodeUint16(buf[pos:], a.MsgID)
	return pos, nil
}

// DecodeAck decodes an acknowledgment of the given kind.
func DecodeAck(kind MsgType, buf []byte) (*Ack, error) {
	if !IsAck(kind) {
		return nil, wire.Unknownf("%s is not an acknowledgment", kind)
	}
	payload, err := fixedPayload(buf, kind, 2)
	if err != nil {
		return nil, err
	}
	id, _, _ := wire.DecodeUint16(payload)
	return &Ack{Kind: kind, MsgID: id}, nil
}
