package snpacket

import (
	"fmt"

	"github.com/bromq-dev/mqttsn-gateway/pkg/topic"
	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

// Subscribe represents an MQTT-SN SUBSCRIBE message. TopicName is used
// for normal and short topics, TopicID for predefined ones.
// MQTT-SN 1.2 Section 5.4.15
type Subscribe struct {
	DUP         bool
	QoS         QoS
	TopicIDType TopicIDType
	MsgID       uint16
	TopicName   string
	TopicID     uint16
}

// NewSubscribe creates a SUBSCRIBE for a topic filter, using the short
// topic form when the filter is a two character name.
func NewSubscribe(filter string, qos QoS, msgID uint16) (*Subscribe, error) {
	if qos < QoS0 || qos > QoS2 {
		return nil, wire.Invalidf("SUBSCRIBE QoS %d", int8(qos))
	}
	typ, err := filterType(filter)
	if err != nil {
		return nil, err
	}
	return &Subscribe{QoS: qos, TopicIDType: typ, MsgID: msgID, TopicName: filter}, nil
}

// Type returns TypeSubscribe.
func (s *Subscribe) Type() MsgType {
	return TypeSubscribe
}

// EncodedSize returns the total size of the encoded frame.
func (s *Subscribe) EncodedSize() int {
	return frameSize(3 + topicFieldLen(s.TopicIDType, s.TopicName))
}

// Encode encodes the message into buf.
func (s *Subscribe) Encode(buf []byte) (int, error) {
	flags, err := Flags{DUP: s.DUP, QoS: s.QoS, TopicIDType: s.TopicIDType}.Encode()
	if err != nil {
		return 0, err
	}
	return encodeTopicRequest(buf, TypeSubscribe, flags, s.MsgID, s.TopicIDType, s.TopicName, s.TopicID)
}

// DecodeSubscribe decodes a SUBSCRIBE frame.
func DecodeSubscribe(buf []byte) (*Subscribe, error) {
	payload, err := fixedPayload(buf, TypeSubscribe, 3)
	if err != nil {
		return nil, err
	}

	f := DecodeFlags(payload[0])
	s := &Subscribe{DUP: f.DUP, QoS: f.QoS, TopicIDType: f.TopicIDType}
	s.MsgID, s.TopicName, s.TopicID, err = decodeTopicRequest(payload, TypeSubscribe, f.TopicIDType)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Unsubscribe represents an MQTT-SN UNSUBSCRIBE message.
// MQTT-SN 1.2 Section 5.4.17
type Unsubscribe struct {
	TopicIDType TopicIDType
	MsgID       uint16
	TopicName   string
	TopicID     uint16
}

// NewUnsubscribe creates an UNSUBSCRIBE for a topic filter.
func NewUnsubscribe(filter string, msgID uint16) (*Unsubscribe, error) {
	typ, err := filterType(filter)
	if err != nil {
		return nil, err
	}
	return &Unsubscribe{TopicIDType: typ, MsgID: msgID, TopicName: filter}, nil
}

// Type returns TypeUnsubscribe.
func (u *Unsubscribe) Type() MsgType {
	return TypeUnsubscribe
}

// EncodedSize returns the total size of the encoded frame.
func (u *Unsubscribe) EncodedSize() int {
	return frameSize(3 + topicFieldLen(u.TopicIDType, u.TopicName))
}

// Encode encodes the message into buf.
func (u *Unsubscribe) Encode(buf []byte) (int, error) {
	flags, err := Flags{TopicIDType: u.TopicIDType}.Encode()
	if err != nil {
		return 0, err
	}
	return encodeTopicRequest(buf, TypeUnsubscribe, flags, u.MsgID, u.TopicIDType, u.TopicName, u.TopicID)
}

// DecodeUnsubscribe decodes an UNSUBSCRIBE frame.
func DecodeUnsubscribe(buf []byte) (*Unsubscribe, error) {
	payload, err := fixedPayload(buf, TypeUnsubscribe, 3)
	if err != nil {
		return nil, err
	}

	typ := DecodeFlags(payload[0]).TopicIDType
	u := &Unsubscribe{TopicIDType: typ}
	u.MsgID, u.TopicName, u.TopicID, err = decodeTopicRequest(payload, TypeUnsubscribe, typ)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Suback acknowledges a SUBSCRIBE with the granted QoS and, for a normal
// topic name without wildcards, the assigned topic id.
// MQTT-SN 1.2 Section 5.4.16
type Suback struct {
	QoS        QoS
	TopicID    uint16
	MsgID      uint16
	ReturnCode ReturnCode
}

// Type returns TypeSuback.
func (s *Suback) Type() MsgType {
	return TypeSuback
}

// EncodedSize returns 8.
func (s *Suback) EncodedSize() int {
	return 8
}

// Encode encodes the message into buf.
func (s *Suback) Encode(buf []byte) (int, error) {
	flags, err := Flags{QoS: s.QoS}.Encode()
	if err != nil {
		return 0, err
	}
	pos, err := beginFrame(buf, TypeSuback, 6)
	if err != nil {
		return 0, err
	}
	buf[pos] = flags
	pos++
	pos += wire.EncodeUint16(buf[pos:], s.TopicID)
	pos += wire.EncodeUint16(buf[pos:], s.MsgID)
	buf[pos] = byte(s.ReturnCode)
	return pos + 1, nil
}

// DecodeSuback decodes a SUBACK frame.
func DecodeSuback(buf []byte) (*Suback, error) {
	payload, err := fixedPayload(buf, TypeSuback, 6)
	if err != nil {
		return nil, err
	}
	topicID, _, _ := wire.DecodeUint16(payload[1:])
	msgID, _, _ := wire.DecodeUint16(payload[3:])
	return &Suback{
		QoS:        DecodeFlags(payload[0]).QoS,
		TopicID:    topicID,
		MsgID:      msgID,
		ReturnCode: ReturnCode(payload[5]),
	}, nil
}

// filterType validates a topic filter and picks how it is carried.
func filterType(filter string) (TopicIDType, error) {
	if err := topic.ValidateFilter(filter); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidTopic, err)
	}
	if topic.IsShortName(filter) {
		return TopicIDShort, nil
	}
	return TopicIDNormal, nil
}

func topicFieldLen(typ TopicIDType, name string) int {
	if typ == TopicIDNormal {
		return wire.TextLen(name)
	}
	return 2
}

// encodeTopicRequest writes Flags, MsgID and the topic field shared by
// SUBSCRIBE and UNSUBSCRIBE.
func encodeTopicRequest(buf []byte, t MsgType, flags byte, msgID uint16, typ TopicIDType, name string, id uint16) (int, error) {
	var field []byte
	switch typ {
	case TopicIDNormal:
		if name == "" {
			return 0, fmt.Errorf("%w: %s needs a topic name", ErrInvalidTopic, t)
		}
		var err error
		if field, err = wire.EncodeText(name); err != nil {
			return 0, err
		}
	case TopicIDShort:
		short, err := ShortTopicID(name)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidTopic, err)
		}
		field = []byte{byte(short >> 8), byte(short)}
	default:
		field = []byte{byte(id >> 8), byte(id)}
	}

	pos, err := beginFrame(buf, t, 3+len(field))
	if err != nil {
		return 0, err
	}
	buf[pos] = flags
	pos++
	pos += wire.EncodeUint16(buf[pos:], msgID)
	pos += copy(buf[pos:], field)
	return pos, nil
}

func decodeTopicRequest(payload []byte, t MsgType, typ TopicIDType) (msgID uint16, name string, id uint16, err error) {
	msgID, _, _ = wire.DecodeUint16(payload[1:])
	field := payload[3:]

	switch typ {
	case TopicIDNormal:
		return msgID, decodeName(field, "topic_name"), 0, nil
	case TopicIDShort:
		if len(field) < 2 {
			return 0, "", 0, wire.Malformedf("%s short topic of %d bytes", t, len(field))
		}
		return msgID, string(field[:2]), 0, nil
	default:
		id, _, ok := wire.DecodeUint16(field)
		if !ok {
			return 0, "", 0, wire.Malformedf("%s topic id of %d bytes", t, len(field))
		}
		return msgID, "", id, nil
	}
}
