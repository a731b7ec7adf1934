package snpacket

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// Register represents a REGISTER. A client sends it with TopicID 0 to ask
// for an id; a gateway sends it to announce one.
// MQTT-SN 1.2 Section 5.4.10
type Register struct {
	TopicID   uint16
	MsgID     uint16
	TopicName string
}

func (r *Register) Type() MsgType {
	return TypeRegister
}

func (r *Register) EncodedSize() int {
	return frameSize(4 + wire.TextLen(r.TopicName))
}

func (r *Register) Encode(buf []byte) (int, error) {
	if r.TopicName == "" {
		return 0, wire.Invalidf("REGISTER needs a topic name")
	}
	name, err := wire.EncodeText(r.TopicName)
	if err != nil {
		return 0, err
	}

	pos, err := beginFrame(buf, TypeRegister, 4+len(name))
	if err != nil {
		return 0, err
	}
	pos += wire.EncodeUint16(buf[pos:], r.TopicID)
	pos += wire.EncodeUint16(buf[pos:], r.MsgID)
	pos += copy(buf[pos:], name)
	return pos, nil
}

func DecodeRegister(buf []byte) (*Register, error) {
	payload, err := fixedPayload(buf, TypeRegister, 4)
	if err != nil {
		return nil, err
	}
	topicID, _, _ := wire.DecodeUint16(payload)
	msgID, _, _ := wire.DecodeUint16(payload[2:])
	return &Register{
		TopicID:   topicID,
		MsgID:     msgID,
		TopicName: decodeName(payload[4:], "topic_name"),
	}, nil
}

// Regack acknowledges a REGISTER.
type Regack struct {
	TopicID    uint16
	MsgID      uint16
	ReturnCode ReturnCode
}

func (r *Regack) Type() MsgType {
	return TypeRegack
}

func (r *Regack) EncodedSize() int {
	return 7
}

func (r *Regack) Encode(buf []byte) (int, error) {
	return encodeTopicAck(buf, TypeRegack, r.TopicID, r.MsgID, r.ReturnCode)
}

func DecodeRegack(buf []byte) (*Regack, error) {
	payload, err := fixedPayload(buf, TypeRegack, 5)
	if err != nil {
		return nil, err
	}
	r := &Regack{}
	r.TopicID, r.MsgID, r.ReturnCode = decodeTopicAck(payload)
	return r, nil
}

// encodeTopicAck writes the TopicID, MsgID, ReturnCode layout shared by
// REGACK and PUBACK.
func encodeTopicAck(buf []byte, t MsgType, topicID, msgID uint16, code ReturnCode) (int, error) {
	pos, err := beginFrame(buf, t, 5)
	if err != nil {
		return 0, err
	}
	pos += wire.EncodeUint16(buf[pos:], topicID)
	pos += wire.EncodeUint16(buf[pos:], msgID)
	buf[pos] = byte(code)
	return pos + 1, nil
}

func decodeTopicAck(payload []byte) (topicID, msgID uint16, code ReturnCode) {
	topicID, _, _ = wire.DecodeUint16(payload)
	msgID, _, _ = wire.DecodeUint16(payload[2:])
	return topicID, msgID, ReturnCode(payload[4])
}
