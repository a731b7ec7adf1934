package snpacket

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// WillTopic represents a WILLTOPIC message.
// An empty Topic is the "clear will" form: the frame carries neither a
// flags byte nor topic bytes.
// MQTT-SN 1.2 Section 5.4.7
type WillTopic struct {
	QoS    QoS
	Retain bool
	Topic  string
}

// Type returns TypeWillTopic.
func (w *WillTopic) Type() MsgType { return TypeWillTopic }

// EncodedSize returns the total size of the encoded frame.
func (w *WillTopic) EncodedSize() int { return willTopicSize(w.Topic) }

// Encode encodes the message into buf.
func (w *WillTopic) Encode(buf []byte) (int, error) {
	return encodeWillTopic(buf, TypeWillTopic, w.QoS, w.Retain, w.Topic)
}

// DecodeWillTopic decodes a WILLTOPIC frame.
func DecodeWillTopic(buf []byte) (*WillTopic, error) {
	w := &WillTopic{}
	var err error
	w.QoS, w.Retain, w.Topic, err = decodeWillTopic(buf, TypeWillTopic)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// WillTopicUpdate represents a WILLTOPICUPD message. It has the same layout
// as WILLTOPIC; an empty Topic deletes the stored will.
// MQTT-SN 1.2 Section 5.4.23
type WillTopicUpdate struct {
	QoS    QoS
	Retain bool
	Topic  string
}

// Type returns TypeWillTopicUpd.
func (w *WillTopicUpdate) Type() MsgType { return TypeWillTopicUpd }

// EncodedSize returns the total size of the encoded frame.
func (w *WillTopicUpdate) EncodedSize() int { return willTopicSize(w.Topic) }

// Encode encodes the message into buf.
func (w *WillTopicUpdate) Encode(buf []byte) (int, error) {
	return encodeWillTopic(buf, TypeWillTopicUpd, w.QoS, w.Retain, w.Topic)
}

// DecodeWillTopicUpdate decodes a WILLTOPICUPD frame.
func DecodeWillTopicUpdate(buf []byte) (*WillTopicUpdate, error) {
	w := &WillTopicUpdate{}
	var err error
	w.QoS, w.Retain, w.Topic, err = decodeWillTopic(buf, TypeWillTopicUpd)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func willTopicSize(topic string) int {
	if topic == "" {
		return frameSize(0)
	}
	return frameSize(1 + wire.TextLen(topic))
}

func encodeWillTopic(buf []byte, t MsgType, qos QoS, retain bool, topic string) (int, error) {
	flags, err := Flags{QoS: qos, Retain: retain}.Encode()
	if err != nil {
		return 0, err
	}
	if topic == "" {
		return beginFrame(buf, t, 0)
	}

	text, err := wire.EncodeText(topic)
	if err != nil {
		return 0, err
	}
	pos, err := beginFrame(buf, t, 1+len(text))
	if err != nil {
		return 0, err
	}
	buf[pos] = flags
	pos++
	pos += copy(buf[pos:], text)
	return pos, nil
}

// decodeWillTopic treats an empty payload as a will clear. A payload of just
// the flags byte still carries QoS and retain, with an empty topic; older
// gateways ignore the flags in that case.
func decodeWillTopic(buf []byte, t MsgType) (QoS, bool, string, error) {
	payload, err := payloadOf(buf, t)
	if err != nil {
		return 0, false, "", err
	}
	if len(payload) == 0 {
		return QoS0, false, "", nil
	}

	f := DecodeFlags(payload[0])
	return f.QoS, f.Retain, decodeName(payload[1:], "will_topic"), nil
}

// WillMsg represents a WILLMSG message.
// MQTT-SN 1.2 Section 5.4.9
type WillMsg struct {
	Msg []byte
}

// Type returns TypeWillMsg.
func (w *WillMsg) Type() MsgType { return TypeWillMsg }

// EncodedSize returns the total size of the encoded frame.
func (w *WillMsg) EncodedSize() int { return frameSize(len(w.Msg)) }

// Encode encodes the message into buf.
func (w *WillMsg) Encode(buf []byte) (int, error) {
	return encodeRaw(buf, TypeWillMsg, w.Msg)
}

// DecodeWillMsg decodes a WILLMSG frame.
func DecodeWillMsg(buf []byte) (*WillMsg, error) {
	payload, err := payloadOf(buf, TypeWillMsg)
	if err != nil {
		return nil, err
	}
	return &WillMsg{Msg: clone(payload)}, nil
}

// WillMsgUpdate represents a WILLMSGUPD message.
// MQTT-SN 1.2 Section 5.4.25
type WillMsgUpdate struct {
	Msg []byte
}

// Type returns TypeWillMsgUpd.
func (w *WillMsgUpdate) Type() MsgType { return TypeWillMsgUpd }

// EncodedSize returns the total size of the encoded frame.
func (w *WillMsgUpdate) EncodedSize() int { return frameSize(len(w.Msg)) }

// Encode encodes the message into buf.
func (w *WillMsgUpdate) Encode(buf []byte) (int, error) {
	return encodeRaw(buf, TypeWillMsgUpd, w.Msg)
}

// DecodeWillMsgUpdate decodes a WILLMSGUPD frame.
func DecodeWillMsgUpdate(buf []byte) (*WillMsgUpdate, error) {
	payload, err := payloadOf(buf, TypeWillMsgUpd)
	if err != nil {
		return nil, err
	}
	return &WillMsgUpdate{Msg: clone(payload)}, nil
}

func encodeRaw(buf []byte, t MsgType, data []byte) (int, error) {
	pos, err := beginFrame(buf, t, len(data))
	if err != nil {
		return 0, err
	}
	pos += copy(buf[pos:], data)
	return pos, nil
}

// Empty represents the messages that carry nothing but their type:
// WILLTOPICREQ, WILLMSGREQ and PINGRESP.
type Empty struct {
	Kind MsgType
}

// IsEmpty reports whether t is a kind carried by Empty.
func IsEmpty(t MsgType) bool {
	return t == TypeWillTopicReq || t == TypeWillMsgReq || t == TypePingresp
}

// Type returns the message kind.
func (e *Empty) Type() MsgType { return e.Kind }

// EncodedSize returns 2.
func (e *Empty) EncodedSize() int { return 2 }

// Encode encodes the message into buf.
func (e *Empty) Encode(buf []byte) (int, error) {
	if !IsEmpty(e.Kind) {
		return 0, wire.Invalidf("%s is not an empty message", e.Kind)
	}
	return beginFrame(buf, e.Kind, 0)
}

// DecodeEmpty decodes an empty message of the given kind. Payload bytes
// are ignored.
func DecodeEmpty(kind MsgType, buf []byte) (*Empty, error) {
	if !IsEmpty(kind) {
		return nil, wire.Unknownf("%s is not an empty message", kind)
	}
	if _, err := payloadOf(buf, kind); err != nil {
		return nil, err
	}
	return &Empty{Kind: kind}, nil
}

// Response represents the messages that carry only a return code:
// CONNACK, WILLTOPICRESP and WILLMSGRESP.
type Response struct {
	Kind       MsgType
	ReturnCode ReturnCode
}

// IsResponse reports whether t is a kind carried by Response.
func IsResponse(t MsgType) bool {
	return t == TypeConnack || t == TypeWillTopicResp || t == TypeWillMsgResp
}

// Type returns the message kind.
func (r *Response) Type() MsgType { return r.Kind }

// EncodedSize returns 3.
func (r *Response) EncodedSize() int { return 3 }

// Encode encodes the message into buf.
func (r *Response) Encode(buf []byte) (int, error) {
	if !IsResponse(r.Kind) {
		return 0, wire.Invalidf("%s is not a response", r.Kind)
	}
	pos, err := beginFrame(buf, r.Kind, 1)
	if err != nil {
		return 0, err
	}
	buf[pos] = byte(r.ReturnCode)
	return pos + 1, nil
}

// DecodeResponse decodes a response of the given kind.
func DecodeResponse(kind MsgType, buf []byte) (*Response, error) {
	if !IsResponse(kind) {
		return nil, wire.Unknownf("%s is not a response", kind)
	}
	payload, err := fixedPayload(buf, kind, 1)
	if err != nil {
		return nil, err
	}
	return &Response{Kind: kind, ReturnCode: ReturnCode(payload[0])}, nil
}
