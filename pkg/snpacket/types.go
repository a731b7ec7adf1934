// Package snpacket provides encoding and decoding of MQTT-SN 1.2
// messages, the sensor-network side of the gateway.
//
// Every frame starts with a length prefix of one byte, or three bytes
// (0x01, hi, lo) when the frame is longer than 255 bytes, followed by the
// message type byte. The length counts the whole frame, prefix included.
package snpacket

import "fmt"

// MsgType identifies an MQTT-SN message kind.
type MsgType byte

// MQTT-SN message types as defined in MQTT-SN 1.2 Section 5.2.2
const (
	TypeAdvertise     MsgType = 0x00
	TypeSearchGw      MsgType = 0x01
	TypeGwInfo        MsgType = 0x02
	TypeConnect       MsgType = 0x04
	TypeConnack       MsgType = 0x05
	TypeWillTopicReq  MsgType = 0x06
	TypeWillTopic     MsgType = 0x07
	TypeWillMsgReq    MsgType = 0x08
	TypeWillMsg       MsgType = 0x09
	TypeRegister      MsgType = 0x0A
	TypeRegack        MsgType = 0x0B
	TypePublish       MsgType = 0x0C
	TypePuback        MsgType = 0x0D
	TypePubcomp       MsgType = 0x0E
	TypePubrec        MsgType = 0x0F
	TypePubrel        MsgType = 0x10
	TypeSubscribe     MsgType = 0x12
	TypeSuback        MsgType = 0x13
	TypeUnsubscribe   MsgType = 0x14
	TypeUnsuback      MsgType = 0x15
	TypePingreq       MsgType = 0x16
	TypePingresp      MsgType = 0x17
	TypeDisconnect    MsgType = 0x18
	TypeWillTopicUpd  MsgType = 0x1A
	TypeWillTopicResp MsgType = 0x1B
	TypeWillMsgUpd    MsgType = 0x1C
	TypeWillMsgResp   MsgType = 0x1D

	// TypeEncapsulated wraps frames relayed by a forwarder. It is recognised
	// by String but not decoded.
	TypeEncapsulated MsgType = 0xFE
)

var typeNames = map[MsgType]string{
	TypeAdvertise:     "ADVERTISE",
	TypeSearchGw:      "SEARCHGW",
	TypeGwInfo:        "GWINFO",
	TypeConnect:       "CONNECT",
	TypeConnack:       "CONNACK",
	TypeWillTopicReq:  "WILLTOPICREQ",
	TypeWillTopic:     "WILLTOPIC",
	TypeWillMsgReq:    "WILLMSGREQ",
	TypeWillMsg:       "WILLMSG",
	TypeRegister:      "REGISTER",
	TypeRegack:        "REGACK",
	TypePublish:       "PUBLISH",
	TypePuback:        "PUBACK",
	TypePubcomp:       "PUBCOMP",
	TypePubrec:        "PUBREC",
	TypePubrel:        "PUBREL",
	TypeSubscribe:     "SUBSCRIBE",
	TypeSuback:        "SUBACK",
	TypeUnsubscribe:   "UNSUBSCRIBE",
	TypeUnsuback:      "UNSUBACK",
	TypePingreq:       "PINGREQ",
	TypePingresp:      "PINGRESP",
	TypeDisconnect:    "DISCONNECT",
	TypeWillTopicUpd:  "WILLTOPICUPD",
	TypeWillTopicResp: "WILLTOPICRESP",
	TypeWillMsgUpd:    "WILLMSGUPD",
	TypeWillMsgResp:   "WILLMSGRESP",
	TypeEncapsulated:  "ENCAPSULATED",
}

func (t MsgType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("RESERVED(0x%02X)", byte(t))
}

// Valid reports whether t is a message kind this package decodes.
func (t MsgType) Valid() bool {
	_, ok := typeNames[t]
	return ok && t != TypeEncapsulated
}

// QoS is the MQTT-SN quality of service level. QoSMinusOne is the
// "publish without connection" level, carried as bit pattern 11.
type QoS int8

const (
	QoSMinusOne QoS = -1
	QoS0        QoS = 0
	QoS1        QoS = 1
	QoS2        QoS = 2
)

// Valid reports whether q can be encoded in a flags byte.
func (q QoS) Valid() bool {
	return q >= QoSMinusOne && q <= QoS2
}

func (q QoS) String() string {
	switch q {
	case QoSMinusOne:
		return "QoS-1"
	case QoS0, QoS1, QoS2:
		return fmt.Sprintf("QoS%d", q)
	default:
		return fmt.Sprintf("QoS(%d)", int8(q))
	}
}

// TopicIDType tells how the topic of a PUBLISH, SUBSCRIBE or
// UNSUBSCRIBE is carried.
type TopicIDType byte

const (
	TopicIDNormal     TopicIDType = 0x00 // registered topic id or full topic name
	TopicIDPredefined TopicIDType = 0x01 // topic id agreed out of band
	TopicIDShort      TopicIDType = 0x02 // two character topic name
)

func (t TopicIDType) String() string {
	switch t {
	case TopicIDNormal:
		return "normal"
	case TopicIDPredefined:
		return "predefined"
	case TopicIDShort:
		return "short"
	default:
		return "reserved"
	}
}

// ReturnCode is the result carried by acknowledgments.
type ReturnCode byte

const (
	Accepted               ReturnCode = 0x00
	RejectedCongestion     ReturnCode = 0x01
	RejectedInvalidTopicID ReturnCode = 0x02
	RejectedNotSupported   ReturnCode = 0x03
)

func (c ReturnCode) String() string {
	switch c {
	case Accepted:
		return "accepted"
	case RejectedCongestion:
		return "rejected: congestion"
	case RejectedInvalidTopicID:
		return "rejected: invalid topic ID"
	case RejectedNotSupported:
		return "rejected: not supported"
	default:
		return fmt.Sprintf("reserved(0x%02X)", byte(c))
	}
}

// ProtocolID is the only protocol id defined for CONNECT.
const ProtocolID byte = 0x01

// MaxFrameSize is the largest frame the three byte length prefix can describe.
const MaxFrameSize = 65535
