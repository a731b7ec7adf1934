package snpacket

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// Flag bits of the MQTT-SN flags byte (MQTT-SN 1.2 Section 5.3.4).
const (
	flagDUP          = 1 << 7
	flagQoSShift     = 5
	flagQoSMask      = 0x03 << flagQoSShift
	flagRetain       = 1 << 4
	flagWill         = 1 << 3
	flagCleanSession = 1 << 2
	flagTopicIDMask  = 0x03
)

// Flags is the unpacked flags byte. Each message kind uses the subset of
// fields the protocol assigns to it; the rest stay zero on the wire.
type Flags struct {
	DUP          bool
	QoS          QoS
	Retain       bool
	Will         bool
	CleanSession bool
	TopicIDType  TopicIDType
}

// qosBits maps a QoS to its two bit pattern. -1 takes the otherwise
// unused pattern 11.
func qosBits(q QoS) (byte, error) {
	switch q {
	case QoS0:
		return 0x00, nil
	case QoS1:
		return 0x01, nil
	case QoS2:
		return 0x02, nil
	case QoSMinusOne:
		return 0x03, nil
	default:
		return 0, wire.Invalidf("QoS %d", int8(q))
	}
}

// Encode packs f into one byte.
func (f Flags) Encode() (byte, error) {
	q, err := qosBits(f.QoS)
	if err != nil {
		return 0, err
	}
	if f.TopicIDType > TopicIDShort {
		return 0, wire.Invalidf("topic id type %d", f.TopicIDType)
	}

	b := q<<flagQoSShift | byte(f.TopicIDType)
	if f.DUP {
		b |= flagDUP
	}
	if f.Retain {
		b |= flagRetain
	}
	if f.Will {
		b |= flagWill
	}
	if f.CleanSession {
		b |= flagCleanSession
	}
	return b, nil
}

// DecodeFlags unpacks a flags byte. The QoS bits are read as an unsigned
// value, so pattern 11 decodes to QoS 3 rather than QoSMinusOne.
func DecodeFlags(b byte) Flags {
	return Flags{
		DUP:          b&flagDUP != 0,
		QoS:          QoS((b & flagQoSMask) >> flagQoSShift),
		Retain:       b&flagRetain != 0,
		Will:         b&flagWill != 0,
		CleanSession: b&flagCleanSession != 0,
		TopicIDType:  TopicIDType(b & flagTopicIDMask),
	}
}
