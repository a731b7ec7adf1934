// Package codec dispatches frames to the classic or sensor-network
// codec. Callers that already know which message they hold can use the
// protocol packages directly; codec serves the places that only hold a
// protocol tag and bytes, such as capture replay and the CLI.
package codec

import (
	"fmt"
	"strings"

	"github.com/bromq-dev/mqttsn-gateway/pkg/packet"
	"github.com/bromq-dev/mqttsn-gateway/pkg/snpacket"
	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

// Protocol identifies a wire protocol.
type Protocol uint8

const (
	// MQTT is classic MQTT 3.1/3.1.1.
	MQTT Protocol = iota + 1
	// MQTTSN is MQTT-SN 1.2.
	MQTTSN
)

func (p Protocol) String() string {
	switch p {
	case MQTT:
		return "mqtt"
	case MQTTSN:
		return "mqtt-sn"
	default:
		return fmt.Sprintf("protocol(%d)", uint8(p))
	}
}

// ParseProtocol parses a protocol name as accepted on the command line.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(s) {
	case "mqtt", "classic":
		return MQTT, nil
	case "mqtt-sn", "mqttsn", "sn":
		return MQTTSN, nil
	default:
		return 0, wire.Invalidf("unknown protocol %q", s)
	}
}

// Message is implemented by every classic packet and every MQTT-SN message.
type Message interface {
	EncodedSize() int
	Encode(buf []byte) (int, error)
}

// Decode decodes one frame of the given protocol.
func Decode(p Protocol, buf []byte) (Message, error) {
	switch p {
	case MQTT:
		pkt, err := packet.Decode(buf)
		if err != nil {
			return nil, err
		}
		return pkt, nil
	case MQTTSN:
		msg, err := snpacket.Decode(buf)
		if err != nil {
			return nil, err
		}
		return msg, nil
	default:
		return nil, wire.Invalidf("unknown protocol %d", uint8(p))
	}
}

// Encode encodes m into a freshly allocated buffer.
func Encode(m Message) ([]byte, error) {
	buf := make([]byte, m.EncodedSize())
	n, err := m.Encode(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// ProtocolOf returns the protocol m belongs to, or 0 for foreign types.
func ProtocolOf(m Message) Protocol {
	switch m.(type) {
	case packet.Packet:
		return MQTT
	case snpacket.Message:
		return MQTTSN
	default:
		return 0
	}
}

// Kind returns the message type name of m, e.g. "PUBCOMP".
func Kind(m Message) string {
	switch v := m.(type) {
	case packet.Packet:
		return v.Type().String()
	case snpacket.Message:
		return v.Type().String()
	default:
		return fmt.Sprintf("%T", m)
	}
}
