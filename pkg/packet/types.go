// Package packet provides encoding and decoding of classic MQTT 3.1 and
// 3.1.1 control packets, the fixed-header side of the gateway.
// Every decoder takes a complete frame, fixed header included.
package packet

// Type represents an MQTT control packet type.
type Type byte

// MQTT Control Packet types as defined in MQTT 3.1.1 Section 2.2.1
const (
	TypeReserved0   Type = 0  // Reserved
	TypeConnect     Type = 1  // Client request to connect to Server
	TypeConnack     Type = 2  // Connect acknowledgment
	TypePublish     Type = 3  // Publish message
	TypePuback      Type = 4  // Publish acknowledgment (QoS 1)
	TypePubrec      Type = 5  // Publish received (QoS 2 part 1)
	TypePubrel      Type = 6  // Publish release (QoS 2 part 2)
	TypePubcomp     Type = 7  // Publish complete (QoS 2 part 3)
	TypeSubscribe   Type = 8  // Subscribe request
	TypeSuback      Type = 9  // Subscribe acknowledgment
	TypeUnsubscribe Type = 10 // Unsubscribe request
	TypeUnsuback    Type = 11 // Unsubscribe acknowledgment
	TypePingreq     Type = 12 // PING request
	TypePingresp    Type = 13 // PING response
	TypeDisconnect  Type = 14 // Disconnect notification
	TypeReserved15  Type = 15 // Reserved (AUTH in MQTT 5.0, not spoken here)
)

// String returns the string representation of the packet type.
func (t Type) String() string {
	switch t {
	case TypeConnect:
		return "CONNECT"
	case TypeConnack:
		return "CONNACK"
	case TypePublish:
		return "PUBLISH"
	case TypePuback:
		return "PUBACK"
	case TypePubrec:
		return "PUBREC"
	case TypePubrel:
		return "PUBREL"
	case TypePubcomp:
		return "PUBCOMP"
	case TypeSubscribe:
		return "SUBSCRIBE"
	case TypeSuback:
		return "SUBACK"
	case TypeUnsubscribe:
		return "UNSUBSCRIBE"
	case TypeUnsuback:
		return "UNSUBACK"
	case TypePingreq:
		return "PINGREQ"
	case TypePingresp:
		return "PINGRESP"
	case TypeDisconnect:
		return "DISCONNECT"
	default:
		return "RESERVED"
	}
}

// Valid returns true if the packet type is valid.
func (t Type) Valid() bool {
	return t >= TypeConnect && t <= TypeDisconnect
}

// Version represents an MQTT protocol level.
type Version byte

const (
	Version31  Version = 3 // MQTT 3.1, protocol name "MQIsdp"
	Version311 Version = 4 // MQTT 3.1.1, protocol name "MQTT"
)

// String returns the string representation of the MQTT version.
func (v Version) String() string {
	switch v {
	case Version31:
		return "3.1"
	case Version311:
		return "3.1.1"
	default:
		return "unknown"
	}
}

// ProtocolName returns the protocol name carried in CONNECT for this version.
func (v Version) ProtocolName() string {
	if v == Version31 {
		return "MQIsdp"
	}
	return "MQTT"
}

// QoS represents MQTT Quality of Service level.
type QoS byte

const (
	QoS0 QoS = 0 // At most once delivery
	QoS1 QoS = 1 // At least once delivery
	QoS2 QoS = 2 // Exactly once delivery
)

// Valid returns true if the QoS level is valid.
func (q QoS) Valid() bool {
	return q <= QoS2
}

// String returns the string representation of the QoS level.
func (q QoS) String() string {
	switch q {
	case QoS0:
		return "QoS0"
	case QoS1:
		return "QoS1"
	case QoS2:
		return "QoS2"
	default:
		return "invalid"
	}
}

// Fixed header flag bits for specific packet types.
const (
	// PUBLISH flags (bits 3-0 of first byte)
	PublishFlagRetain = 1 << 0 // Bit 0: RETAIN flag
	PublishFlagQoS1   = 1 << 1 // Bit 1: QoS LSB
	PublishFlagQoS2   = 1 << 2 // Bit 2: QoS MSB
	PublishFlagDup    = 1 << 3 // Bit 3: DUP flag

	// Reserved flags that MUST be set for certain packet types
	PubrelFlags      = 0x02 // PUBREL MUST have flags 0010
	SubscribeFlags   = 0x02 // SUBSCRIBE MUST have flags 0010
	UnsubscribeFlags = 0x02 // UNSUBSCRIBE MUST have flags 0010
)

// reservedFlags returns the fixed header flags a packet type must carry.
// PUBLISH is not covered; its flags are data.
func reservedFlags(t Type) byte {
	switch t {
	case TypePubrel, TypeSubscribe, TypeUnsubscribe:
		return 0x02
	default:
		return 0
	}
}

// MaxRemainingLength is the maximum remaining length value (256MB - 1).
const MaxRemainingLength = 268435455

// MaxPacketSize is the maximum total packet size including fixed header.
const MaxPacketSize = MaxRemainingLength + 5 // 5 bytes max for fixed header

// ConnackReturnCode represents the CONNACK return code.
type ConnackReturnCode byte

const (
	ConnackAccepted                    ConnackReturnCode = 0x00 // Connection Accepted
	ConnackUnacceptableProtocolVersion ConnackReturnCode = 0x01 // Connection Refused, unacceptable protocol version
	ConnackIdentifierRejected          ConnackReturnCode = 0x02 // Connection Refused, identifier rejected
	ConnackServerUnavailable           ConnackReturnCode = 0x03 // Connection Refused, Server unavailable
	ConnackBadUsernameOrPassword       ConnackReturnCode = 0x04 // Connection Refused, bad user name or password
	ConnackNotAuthorized               ConnackReturnCode = 0x05 // Connection Refused, not authorized
)

// IsAccepted returns true if the connection was accepted.
func (c ConnackReturnCode) IsAccepted() bool {
	return c == ConnackAccepted
}

// String returns the string representation of the CONNACK return code.
func (c ConnackReturnCode) String() string {
	switch c {
	case ConnackAccepted:
		return "Connection Accepted"
	case ConnackUnacceptableProtocolVersion:
		return "Connection Refused, unacceptable protocol version"
	case ConnackIdentifierRejected:
		return "Connection Refused, identifier rejected"
	case ConnackServerUnavailable:
		return "Connection Refused, Server unavailable"
	case ConnackBadUsernameOrPassword:
		return "Connection Refused, bad user name or password"
	case ConnackNotAuthorized:
		return "Connection Refused, not authorized"
	default:
		return "Unknown return code"
	}
}

// SubackFailure is the SUBACK return code for a rejected subscription.
const SubackFailure byte = 0x80
