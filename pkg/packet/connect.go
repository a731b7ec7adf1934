package packet

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// Connect represents an MQTT CONNECT packet.
// MQTT 3.1 and 3.1.1 Section 3.1
type Connect struct {
	// Protocol identification. An empty ProtocolName is derived from the version.
	ProtocolName    string
	ProtocolVersion Version

	// Connect flags
	CleanSession bool
	WillFlag     bool
	WillQoS      QoS
	WillRetain   bool
	PasswordFlag bool
	UsernameFlag bool

	// Keep alive (seconds)
	KeepAlive uint16

	// Payload fields
	ClientID    string
	WillTopic   string
	WillPayload []byte
	Username    string
	Password    []byte
}

// Type returns TypeConnect.
func (c *Connect) Type() Type {
	return TypeConnect
}

// connectFlagBits defines the bit positions in the connect flags byte.
const (
	connectFlagCleanSession = 1 << 1
	connectFlagWill         = 1 << 2
	connectFlagWillRetain   = 1 << 5
	connectFlagPassword     = 1 << 6
	connectFlagUsername     = 1 << 7
)

// connectFields holds the encoded text fields of a CONNECT.
type connectFields struct {
	name, clientID, willTopic, username []byte
	version                             Version
	remaining                           int
}

func (c *Connect) fields() (connectFields, error) {
	f := connectFields{version: c.ProtocolVersion}
	if f.version == 0 {
		f.version = Version311
	}
	if f.version != Version31 && f.version != Version311 {
		return f, wire.Invalidf("protocol version %d", c.ProtocolVersion)
	}
	if c.WillFlag && !c.WillQoS.Valid() {
		return f, wire.Invalidf("will QoS %d", c.WillQoS)
	}
	if !c.WillFlag && (c.WillQoS != QoS0 || c.WillRetain) {
		return f, wire.Invalidf("will QoS or retain set without will flag")
	}
	if c.PasswordFlag && !c.UsernameFlag {
		return f, wire.Invalidf("password without username")
	}

	name := c.ProtocolName
	if name == "" {
		name = f.version.ProtocolName()
	}

	var err error
	if f.name, err = encodeText(name, "protocol name"); err != nil {
		return f, err
	}
	if f.clientID, err = encodeText(c.ClientID, "client id"); err != nil {
		return f, err
	}

	// Variable header: protocol name + level (1) + flags (1) + keep alive (2)
	f.remaining = 2 + len(f.name) + 1 + 1 + 2
	f.remaining += 2 + len(f.clientID)

	if c.WillFlag {
		if f.willTopic, err = encodeText(c.WillTopic, "will topic"); err != nil {
			return f, err
		}
		if len(c.WillPayload) > 65535 {
			return f, wire.Invalidf("will payload exceeds 65535 bytes")
		}
		f.remaining += 2 + len(f.willTopic) + 2 + len(c.WillPayload)
	}
	if c.UsernameFlag {
		if f.username, err = encodeText(c.Username, "username"); err != nil {
			return f, err
		}
		f.remaining += 2 + len(f.username)
	}
	if c.PasswordFlag {
		if len(c.Password) > 65535 {
			return f, wire.Invalidf("password exceeds 65535 bytes")
		}
		f.remaining += 2 + len(c.Password)
	}
	return f, nil
}

// EncodedSize returns the total size of the encoded CONNECT packet.
func (c *Connect) EncodedSize() int {
	f, _ := c.fields()
	return FixedHeaderSize(uint32(f.remaining)) + f.remaining
}

// Encode encodes the CONNECT packet into buf.
func (c *Connect) Encode(buf []byte) (int, error) {
	f, err := c.fields()
	if err != nil {
		return 0, err
	}

	pos, err := beginFrame(buf, TypeConnect, 0, f.remaining)
	if err != nil {
		return 0, err
	}

	// Variable header
	pos += EncodeBytes(buf[pos:], f.name)
	buf[pos] = byte(f.version)
	pos++

	var flags byte
	if c.CleanSession {
		flags |= connectFlagCleanSession
	}
	if c.WillFlag {
		flags |= connectFlagWill
		flags |= byte(c.WillQoS) << 3
		if c.WillRetain {
			flags |= connectFlagWillRetain
		}
	}
	if c.PasswordFlag {
		flags |= connectFlagPassword
	}
	if c.UsernameFlag {
		flags |= connectFlagUsername
	}
	buf[pos] = flags
	pos++

	pos += wire.EncodeUint16(buf[pos:], c.KeepAlive)

	// Payload
	pos += EncodeBytes(buf[pos:], f.clientID)
	if c.WillFlag {
		pos += EncodeBytes(buf[pos:], f.willTopic)
		pos += EncodeBytes(buf[pos:], c.WillPayload)
	}
	if c.UsernameFlag {
		pos += EncodeBytes(buf[pos:], f.username)
	}
	if c.PasswordFlag {
		pos += EncodeBytes(buf[pos:], c.Password)
	}

	return pos, nil
}

// DecodeConnect decodes a CONNECT packet from a complete frame.
func DecodeConnect(buf []byte) (*Connect, error) {
	_, body, err := splitFrame(buf)
	if err != nil {
		return nil, err
	}
	if len(body) < 10 {
		return nil, wire.Malformedf("CONNECT body of %d bytes", len(body))
	}

	c := &Connect{}
	pos := 0

	// Protocol name
	name, n, ok := DecodeBytes(body)
	if !ok {
		return nil, wire.Malformedf("truncated protocol name")
	}
	c.ProtocolName = string(name)
	pos += n

	if c.ProtocolName != "MQTT" && c.ProtocolName != "MQIsdp" {
		return nil, ErrInvalidProtocolName
	}

	// Protocol version
	if pos >= len(body) {
		return nil, wire.Malformedf("truncated protocol version")
	}
	c.ProtocolVersion = Version(body[pos])
	pos++

	if c.ProtocolVersion != Version31 && c.ProtocolVersion != Version311 {
		return nil, ErrInvalidProtocolVersion
	}

	// Connect flags
	if pos >= len(body) {
		return nil, wire.Malformedf("truncated connect flags")
	}
	flags := body[pos]
	pos++

	// Reserved bit must be 0
	if flags&0x01 != 0 {
		return nil, ErrInvalidFlags
	}

	c.CleanSession = flags&connectFlagCleanSession != 0
	c.WillFlag = flags&connectFlagWill != 0
	c.WillQoS = QoS((flags >> 3) & 0x03)
	c.WillRetain = flags&connectFlagWillRetain != 0
	c.PasswordFlag = flags&connectFlagPassword != 0
	c.UsernameFlag = flags&connectFlagUsername != 0

	if !c.WillFlag {
		if c.WillQoS != 0 || c.WillRetain {
			return nil, ErrInvalidFlags
		}
	} else if !c.WillQoS.Valid() {
		return nil, ErrInvalidQoS
	}

	if c.PasswordFlag && !c.UsernameFlag {
		return nil, ErrInvalidFlags
	}

	// Keep alive
	keepAlive, n, ok := wire.DecodeUint16(body[pos:])
	if !ok {
		return nil, wire.Malformedf("truncated keep alive")
	}
	c.KeepAlive = keepAlive
	pos += n

	// Payload
	if c.ClientID, n, err = decodeText(body[pos:], "client_id"); err != nil {
		return nil, err
	}
	pos += n

	if c.WillFlag {
		if c.WillTopic, n, err = decodeText(body[pos:], "will_topic"); err != nil {
			return nil, err
		}
		pos += n

		if c.WillPayload, n, err = decodeBinary(body[pos:], "will message"); err != nil {
			return nil, err
		}
		pos += n
	}

	if c.UsernameFlag {
		if c.Username, n, err = decodeText(body[pos:], "username"); err != nil {
			return nil, err
		}
		pos += n
	}

	if c.PasswordFlag {
		if c.Password, _, err = decodeBinary(body[pos:], "password"); err != nil {
			return nil, err
		}
	}

	return c, nil
}
