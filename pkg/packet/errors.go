package packet

import (
	"fmt"

	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

// Sentinel errors for packet parsing and encoding. Each wraps one of the
// wire taxonomy errors so errors.Is(err, wire.ErrMalformedFrame) holds
// for every decode failure caused by the bytes themselves.
var (
	// ErrMalformedRemainingLength indicates the remaining length encoding is invalid.
	ErrMalformedRemainingLength = fmt.Errorf("%w: malformed remaining length", wire.ErrMalformedFrame)

	// ErrPacketTooLarge indicates the packet exceeds maximum allowed size.
	ErrPacketTooLarge = fmt.Errorf("%w: packet too large", wire.ErrMalformedFrame)

	// ErrInvalidFlags indicates invalid fixed header flags for the packet type.
	ErrInvalidFlags = fmt.Errorf("%w: invalid packet flags", wire.ErrMalformedFrame)

	// ErrInvalidQoS indicates an invalid QoS level on the wire.
	ErrInvalidQoS = fmt.Errorf("%w: invalid QoS level", wire.ErrMalformedFrame)

	// ErrInvalidProtocolName indicates an unrecognized protocol name.
	ErrInvalidProtocolName = fmt.Errorf("%w: invalid protocol name", wire.ErrMalformedFrame)

	// ErrInvalidProtocolVersion indicates an unsupported protocol version.
	ErrInvalidProtocolVersion = fmt.Errorf("%w: invalid protocol version", wire.ErrMalformedFrame)

	// ErrInvalidPacketID indicates a zero packet identifier where one is required.
	ErrInvalidPacketID = fmt.Errorf("%w: invalid packet identifier", wire.ErrMalformedFrame)
)
