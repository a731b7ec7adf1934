package snpacket

import (
	"fmt"

	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

var (
	// ErrInvalidProtocolID indicates a CONNECT with a protocol id other than 0x01.
	ErrInvalidProtocolID = fmt.Errorf("%w: invalid protocol id", wire.ErrMalformedFrame)

	// ErrFrameTooLarge indicates a message that does not fit a 65535 byte frame.
	ErrFrameTooLarge = fmt.Errorf("%w: frame exceeds %d bytes", wire.ErrInvalidArgument, MaxFrameSize)

	// ErrInvalidTopic indicates a topic that does not match its topic id type.
	ErrInvalidTopic = fmt.Errorf("%w: invalid topic", wire.ErrInvalidArgument)
)
