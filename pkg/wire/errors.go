package wire

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by both protocol codecs.
// Package specific errors wrap one of these so callers can classify
// any codec failure with errors.Is.
var (
	// ErrMalformedFrame indicates a frame shorter than its own declared length,
	// or a declared length inconsistent with the bytes available.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrInvalidArgument indicates an encode call given a field value outside its legal domain.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownMessageType indicates a type code that matches no registered message kind.
	ErrUnknownMessageType = errors.New("unknown message type")

	// ErrShortBuffer indicates insufficient buffer space for encoding.
	ErrShortBuffer = fmt.Errorf("%w: buffer too short", ErrInvalidArgument)
)

// Malformedf returns an error wrapping ErrMalformedFrame.
func Malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedFrame, fmt.Sprintf(format, args...))
}

// Invalidf returns an error wrapping ErrInvalidArgument.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Unknownf returns an error wrapping ErrUnknownMessageType.
func Unknownf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnknownMessageType, fmt.Sprintf(format, args...))
}
