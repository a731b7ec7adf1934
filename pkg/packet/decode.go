package packet

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// Decode decodes one complete classic frame. The fixed header is checked
// for a known type, the reserved flags of that type and a remaining length
// that fits in buf before the type's decoder runs.
func Decode(buf []byte) (Packet, error) {
	fh, _, err := splitFrame(buf)
	if err != nil {
		return nil, err
	}
	if !fh.Type.Valid() {
		return nil, wire.Unknownf("classic packet type %d", fh.Type)
	}

	// PUBLISH flags are validated in DecodePublish
	if fh.Type != TypePublish && fh.Flags != reservedFlags(fh.Type) {
		return nil, ErrInvalidFlags
	}

	frame := buf[:fh.FrameSize()]

	switch fh.Type {
	case TypeConnect:
		return wrap(DecodeConnect(frame))
	case TypeConnack:
		return wrap(DecodeConnack(frame))
	case TypePublish:
		return wrap(DecodePublish(frame))
	case TypePuback, TypePubrec, TypePubrel, TypePubcomp, TypeUnsuback:
		if fh.RemainingLength != 2 || fh.Size != 2 {
			return nil, wire.Malformedf("%s with remaining length %d", fh.Type, fh.RemainingLength)
		}
		return wrap(DecodeAck(fh.Type, frame))
	case TypeSubscribe:
		return wrap(DecodeSubscribe(frame))
	case TypeSuback:
		return wrap(DecodeSuback(frame))
	case TypeUnsubscribe:
		return wrap(DecodeUnsubscribe(frame))
	case TypePingreq:
		return wrap(DecodePingreq(frame))
	case TypePingresp:
		return wrap(DecodePingresp(frame))
	case TypeDisconnect:
		return wrap(DecodeDisconnect(frame))
	default:
		return nil, wire.Unknownf("classic packet type %d", fh.Type)
	}
}

// wrap keeps a failed decode from returning a typed nil inside a non-nil Packet.
func wrap[T Packet](p T, err error) (Packet, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}
