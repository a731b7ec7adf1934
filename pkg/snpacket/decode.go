package snpacket

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// Decode decodes the frame at the start of buf. The type byte after the
// length prefix selects the decoder; bytes past the declared length are
// ignored.
func Decode(buf []byte) (Message, error) {
	h, _, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	frame := buf[:h.Length.Total]

	switch h.Type {
	case TypeAdvertise:
		return wrap(DecodeAdvertise(frame))
	case TypeSearchGw:
		return wrap(DecodeSearchGw(frame))
	case TypeGwInfo:
		return wrap(DecodeGwInfo(frame))
	case TypeConnect:
		return wrap(DecodeConnect(frame))
	case TypeConnack, TypeWillTopicResp, TypeWillMsgResp:
		return wrap(DecodeResponse(h.Type, frame))
	case TypeWillTopicReq, TypeWillMsgReq, TypePingresp:
		return wrap(DecodeEmpty(h.Type, frame))
	case TypeWillTopic:
		return wrap(DecodeWillTopic(frame))
	case TypeWillMsg:
		return wrap(DecodeWillMsg(frame))
	case TypeRegister:
		return wrap(DecodeRegister(frame))
	case TypeRegack:
		return wrap(DecodeRegack(frame))
	case TypePublish:
		return wrap(DecodePublish(frame))
	case TypePuback:
		return wrap(DecodePuback(frame))
	case TypePubrec, TypePubrel, TypePubcomp, TypeUnsuback:
		return wrap(DecodeAck(h.Type, frame))
	case TypeSubscribe:
		return wrap(DecodeSubscribe(frame))
	case TypeSuback:
		return wrap(DecodeSuback(frame))
	case TypeUnsubscribe:
		return wrap(DecodeUnsubscribe(frame))
	case TypePingreq:
		return wrap(DecodePingreq(frame))
	case TypeDisconnect:
		return wrap(DecodeDisconnect(frame))
	case TypeWillTopicUpd:
		return wrap(DecodeWillTopicUpdate(frame))
	case TypeWillMsgUpd:
		return wrap(DecodeWillMsgUpdate(frame))
	default:
		return nil, wire.Unknownf("MQTT-SN message type 0x%02X", byte(h.Type))
	}
}

func wrap[T Message](m T, err error) (Message, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}
