package snpacket

import "github.com/bromq-dev/mqttsn-gateway/pkg/wire"

// Advertise represents an ADVERTISE broadcast from a gateway.
type Advertise struct {
	GwID     byte
	Duration uint16 // seconds until the next ADVERTISE
}

func (a *Advertise) Type() MsgType { return TypeAdvertise }
func (a *Advertise) EncodedSize() int { return 5 }

func (a *Advertise) Encode(buf []byte) (int, error) {
	pos, err := beginFrame(buf, TypeAdvertise, 3)
	if err != nil {
		return 0, err
	}
	buf[pos] = a.GwID
	pos++
	pos += wire.EncodeUint16(buf[pos:], a.Duration)
	return pos, nil
}

func DecodeAdvertise(buf []byte) (*Advertise, error) {
	payload, err := fixedPayload(buf, TypeAdvertise, 3)
	if err != nil {
		return nil, err
	}
	duration, _, _ := wire.DecodeUint16(payload[1:])
	return &Advertise{GwID: payload[0], Duration: duration}, nil
}

// SearchGw represents a SEARCHGW broadcast from a client.
type SearchGw struct {
	Radius byte
}

func (s *SearchGw) Type() MsgType { return TypeSearchGw }
func (s *SearchGw) EncodedSize() int { return 3 }

func (s *SearchGw) Encode(buf []byte) (int, error) {
	pos, err := beginFrame(buf, TypeSearchGw, 1)
	if err != nil {
		return 0, err
	}
	buf[pos] = s.Radius
	return pos + 1, nil
}

func DecodeSearchGw(buf []byte) (*SearchGw, error) {
	payload, err := fixedPayload(buf, TypeSearchGw, 1)
	if err != nil {
		return nil, err
	}
	return &SearchGw{Radius: payload[0]}, nil
}

// GwInfo answers a SEARCHGW. GwAdd is only present when a client answers
// on behalf of a gateway.
type GwInfo struct {
	GwID  byte
	GwAdd []byte
}

func (g *GwInfo) Type() MsgType { return TypeGwInfo }
func (g *GwInfo) EncodedSize() int { return frameSize(1 + len(g.GwAdd)) }

func (g *GwInfo) Encode(buf []byte) (int, error) {
	pos, err := beginFrame(buf, TypeGwInfo, 1+len(g.GwAdd))
	if err != nil {
		return 0, err
	}
	buf[pos] = g.GwID
	pos++
	pos += copy(buf[pos:], g.GwAdd)
	return pos, nil
}

func DecodeGwInfo(buf []byte) (*GwInfo, error) {
	payload, err := fixedPayload(buf, TypeGwInfo, 1)
	if err != nil {
		return nil, err
	}
	return &GwInfo{GwID: payload[0], GwAdd: clone(payload[1:])}, nil
}
