package packet

// Packet is the interface implemented by all classic control packets.
type Packet interface {
	// Type returns the packet type.
	Type() Type

	// Encode encodes the packet into buf and returns the bytes written.
	// Nothing is written when an error is returned.
	Encode(buf []byte) (int, error)

	// EncodedSize returns the total size of the encoded packet.
	EncodedSize() int
}

// Marshal encodes p into a freshly allocated buffer owned by the caller.
func Marshal(p Packet) ([]byte, error) {
	buf := make([]byte, p.EncodedSize())
	n, err := p.Encode(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}
