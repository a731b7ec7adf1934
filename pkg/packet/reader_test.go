package packet

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderReadsConsecutivePackets(t *testing.T) {
	var stream bytes.Buffer
	packets := []Packet{
		&Connect{ClientID: "stream"},
		NewPublish("a/b", bytes.Repeat([]byte{'x'}, 3000), QoS1, false),
		NewPuback(1),
		&Pingreq{},
	}
	packets[1].(*Publish).PacketID = 1

	for _, p := range packets {
		data, err := Marshal(p)
		require.NoError(t, err)
		stream.Write(data)
	}

	// One byte at a time exercises every refill path.
	r := NewReader(iotest.OneByteReader(&stream), 0, 0)
	for i := range packets {
		p, err := r.ReadPacket()
		require.NoError(t, err, "packet %d", i)
		assert.Equal(t, packets[i].Type(), p.Type())
	}

	_, err := r.ReadPacket()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderTruncatedStream(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x40, 0x02, 0x00}), 0, 0)
	_, err := r.ReadPacket()
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF), "got %v", err)
}

func TestReaderMaxSize(t *testing.T) {
	data, err := Marshal(NewPublish("a", make([]byte, 100), QoS0, false))
	require.NoError(t, err)

	r := NewReader(bytes.NewReader(data), 0, 64)
	_, err = r.ReadPacket()
	assert.ErrorIs(t, err, ErrPacketTooLarge)
}
