package snpacket

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

func TestWillTopicEncodeVector(t *testing.T) {
	data, err := Marshal(&WillTopic{QoS: QoS1, Retain: true, Topic: "a/b"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x06, 0x07, 0x30, 'a', '/', 'b'}, data)
}

func TestWillTopicRoundTrip(t *testing.T) {
	lengths := []int{1, 2, 100, 252, 253, 1000, MaxFrameSize - 5}

	for _, qos := range []QoS{QoSMinusOne, QoS0, QoS1, QoS2} {
		for _, retain := range []bool{false, true} {
			for _, n := range lengths {
				w := &WillTopic{QoS: qos, Retain: retain, Topic: strings.Repeat("t", n)}

				data, err := Marshal(w)
				require.NoError(t, err)
				require.Len(t, data, w.EncodedSize())

				got, err := DecodeWillTopic(data)
				require.NoError(t, err)

				want := qos
				if qos == QoSMinusOne {
					want = 3
				}
				assert.Equal(t, want, got.QoS)
				assert.Equal(t, retain, got.Retain)
				assert.Equal(t, w.Topic, got.Topic)
			}
		}
	}
}

func TestWillTopicLengthBoundary(t *testing.T) {
	data, err := Marshal(&WillTopic{Topic: strings.Repeat("x", 252)})
	require.NoError(t, err)
	assert.Len(t, data, 255)
	assert.Equal(t, byte(255), data[0])
	assert.Equal(t, byte(TypeWillTopic), data[1])

	data, err = Marshal(&WillTopic{Topic: strings.Repeat("x", 253)})
	require.NoError(t, err)
	assert.Len(t, data, 258)
	assert.Equal(t, []byte{0x01, 0x01, 0x02, byte(TypeWillTopic)}, data[:4])
}

func TestWillTopicTooLarge(t *testing.T) {
	data, err := Marshal(&WillTopic{Topic: strings.Repeat("x", MaxFrameSize-4)})
	assert.ErrorIs(t, err, wire.ErrInvalidArgument)
	assert.Nil(t, data)
}

func TestWillTopicClear(t *testing.T) {
	w := &WillTopic{QoS: QoS2, Retain: true}
	data, err := Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, byte(TypeWillTopic)}, data)

	got, err := DecodeWillTopic(data)
	require.NoError(t, err)
	assert.Equal(t, &WillTopic{}, got)
}

func TestWillTopicFlagsOnly(t *testing.T) {
	got, err := DecodeWillTopic([]byte{0x03, byte(TypeWillTopic), 0x30})
	require.NoError(t, err)
	assert.Equal(t, &WillTopic{QoS: QoS1, Retain: true}, got)
}

func TestWillTopicShortTopicFrame(t *testing.T) {
	frame := []byte{0x05, byte(TypeWillTopic), 0x30, 'a', 'b'}

	got, err := DecodeWillTopic(frame)
	require.NoError(t, err)
	assert.Equal(t, &WillTopic{QoS: QoS1, Retain: true, Topic: "ab"}, got)

	_, err = DecodeWillTopic([]byte{0x06, byte(TypeWillTopic), 0x30, 'a', 'b'})
	assert.ErrorIs(t, err, wire.ErrMalformedFrame)
}

func TestWillTopicInvalidQoS(t *testing.T) {
	w := &WillTopic{QoS: 5, Topic: "a/b"}

	data, err := Marshal(w)
	assert.ErrorIs(t, err, wire.ErrInvalidArgument)
	assert.Nil(t, data)

	buf := make([]byte, 16)
	n, err := w.Encode(buf)
	assert.ErrorIs(t, err, wire.ErrInvalidArgument)
	assert.Zero(t, n)
	assert.Equal(t, make([]byte, 16), buf)

	// Clearing the will still validates the QoS.
	_, err = Marshal(&WillTopic{QoS: 5})
	assert.ErrorIs(t, err, wire.ErrInvalidArgument)
}

func TestWillTopicDecodeMalformed(t *testing.T) {
	_, err := DecodeWillTopic([]byte{0x08, byte(TypeWillTopic), 0x00, 'a'})
	assert.ErrorIs(t, err, wire.ErrMalformedFrame)

	_, err = DecodeWillTopic([]byte{0x01, 0x01})
	assert.ErrorIs(t, err, wire.ErrMalformedFrame)

	_, err = DecodeWillTopic([]byte{0x02, byte(TypeWillMsg)})
	assert.ErrorIs(t, err, wire.ErrUnknownMessageType)
}

func TestWillTopicBadTextFallsBack(t *testing.T) {
	var logs bytes.Buffer
	wire.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { wire.SetLogger(nil) })

	got, err := DecodeWillTopic([]byte{0x05, byte(TypeWillTopic), 0x20, 0xff, 0xfe})
	require.NoError(t, err)
	assert.Equal(t, QoS1, got.QoS)
	assert.Equal(t, "", got.Topic)
	assert.Contains(t, logs.String(), "field=will_topic")
}

func TestWillTopicDesignatedEncoding(t *testing.T) {
	latin1, err := wire.LookupText("ISO-8859-1")
	require.NoError(t, err)
	wire.SetTextEncoding(latin1)
	t.Cleanup(func() { wire.SetTextEncoding(wire.UTF8) })

	w := &WillTopic{Topic: "café"}
	data, err := Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x07, byte(TypeWillTopic), 0x00, 'c', 'a', 'f', 0xe9}, data)

	got, err := DecodeWillTopic(data)
	require.NoError(t, err)
	assert.Equal(t, "café", got.Topic)
}

func TestWillTopicUpdate(t *testing.T) {
	w := &WillTopicUpdate{QoS: QoS2, Topic: "dev/1/will"}
	data, err := Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, byte(TypeWillTopicUpd), data[1])

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, w, got)

	data, err = Marshal(&WillTopicUpdate{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, byte(TypeWillTopicUpd)}, data)
}
