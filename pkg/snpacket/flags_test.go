package snpacket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

func TestFlagsEncode(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  byte
	}{
		{"zero", Flags{}, 0x00},
		{"qos1", Flags{QoS: QoS1}, 0x20},
		{"qos2", Flags{QoS: QoS2}, 0x40},
		{"qos-1", Flags{QoS: QoSMinusOne}, 0x60},
		{"retain", Flags{Retain: true}, 0x10},
		{"dup", Flags{DUP: true, QoS: QoS1}, 0xa0},
		{"will clean", Flags{Will: true, CleanSession: true}, 0x0c},
		{"short topic", Flags{TopicIDType: TopicIDShort}, 0x02},
		{"everything", Flags{DUP: true, QoS: QoS2, Retain: true, Will: true, CleanSession: true, TopicIDType: TopicIDPredefined}, 0xdd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.flags.Encode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, b)
		})
	}
}

func TestFlagsEncodeInvalid(t *testing.T) {
	for _, q := range []QoS{-2, 3, 5} {
		_, err := Flags{QoS: q}.Encode()
		assert.ErrorIs(t, err, wire.ErrInvalidArgument, "QoS %d", q)
	}

	_, err := Flags{TopicIDType: 3}.Encode()
	assert.ErrorIs(t, err, wire.ErrInvalidArgument)
}

func TestDecodeFlagsQoSPattern(t *testing.T) {
	assert.Equal(t, QoS0, DecodeFlags(0x00).QoS)
	assert.Equal(t, QoS1, DecodeFlags(0x20).QoS)
	assert.Equal(t, QoS2, DecodeFlags(0x40).QoS)

	// Pattern 11 is read back as 3, not as the -1 it was written from.
	assert.Equal(t, QoS(3), DecodeFlags(0x60).QoS)
}

func TestDecodeFlagsFields(t *testing.T) {
	f := DecodeFlags(0xdd)
	assert.Equal(t, Flags{
		DUP:          true,
		QoS:          QoS2,
		Retain:       true,
		Will:         true,
		CleanSession: true,
		TopicIDType:  TopicIDPredefined,
	}, f)
}
