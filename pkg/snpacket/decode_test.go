package snpacket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		size int
	}{
		{"advertise", &Advertise{GwID: 3, Duration: 900}, 5},
		{"searchgw", &SearchGw{Radius: 1}, 3},
		{"gwinfo", &GwInfo{GwID: 3}, 3},
		{"gwinfo with address", &GwInfo{GwID: 3, GwAdd: []byte{10, 0, 0, 1}}, 7},
		{"connect", &Connect{Will: true, CleanSession: true, Duration: 60, ClientID: "sensor-01"}, 15},
		{"connack", &Response{Kind: TypeConnack, ReturnCode: Accepted}, 3},
		{"willtopicreq", &Empty{Kind: TypeWillTopicReq}, 2},
		{"willmsgreq", &Empty{Kind: TypeWillMsgReq}, 2},
		{"willmsg", &WillMsg{Msg: []byte("gone")}, 6},
		{"register", &Register{MsgID: 1, TopicName: "sensors/temp"}, 18},
		{"regack", &Regack{TopicID: 12, MsgID: 1, ReturnCode: Accepted}, 7},
		{"publish", &Publish{QoS: QoS1, TopicID: 12, MsgID: 2, Data: []byte("21.5")}, 11},
		{"publish predefined", &Publish{QoS: QoS2, Retain: true, TopicIDType: TopicIDPredefined, TopicID: 5, MsgID: 6, Data: []byte{1}}, 8},
		{"puback", &Puback{TopicID: 12, MsgID: 2, ReturnCode: RejectedInvalidTopicID}, 7},
		{"pubrec", &Ack{Kind: TypePubrec, MsgID: 3}, 4},
		{"pubrel", &Ack{Kind: TypePubrel, MsgID: 3}, 4},
		{"pubcomp", &Ack{Kind: TypePubcomp, MsgID: 3}, 4},
		{"subscribe name", &Subscribe{QoS: QoS1, MsgID: 4, TopicName: "sensors/+/temp"}, 19},
		{"subscribe short", &Subscribe{QoS: QoS2, TopicIDType: TopicIDShort, MsgID: 4, TopicName: "ab"}, 7},
		{"subscribe predefined", &Subscribe{TopicIDType: TopicIDPredefined, MsgID: 4, TopicID: 77}, 7},
		{"suback", &Suback{QoS: QoS1, TopicID: 12, MsgID: 4, ReturnCode: Accepted}, 8},
		{"unsubscribe", &Unsubscribe{MsgID: 5, TopicName: "alerts/#"}, 13},
		{"unsuback", &Ack{Kind: TypeUnsuback, MsgID: 5}, 4},
		{"pingreq", &Pingreq{}, 2},
		{"pingreq sleeping client", &Pingreq{ClientID: "node"}, 6},
		{"pingresp", &Empty{Kind: TypePingresp}, 2},
		{"disconnect", &Disconnect{}, 2},
		{"disconnect sleep", &Disconnect{Duration: 300}, 4},
		{"willtopicresp", &Response{Kind: TypeWillTopicResp, ReturnCode: RejectedNotSupported}, 3},
		{"willmsgupd", &WillMsgUpdate{Msg: []byte("bye")}, 5},
		{"willmsgresp", &Response{Kind: TypeWillMsgResp}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(tt.msg)
			require.NoError(t, err)
			assert.Len(t, data, tt.size)
			assert.Equal(t, byte(len(data)), data[0])
			assert.Equal(t, byte(tt.msg.Type()), data[1])

			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.msg, got)
		})
	}
}

func TestPublishLargePayload(t *testing.T) {
	p := &Publish{TopicID: 1, Data: make([]byte, 1000)}
	data, err := Marshal(p)
	require.NoError(t, err)
	assert.Len(t, data, 1009)
	assert.Equal(t, []byte{0x01, 0x03, 0xf1, byte(TypePublish)}, data[:4])

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestShortTopic(t *testing.T) {
	p, err := NewShortPublish("ab", []byte("x"), QoSMinusOne, false)
	require.NoError(t, err)
	assert.Equal(t, uint16('a')<<8|uint16('b'), p.TopicID)
	assert.Equal(t, "ab", p.TopicName())

	data, err := Marshal(p)
	require.NoError(t, err)
	got, err := DecodePublish(data)
	require.NoError(t, err)
	assert.Equal(t, "ab", got.TopicName())
	assert.Equal(t, QoS(3), got.QoS)

	_, err = NewShortPublish("abc", nil, QoS0, false)
	assert.ErrorIs(t, err, wire.ErrInvalidArgument)
}

func TestNewSubscribe(t *testing.T) {
	s, err := NewSubscribe("ab", QoS1, 9)
	require.NoError(t, err)
	assert.Equal(t, TopicIDShort, s.TopicIDType)

	s, err = NewSubscribe("a/+", QoS0, 9)
	require.NoError(t, err)
	assert.Equal(t, TopicIDNormal, s.TopicIDType)

	_, err = NewSubscribe("a/#/b", QoS0, 9)
	assert.ErrorIs(t, err, ErrInvalidTopic)

	_, err = NewSubscribe("a", QoSMinusOne, 9)
	assert.ErrorIs(t, err, wire.ErrInvalidArgument)

	u, err := NewUnsubscribe("+/", 3)
	require.NoError(t, err)
	assert.Equal(t, TopicIDNormal, u.TopicIDType)
}

func TestEncodeInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{"publish qos-1 normal topic", &Publish{QoS: QoSMinusOne}},
		{"publish bad qos", &Publish{QoS: 4}},
		{"register without name", &Register{MsgID: 1}},
		{"subscribe without name", &Subscribe{MsgID: 1}},
		{"subscribe long short name", &Subscribe{TopicIDType: TopicIDShort, TopicName: "abc"}},
		{"empty with wrong kind", &Empty{Kind: TypeConnect}},
		{"response with wrong kind", &Response{Kind: TypePublish}},
		{"ack with wrong kind", &Ack{Kind: TypePuback}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(tt.msg)
			assert.ErrorIs(t, err, wire.ErrInvalidArgument)
			assert.Nil(t, data)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{"empty", nil, wire.ErrMalformedFrame},
		{"declared longer", []byte{0x05, 0x0e, 0x00}, wire.ErrMalformedFrame},
		{"no type byte", []byte{0x01, 0x00, 0x03}, wire.ErrMalformedFrame},
		{"reserved type", []byte{0x02, 0x03}, wire.ErrUnknownMessageType},
		{"encapsulated", []byte{0x03, 0xfe, 0x00}, wire.ErrUnknownMessageType},
		{"short ack", []byte{0x03, byte(TypePubcomp), 0x00}, wire.ErrMalformedFrame},
		{"short publish", []byte{0x05, byte(TypePublish), 0x00, 0x00, 0x01}, wire.ErrMalformedFrame},
		{"short connect", []byte{0x04, byte(TypeConnect), 0x04, 0x01}, wire.ErrMalformedFrame},
		{"connect bad protocol", []byte{0x06, byte(TypeConnect), 0x04, 0x02, 0x00, 0x3c}, ErrInvalidProtocolID},
		{"disconnect odd duration", []byte{0x03, byte(TypeDisconnect), 0x01}, wire.ErrMalformedFrame},
		{"short subscribe short topic", []byte{0x05, byte(TypeSubscribe), 0x02, 0x00, 0x01}, wire.ErrMalformedFrame},
		{"short suback", []byte{0x04, byte(TypeSuback), 0x00, 0x00}, wire.ErrMalformedFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode(tt.data)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, m)
		})
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	m, err := Decode([]byte{0x04, byte(TypePubcomp), 0x01, 0x2c, 0xde, 0xad})
	require.NoError(t, err)
	assert.Equal(t, &Ack{Kind: TypePubcomp, MsgID: 300}, m)
}

func TestMsgTypeString(t *testing.T) {
	assert.Equal(t, "WILLTOPIC", TypeWillTopic.String())
	assert.Equal(t, "RESERVED(0x03)", MsgType(0x03).String())
	assert.False(t, TypeEncapsulated.Valid())
	assert.True(t, TypeWillMsgResp.Valid())
}
