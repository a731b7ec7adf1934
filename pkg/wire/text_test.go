package wire

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestLookupText(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "", want: "UTF-8"},
		{name: "utf8", want: "UTF-8"},
		{name: "UTF-8", want: "UTF-8"},
		{name: "ISO-8859-1", want: "ISO-8859-1"},
		{name: "latin1", want: "ISO-8859-1"},
		{name: "ISO_8859-1:1987", want: "ISO-8859-1"},
		{name: "windows-1252", want: "windows-1252"},
		{name: "no-such-charset", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := LookupText(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, text.Name())
		})
	}
}

func TestTextUTF8(t *testing.T) {
	b, err := UTF8.Encode("sensors/température")
	require.NoError(t, err)
	assert.Equal(t, []byte("sensors/température"), b)

	s, err := UTF8.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "sensors/température", s)

	_, err = UTF8.Decode([]byte{'a', 0xff, 'b'})
	assert.Error(t, err)

	_, err = UTF8.Encode(string([]byte{0xc3}))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTextLatin1(t *testing.T) {
	latin1, err := LookupText("ISO-8859-1")
	require.NoError(t, err)

	b, err := latin1.Encode("café")
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xe9}, b)
	assert.Equal(t, 4, latin1.Len("café"))
	assert.Equal(t, 5, UTF8.Len("café"))

	s, err := latin1.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "café", s)

	// Unrepresentable runes are replaced rather than failing.
	b, err = latin1.Encode("a€b")
	require.NoError(t, err)
	assert.Len(t, b, 3)
}

func TestDecodeFallback(t *testing.T) {
	logs := captureLogs(t)

	s := UTF8.DecodeFallback([]byte{0xfe, 0xfe}, "will_topic")
	assert.Equal(t, "", s)
	assert.Contains(t, logs.String(), "text field decode failed")
	assert.Contains(t, logs.String(), "field=will_topic")

	logs.Reset()
	s = UTF8.DecodeFallback([]byte("a/b"), "will_topic")
	assert.Equal(t, "a/b", s)
	assert.Empty(t, logs.String())
}

func TestSetTextEncoding(t *testing.T) {
	assert.Equal(t, "UTF-8", TextEncoding().Name())

	latin1, err := LookupText("ISO-8859-1")
	require.NoError(t, err)
	SetTextEncoding(latin1)
	t.Cleanup(func() { SetTextEncoding(UTF8) })

	assert.Equal(t, "ISO-8859-1", TextEncoding().Name())
	assert.Equal(t, "é", DecodeText([]byte{0xe9}, "topic"))
	assert.Equal(t, 1, TextLen("é"))

	b, err := EncodeText("é")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xe9}, b)
}

func TestErrorTaxonomy(t *testing.T) {
	assert.ErrorIs(t, Malformedf("declared %d bytes", 9), ErrMalformedFrame)
	assert.ErrorIs(t, Invalidf("qos %d", 5), ErrInvalidArgument)
	assert.ErrorIs(t, Unknownf("type 0x%02x", 0xfe), ErrUnknownMessageType)
	assert.ErrorIs(t, ErrShortBuffer, ErrInvalidArgument)
	assert.Contains(t, Malformedf("declared %d bytes", 9).Error(), "declared 9 bytes")
}

func TestUint16(t *testing.T) {
	buf := make([]byte, 2)
	assert.Equal(t, 2, EncodeUint16(buf, 300))
	assert.Equal(t, []byte{0x01, 0x2c}, buf)

	v, n, ok := DecodeUint16(buf)
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Equal(t, uint16(300), v)

	assert.Equal(t, 0, EncodeUint16(buf[:1], 1))
	_, _, ok = DecodeUint16(buf[:1])
	assert.False(t, ok)
}
