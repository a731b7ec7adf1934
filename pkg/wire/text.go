// Package wire holds the pieces shared by the classic and sensor-network
// codecs: the error taxonomy, big-endian integer helpers and the text
// field codec with its process-wide encoding.
package wire

import (
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/atomic"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Text is a designated text encoding for protocol text fields such as
// topic names and client identifiers.
type Text struct {
	name string
	enc  encoding.Encoding // nil means UTF-8
}

// UTF8 is the default designated text encoding.
var UTF8 = Text{name: "UTF-8"}

// LookupText resolves an IANA encoding name ("utf-8", "ISO-8859-1",
// "windows-1252", ...) to a Text. An empty name selects UTF-8.
func LookupText(name string) (Text, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return UTF8, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return Text{}, Invalidf("text encoding %q: %v", name, err)
	}
	if enc == nil {
		return Text{}, Invalidf("text encoding %q is not supported", name)
	}

	preferred := preferredName(enc, name)
	if preferred == UTF8.name {
		return UTF8, nil
	}
	return Text{name: preferred, enc: enc}, nil
}

// preferredName reports the MIME charset name of enc, then its IANA
// registry name, then fallback.
func preferredName(enc encoding.Encoding, fallback string) string {
	if n, err := ianaindex.MIME.Name(enc); err == nil && n != "" {
		return n
	}
	if n, err := ianaindex.IANA.Name(enc); err == nil && n != "" {
		return n
	}
	return fallback
}

// Name returns the preferred MIME charset name of the encoding.
func (t Text) Name() string {
	if t.name == "" {
		return UTF8.name
	}
	return t.name
}

// String implements fmt.Stringer.
func (t Text) String() string {
	return t.Name()
}

// Decode converts raw field bytes to a string.
// UTF-8 input is validated; invalid sequences are an error.
func (t Text) Decode(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}

	var tr transform.Transformer = encoding.UTF8Validator
	if t.enc != nil {
		tr = t.enc.NewDecoder()
	}
	out, _, err := transform.Bytes(tr, b)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", t.Name(), err)
	}
	return string(out), nil
}

// DecodeFallback decodes b, falling back to the empty string on failure.
// The failure is reported to the process-wide logger, never to the caller,
// so a bad text field never aborts decoding of the enclosing message.
func (t Text) DecodeFallback(b []byte, field string) string {
	s, err := t.Decode(b)
	if err != nil {
		Logger().Warn("text field decode failed",
			"field", field,
			"encoding", t.Name(),
			"len", len(b),
			"error", err,
		)
		return ""
	}
	return s
}

// Encode converts s to bytes in this encoding.
// Runes the encoding cannot represent are replaced, so well-formed input
// never fails. An error is returned only for input that is not valid UTF-8.
func (t Text) Encode(s string) ([]byte, error) {
	if t.enc == nil {
		if _, _, err := transform.String(encoding.UTF8Validator, s); err != nil {
			return nil, Invalidf("text %q is not valid UTF-8", s)
		}
		return []byte(s), nil
	}

	out, err := encoding.ReplaceUnsupported(t.enc.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return nil, Invalidf("encode %s: %v", t.Name(), err)
	}
	return out, nil
}

// Len returns the encoded length of s in bytes, or len(s) if s cannot be encoded.
func (t Text) Len(s string) int {
	if t.enc == nil {
		return len(s)
	}
	b, err := t.Encode(s)
	if err != nil {
		return len(s)
	}
	return len(b)
}

var (
	textEncoding = atomic.NewPointer(&UTF8)
	logger       atomic.Pointer[slog.Logger]
)

// TextEncoding returns the process-wide designated text encoding.
func TextEncoding() Text {
	return *textEncoding.Load()
}

// SetTextEncoding installs the process-wide designated text encoding.
// It is meant to be called once at start-up, before any frame is decoded.
func SetTextEncoding(t Text) {
	textEncoding.Store(&t)
}

// Logger returns the logger that receives codec diagnostics.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// SetLogger sets the logger for codec diagnostics. A nil logger restores slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// DecodeText decodes a text field with the process-wide encoding, falling
// back to the empty string on failure.
func DecodeText(b []byte, field string) string {
	return TextEncoding().DecodeFallback(b, field)
}

// EncodeText encodes s with the process-wide encoding.
func EncodeText(s string) ([]byte, error) {
	return TextEncoding().Encode(s)
}

// TextLen returns the encoded length of s with the process-wide encoding.
func TextLen(s string) int {
	return TextEncoding().Len(s)
}
