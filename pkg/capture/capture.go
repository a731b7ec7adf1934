// Package capture records raw frames to a file and replays them through
// the codec. A capture file is a plain sequence of msgpack records.
package capture

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bromq-dev/mqttsn-gateway/pkg/codec"
)

// Record is one captured frame.
type Record struct {
	Protocol codec.Protocol `msgpack:"p"`
	Time     time.Time      `msgpack:"t"`
	Frame    []byte         `msgpack:"f"`
}

// Writer appends records to an io.Writer. It is safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	enc *msgpack.Encoder
	now func() time.Time
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		enc: msgpack.NewEncoder(w),
		now: time.Now,
	}
}

// Write records frame as seen now on protocol p.
func (w *Writer) Write(p codec.Protocol, frame []byte) error {
	return w.WriteRecord(Record{Protocol: p, Time: w.now(), Frame: frame})
}

// WriteRecord appends rec.
func (w *Writer) WriteRecord(rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.enc.Encode(&rec); err != nil {
		return fmt.Errorf("capture: write record: %w", err)
	}
	return nil
}

// Reader reads records written by a Writer.
type Reader struct {
	dec *msgpack.Decoder
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: msgpack.NewDecoder(r)}
}

// Next returns the next record, or io.EOF when the capture is exhausted.
func (r *Reader) Next() (Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("capture: read record: %w", err)
	}
	return rec, nil
}

// ReplayFunc receives each replayed record with its decoded message, or the
// decode error for that record. Returning an error stops the replay.
type ReplayFunc func(rec Record, msg codec.Message, err error) error

// Replay decodes every record of r through the codec and hands the result
// to fn. Decode errors go to fn; read errors end the replay.
func Replay(r io.Reader, fn ReplayFunc) error {
	cr := NewReader(r)
	for {
		rec, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		msg, decErr := codec.Decode(rec.Protocol, rec.Frame)
		if err := fn(rec, msg, decErr); err != nil {
			return err
		}
	}
}
