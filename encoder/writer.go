package encoder

import (
	"errors"
	"io"

	"github.com/arloliu/ctxenc/internal/pool"
)

// ErrWriterClosed is returned by Writer operations after Close.
var ErrWriterClosed = errors.New("encoder: writer is closed")

// Writer encodes a stream incrementally and writes the result to an
// underlying writer. It implements io.WriteCloser.
//
// Input may be split at arbitrary byte boundaries: bytes the encoder holds
// back at a chunk boundary (an incomplete character, or a character whose
// encoding depends on what follows) are staged internally and carried into
// the next call. Close flushes them with the end-of-input signal and must be
// called to complete the stream; it does not close the underlying writer.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	enc   Encoder
	w     io.Writer
	stage *pool.ByteBuffer
	out   *pool.ByteBuffer
	err   error
}

// NewWriter creates a Writer that encodes with enc and writes to w.
func NewWriter(enc Encoder, w io.Writer) *Writer {
	return &Writer{
		enc:   enc,
		w:     w,
		stage: pool.GetStageBuffer(),
		out:   pool.GetEncodeBuffer(),
	}
}

// Write encodes p and writes whatever is encodable so far, staging any
// trailing bytes that need input from a later call.
func (w *Writer) Write(p []byte) (int, error) {
	if w.stage == nil {
		return 0, ErrWriterClosed
	}
	if w.err != nil {
		return 0, w.err
	}

	w.stage.B = append(w.stage.B, p...)
	if err := w.process(false); err != nil {
		w.err = err

		return 0, err
	}

	return len(p), nil
}

// WriteString is like Write but avoids converting s to a byte slice.
func (w *Writer) WriteString(s string) (int, error) {
	if w.stage == nil {
		return 0, ErrWriterClosed
	}
	if w.err != nil {
		return 0, w.err
	}

	w.stage.B = append(w.stage.B, s...)
	if err := w.process(false); err != nil {
		w.err = err

		return 0, err
	}

	return len(s), nil
}

// Close encodes any staged bytes as the end of the input and releases the
// internal buffers. The underlying writer is left open.
func (w *Writer) Close() error {
	if w.stage == nil {
		return w.err
	}

	err := w.err
	if err == nil {
		err = w.process(true)
	}

	pool.PutStageBuffer(w.stage)
	pool.PutEncodeBuffer(w.out)
	w.stage, w.out = nil, nil
	w.err = err

	return err
}

// process transcodes the staged input, flushing the output buffer whenever
// it fills, then compacts unconsumed trailing bytes to the front of the
// stage for the next call.
func (w *Writer) process(endOfInput bool) error {
	s := string(w.stage.B)
	src := Source{S: s, End: len(s)}
	buf := w.out.Slice(0, w.out.Cap())

	for {
		dst := Dest{B: buf, End: len(buf)}
		res := w.enc.Transcode(&src, &dst, endOfInput)

		if dst.Pos > 0 {
			if _, err := w.w.Write(buf[:dst.Pos]); err != nil {
				return err
			}
		}

		if res == Underflow {
			break
		}

		if dst.Pos == 0 {
			// a single escape is larger than the whole buffer
			w.out.Grow(2 * cap(w.out.B))
			buf = w.out.Slice(0, w.out.Cap())
		}
	}

	if endOfInput && src.Pos < src.End {
		return errors.New("encoder: transcode stalled at end of input")
	}

	n := copy(w.stage.B, s[src.Pos:])
	w.stage.B = w.stage.B[:n]

	return nil
}
