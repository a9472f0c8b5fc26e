package encoder

import (
	"io"

	"github.com/arloliu/ctxenc/internal/pool"
)

// minEncodeSpace is the slack reserved beyond the input length on the first
// encoding attempt, enough for a handful of escapes without a retry.
const minEncodeSpace = 64

// EncodeToString encodes s with e and returns the result.
//
// Input that needs no encoding is returned as-is without allocating. Encoded
// output is built in a pooled scratch buffer sized to the input plus a small
// slack; if the escapes outgrow it, one retry against the worst-case bound
// always succeeds.
//
// Parameters:
//   - e: The context encoder to apply
//   - s: The text to encode
//
// Returns:
//   - string: The encoded text, or s itself when nothing needed encoding
func EncodeToString(e Encoder, s string) string {
	n := len(s)
	j := e.FirstEncodedOffset(s, 0, n)
	if j == n {
		return s
	}

	bb := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(bb)

	bb.Grow(n + minEncodeSpace)
	buf := bb.Slice(0, bb.Cap())

	src := Source{S: s, Pos: j, End: n}
	dst := Dest{B: buf, Pos: copy(buf, s[:j]), End: len(buf)}

	if e.Transcode(&src, &dst, true) == Underflow {
		return string(dst.Bytes())
	}

	// the slack was not enough; the worst-case bound for the remaining
	// input cannot overflow
	need := dst.Pos + e.MaxEncodedLength(n-src.Pos)
	big, release := pool.GetByteSlice(need)
	defer release()

	copy(big, buf[:dst.Pos])
	full := Dest{B: big, Pos: dst.Pos, End: need}
	if e.Transcode(&src, &full, true) == Overflow {
		panic("encoder: transcode overflowed a worst-case sized buffer")
	}

	return string(full.Bytes())
}

// EncodeToWriter encodes s with e and writes the result to w.
//
// Output is produced through a fixed-size pooled buffer that is flushed each
// time it fills, so memory use stays bounded by the buffer size regardless
// of input length. Errors from w are returned unchanged.
//
// Parameters:
//   - e: The context encoder to apply
//   - w: The destination for encoded output
//   - s: The text to encode
//
// Returns:
//   - error: The first error returned by w, or nil
func EncodeToWriter(e Encoder, w io.Writer, s string) error {
	n := len(s)
	j := e.FirstEncodedOffset(s, 0, n)
	if j == n {
		if n == 0 {
			return nil
		}
		_, err := io.WriteString(w, s)

		return err
	}

	if j > 0 {
		if _, err := io.WriteString(w, s[:j]); err != nil {
			return err
		}
	}

	bb := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(bb)

	buf := bb.Slice(0, bb.Cap())
	src := Source{S: s, Pos: j, End: n}

	for {
		dst := Dest{B: buf, End: len(buf)}
		res := e.Transcode(&src, &dst, true)

		if dst.Pos > 0 {
			if _, err := w.Write(buf[:dst.Pos]); err != nil {
				return err
			}
		}

		if res == Underflow {
			return nil
		}

		if dst.Pos == 0 {
			// a single escape is larger than the whole buffer; only deep
			// encoder chains can produce one
			bb.Grow(2 * cap(bb.B))
			buf = bb.Slice(0, bb.Cap())
		}
	}
}
