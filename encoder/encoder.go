package encoder

// Result reports the outcome of a Transcode call.
type Result int

const (
	// Underflow indicates that all consumable input up to the source limit
	// was processed. When endOfInput is false, trailing bytes that cannot be
	// classified yet (an incomplete UTF-8 sequence, or a pending lookahead
	// such as CDATA's "]]") may be left unconsumed for the next chunk.
	Underflow Result = iota

	// Overflow indicates the destination ran out of space before the next
	// character's escape sequence could be written in full. No partial
	// escape bytes are written and the source position is not advanced past
	// the character that did not fit.
	Overflow
)

// String returns the name of the result code.
func (r Result) String() string {
	if r == Overflow {
		return "overflow"
	}

	return "underflow"
}

// Source is a read cursor over a window of UTF-8 text.
//
// Pos is advanced by Transcode only past fully consumed characters; after
// any call, S[Pos:End] holds exactly the bytes that still await encoding.
type Source struct {
	S   string
	Pos int
	End int
}

// Remaining returns the number of unconsumed bytes in the window.
func (s *Source) Remaining() int {
	return s.End - s.Pos
}

// Dest is a write cursor over a window of a byte slice.
//
// Pos is advanced by Transcode only past fully written escape sequences; a
// partial escape is never left in the buffer.
type Dest struct {
	B   []byte
	Pos int
	End int
}

// Remaining returns the number of writable bytes left in the window.
func (d *Dest) Remaining() int {
	return d.End - d.Pos
}

// Bytes returns the written portion of the destination window.
func (d *Dest) Bytes() []byte {
	return d.B[:d.Pos]
}

// Encoder is the contract implemented by every contextual encoder.
//
// Implementations are stateless and immutable: all three operations may be
// called concurrently on a shared instance. FirstEncodedOffset and Transcode
// must classify characters identically; a mismatch would under- or
// over-encode.
type Encoder interface {
	// FirstEncodedOffset scans s[off:off+n] and returns the index of the
	// first byte the encoder would not copy verbatim, or off+n if the whole
	// window is safe. Every byte before the returned offset is guaranteed
	// copyable unchanged. Side-effect free.
	FirstEncodedOffset(s string, off, n int) int

	// MaxEncodedLength returns an upper bound on the number of output bytes
	// produced for n input bytes, valid for every possible input including
	// worst-case escape and malformed-byte sequences.
	MaxEncodedLength(n int) int

	// Transcode consumes bytes from src, writing their encoded form to dst.
	// It returns Overflow the instant the next character's full escape would
	// not fit in dst, without writing any part of it and without consuming
	// the character. It returns Underflow once all consumable input has been
	// processed; if endOfInput is false, bytes whose classification depends
	// on input not yet supplied are left unconsumed rather than treated as
	// malformed.
	Transcode(src *Source, dst *Dest, endOfInput bool) Result
}

// overflow stores the cursor positions and reports Overflow.
func overflow(src *Source, i int, dst *Dest, j int) Result {
	src.Pos = i
	dst.Pos = j

	return Overflow
}

// underflow stores the cursor positions and reports Underflow.
func underflow(src *Source, i int, dst *Dest, j int) Result {
	src.Pos = i
	dst.Pos = j

	return Underflow
}
