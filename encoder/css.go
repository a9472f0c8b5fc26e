package encoder

import "unicode/utf8"

// CSSMode selects the CSS literal context being encoded.
type CSSMode int

const (
	// CSSModeString encodes the contents of a CSS string literal. The caller
	// must provide the surrounding quotation characters.
	CSSModeString CSSMode = iota

	// CSSModeURL encodes the contents of an unquoted CSS url() value.
	CSSModeURL
)

// Canonical CSS encoder instances, safe for concurrent use.
var (
	CSSString = NewCSSEncoder(CSSModeString)
	CSSURL    = NewCSSEncoder(CSSModeURL)
)

// cssEncoder escapes with CSS hex escapes. A hex escape is terminated with a
// space whenever the next character could extend it, which keeps the output
// correct without lookahead buffering: CSS collapses that one space into the
// escape. Characters CSS cannot represent become '_'.
type cssEncoder struct {
	// safe marks ASCII characters that pass through unescaped.
	safe [128]bool
}

// NewCSSEncoder creates a CSS encoder for the given mode.
func NewCSSEncoder(mode CSSMode) Encoder {
	e := &cssEncoder{}
	for c := 'a'; c <= 'z'; c++ {
		e.safe[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		e.safe[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		e.safe[c] = true
	}
	var marks string
	if mode == CSSModeURL {
		// url() additionally terminates on whitespace, quotes and parens,
		// so the unquoted form keeps a smaller set of marks
		marks = "!#$%&*+-./:;=?@_~"
	} else {
		marks = " !#$%&()*+,-./:;=?@[]^_{|}~"
	}
	for _, c := range marks {
		e.safe[c] = true
	}

	return e
}

// MaxEncodedLength returns the worst-case output size: a one-byte character
// expanding to a hex escape such as "\3c " (backslash, two digits, trailing
// space). Larger code points have proportionally more input bytes to carry
// their longer escapes.
func (e *cssEncoder) MaxEncodedLength(n int) int {
	return n * 4
}

func (e *cssEncoder) FirstEncodedOffset(s string, off, n int) int {
	end := off + n
	for i := off; i < end; i++ {
		c := s[i]
		if c >= utf8.RuneSelf || !e.safe[c] {
			return i
		}
	}

	return end
}

func (e *cssEncoder) Transcode(src *Source, dst *Dest, endOfInput bool) Result {
	s, end := src.S, src.End
	out, m := dst.B, dst.End
	i, j := src.Pos, dst.Pos

	for i < end {
		c := s[i]
		if c < utf8.RuneSelf {
			if e.safe[c] {
				if j >= m {
					return overflow(src, i, dst, j)
				}
				out[j] = c
				j++
				i++

				continue
			}

			if c == 0 || c == 0x7f {
				// NUL and DEL have no CSS representation worth keeping
				if j >= m {
					return overflow(src, i, dst, j)
				}
				out[j] = '_'
				j++
				i++

				continue
			}

			if i+1 >= end && !endOfInput {
				// the next chunk decides whether the escape needs its
				// terminating space
				break
			}
			need := cssEscapeLen(rune(c), s, i+1, end)
			if j+need > m {
				return overflow(src, i, dst, j)
			}
			j = putCSSHex(out, j, rune(c), need)
			i++

			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:end])
		if r == utf8.RuneError && size <= 1 {
			if !endOfInput && incompleteRune(s, i, end) {
				break
			}
			if j >= m {
				return overflow(src, i, dst, j)
			}
			out[j] = '_'
			j++
			i++

			continue
		}

		if i+size >= end && !endOfInput {
			break
		}
		need := cssEscapeLen(r, s, i+size, end)
		if j+need > m {
			return overflow(src, i, dst, j)
		}
		j = putCSSHex(out, j, r, need)
		i += size
	}

	return underflow(src, i, dst, j)
}

// cssEscapeLen returns the byte length of the hex escape for r: backslash,
// the significant hex digits, plus a terminating space when the following
// character (at s[next]) would otherwise extend the escape.
func cssEscapeLen(r rune, s string, next, end int) int {
	n := 1 + hexLen(r)
	if next >= end {
		// callers defer before the boundary unless endOfInput, so nothing
		// can follow the escape
		return n
	}
	if c := s[next]; isHexDigit(c) || c == ' ' || c == '\t' || c == '\n' || c == '\f' || c == '\r' {
		n++
	}

	return n
}

// putCSSHex writes the hex escape for r and returns the new offset. need is
// the length computed by cssEscapeLen; the caller has already checked it
// fits.
func putCSSHex(out []byte, j int, r rune, need int) int {
	out[j] = '\\'
	j++
	digits := hexLen(r)
	for d := digits - 1; d >= 0; d-- {
		out[j] = hexDigits[r>>(uint(d)*4)&0xf]
		j++
	}
	if need > 1+digits {
		out[j] = ' '
		j++
	}

	return j
}

func hexLen(r rune) int {
	n := 1
	for r > 0xf {
		r >>= 4
		n++
	}

	return n
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
