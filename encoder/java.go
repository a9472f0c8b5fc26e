package encoder

import "unicode/utf8"

// JavaString is the canonical encoder for Java string literal contents, safe
// for concurrent use. Useful when generating Java or properties-style source
// from untrusted input.
//
// The caller must provide the surrounding quotation characters.
var JavaString Encoder = javaEncoder{}

// javaEncoder escapes for a Java string literal: the short escapes for
// common controls, backslash-escaped quotes, and "\uHHHH" for everything
// outside printable ASCII. Invalid byte sequences become the Unicode
// replacement character so the output is always well formed.
type javaEncoder struct{}

// MaxEncodedLength returns the worst-case output size: a one-byte character
// expanding to a six-byte "\uHHHH" escape.
func (javaEncoder) MaxEncodedLength(n int) int {
	return n * 6
}

func (javaEncoder) FirstEncodedOffset(s string, off, n int) int {
	end := off + n
	for i := off; i < end; i++ {
		c := s[i]
		if c < 0x20 || c > 0x7e || c == '"' || c == '\'' || c == '\\' {
			return i
		}
	}

	return end
}

func (javaEncoder) Transcode(src *Source, dst *Dest, endOfInput bool) Result {
	s, end := src.S, src.End
	out, m := dst.B, dst.End
	i, j := src.Pos, dst.Pos

	for i < end {
		c := s[i]
		if c < utf8.RuneSelf {
			var short byte
			switch c {
			case '\b':
				short = 'b'
			case '\t':
				short = 't'
			case '\n':
				short = 'n'
			case '\f':
				short = 'f'
			case '\r':
				short = 'r'
			case '"', '\'', '\\':
				short = c
			}
			switch {
			case short != 0:
				if j+2 > m {
					return overflow(src, i, dst, j)
				}
				out[j] = '\\'
				out[j+1] = short
				j += 2
			case c < 0x20 || c == 0x7f:
				if j+6 > m {
					return overflow(src, i, dst, j)
				}
				j = putUnicodeEscape(out, j, rune(c))
			default:
				if j >= m {
					return overflow(src, i, dst, j)
				}
				out[j] = c
				j++
			}
			i++

			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:end])
		if r == utf8.RuneError && size <= 1 {
			if !endOfInput && incompleteRune(s, i, end) {
				break
			}
			r, size = utf8.RuneError, 1
		}

		if r <= 0xffff {
			if j+6 > m {
				return overflow(src, i, dst, j)
			}
			j = putUnicodeEscape(out, j, r)
		} else {
			if j+12 > m {
				return overflow(src, i, dst, j)
			}
			j = putSurrogateEscapes(out, j, r)
		}
		i += size
	}

	return underflow(src, i, dst, j)
}
