package encoder

import "unicode/utf8"

// HTMLUnquotedAttribute is the canonical encoder for unquoted HTML attribute
// values, safe for concurrent use.
//
// Quoted attributes encoded with the XML family should usually be preferred;
// this context exists for templates that omit the quotes. The caller should
// still make sure the value does not abut unsafe characters.
var HTMLUnquotedAttribute Encoder = htmlEncoder{}

// htmlEncoder escapes everything that can terminate or alter an unquoted
// attribute value: whitespace, quotes, '/', '=', backtick and the markup
// characters, all as character references. Invalid code points are replaced
// with '-' (a space would end the attribute).
type htmlEncoder struct{}

// MaxEncodedLength returns the worst-case output size: a one-byte character
// expanding to a five-byte reference such as "&#32;" or "&amp;". (NEL is two
// input bytes and expands to the six-byte "&#133;".)
func (htmlEncoder) MaxEncodedLength(n int) int {
	return n * 5
}

func (htmlEncoder) FirstEncodedOffset(s string, off, n int) int {
	end := off + n
	for i := off; i < end; {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x21 && c <= 0x7e {
				switch c {
				case '"', '\'', '/', '=', '`', '&', '<', '>':
					return i
				}
				i++

				continue
			}

			// whitespace, controls, DEL: all encoded or substituted
			return i
		}

		r, size := utf8.DecodeRuneInString(s[i:end])
		if (r == utf8.RuneError && size <= 1) || r <= maxC1Ctrl || isNonCharacter(r) {
			return i
		}
		i += size
	}

	return end
}

func (htmlEncoder) Transcode(src *Source, dst *Dest, endOfInput bool) Result {
	s, end := src.S, src.End
	out, m := dst.B, dst.End
	i, j := src.Pos, dst.Pos

	for i < end {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '\t':
				if j+4 > m {
					return overflow(src, i, dst, j)
				}
				j += copy(out[j:], "&#9;")

			case '\n', '\f', '\r', ' ', '"', '\'', '/', '=', '`':
				if j+5 > m {
					return overflow(src, i, dst, j)
				}
				out[j] = '&'
				out[j+1] = '#'
				out[j+2] = c/10%10 + '0'
				out[j+3] = c%10 + '0'
				out[j+4] = ';'
				j += 5

			case '&':
				if j+5 > m {
					return overflow(src, i, dst, j)
				}
				j += copy(out[j:], "&amp;")

			case '<':
				if j+4 > m {
					return overflow(src, i, dst, j)
				}
				j += copy(out[j:], "&lt;")

			case '>':
				if j+4 > m {
					return overflow(src, i, dst, j)
				}
				j += copy(out[j:], "&gt;")

			default:
				if j >= m {
					return overflow(src, i, dst, j)
				}
				if c >= 0x21 && c <= 0x7e {
					out[j] = c
				} else {
					// remaining controls and DEL
					out[j] = '-'
				}
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
			if j >= m {
				return overflow(src, i, dst, j)
			}
			out[j] = '-'
			j++
			i++

			continue
		}

		if r == nel {
			if j+6 > m {
				return overflow(src, i, dst, j)
			}
			j += copy(out[j:], "&#133;")
			i += size

			continue
		}

		if r <= maxC1Ctrl || isNonCharacter(r) {
			if j >= m {
				return overflow(src, i, dst, j)
			}
			out[j] = '-'
			j++
			i += size

			continue
		}

		if j+size > m {
			return overflow(src, i, dst, j)
		}
		j += copy(out[j:], s[i:i+size])
		i += size
	}

	return underflow(src, i, dst, j)
}
