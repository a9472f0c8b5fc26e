package encoder

import "unicode/utf8"

// XMLComment is the canonical XML comment encoder, safe for concurrent use.
//
// Not for use with (X)HTML comments, which browsers may interpret through
// vendor-specific extensions.
var XMLComment Encoder = xmlCommentEncoder{}

// xmlCommentEncoder encodes text for embedding in an XML comment. A hyphen
// that is immediately followed by another hyphen, or that ends the input, is
// rewritten to '~' so the input can never terminate the comment early or
// leave an invalid "--" pair. Everything else follows the XML content
// invalid-character policy; no entity escapes apply inside comments.
type xmlCommentEncoder struct{}

// MaxEncodedLength returns n: every character maps to at most one output
// character in this context.
func (xmlCommentEncoder) MaxEncodedLength(n int) int {
	return n
}

func (xmlCommentEncoder) FirstEncodedOffset(s string, off, n int) int {
	end := off + n
	for i := off; i < end; {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '-':
				// needs rewriting when doubled or input-final
				if i+1 >= end || s[i+1] == '-' {
					return i
				}
				i++
			case c >= 0x20 && c <= 0x7e, c == '\t', c == '\n', c == '\r':
				i++
			default:
				return i
			}

			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:end])
		if (r == utf8.RuneError && size <= 1) || !isValidXMLChar(r) {
			return i
		}
		i += size
	}

	return end
}

func (xmlCommentEncoder) Transcode(src *Source, dst *Dest, endOfInput bool) Result {
	s, end := src.S, src.End
	out, m := dst.B, dst.End
	i, j := src.Pos, dst.Pos

	for i < end {
		c := s[i]
		if c < utf8.RuneSelf {
			if c == '-' && i+1 >= end {
				if !endOfInput {
					// the next chunk decides whether this hyphen doubles
					break
				}
				if j >= m {
					return overflow(src, i, dst, j)
				}
				out[j] = '~'
				j++
				i++

				continue
			}

			if j >= m {
				return overflow(src, i, dst, j)
			}
			switch {
			case c == '-':
				if s[i+1] == '-' {
					out[j] = '~'
				} else {
					out[j] = '-'
				}
			case c >= 0x20 && c <= 0x7e, c == '\t', c == '\n', c == '\r':
				out[j] = c
			default:
				out[j] = ' '
			}
			j++
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
			out[j] = ' '
			j++
			i++

			continue
		}

		if !isValidXMLChar(r) {
			if j >= m {
				return overflow(src, i, dst, j)
			}
			out[j] = ' '
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
