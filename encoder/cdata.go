package encoder

import "unicode/utf8"

// CDATA is the canonical CDATA section encoder, safe for concurrent use.
//
// The caller must provide the "<![CDATA[" and "]]>" section boundaries.
var CDATA Encoder = cdataEncoder{}

// cdataReplacement splices a literal "]]>" across two CDATA sections: the
// first section is terminated, "]]" appears as plain character data, and a
// new section reopens around ">". A parser reconstructs the original "]]>".
const cdataReplacement = "]]>]]<![CDATA[>"

// cdataEncoder rewrites the single dangerous sequence "]]>"; characters that
// are invalid in XML are replaced with a space as in XML content. All other
// input passes through untouched.
type cdataEncoder struct{}

// MaxEncodedLength returns the worst case of the whole input being "]]>"
// repeats: each three-byte sequence expands to the fifteen-byte splice.
func (cdataEncoder) MaxEncodedLength(n int) int {
	return n * 5
}

func (cdataEncoder) FirstEncodedOffset(s string, off, n int) int {
	end := off + n
	for i := off; i < end; {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == ']' && i+2 < end && s[i+1] == ']' && s[i+2] == '>':
				return i
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

func (cdataEncoder) Transcode(src *Source, dst *Dest, endOfInput bool) Result {
	s, end := src.S, src.End
	out, m := dst.B, dst.End
	i, j := src.Pos, dst.Pos

	for i < end {
		c := s[i]
		if c < utf8.RuneSelf {
			if c == ']' {
				if i+1 >= end || (s[i+1] == ']' && i+2 >= end) {
					if !endOfInput {
						// "]" or "]]" may complete to "]]>" in the next chunk
						break
					}
					// input-final brackets are harmless
					if j >= m {
						return overflow(src, i, dst, j)
					}
					out[j] = ']'
					j++
					i++

					continue
				}

				if s[i+1] == ']' && s[i+2] == '>' {
					if j+len(cdataReplacement) > m {
						return overflow(src, i, dst, j)
					}
					j += copy(out[j:], cdataReplacement)
					i += 3

					continue
				}
			}

			if j >= m {
				return overflow(src, i, dst, j)
			}
			if c >= 0x20 && c <= 0x7e || c == '\t' || c == '\n' || c == '\r' {
				out[j] = c
			} else {
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
