package encoder

import (
	"unicode/utf16"
	"unicode/utf8"
)

// JavaScriptMode selects the surrounding context of a JavaScript string
// literal, which determines how quotes, slashes and ampersands are escaped.
type JavaScriptMode int

const (
	// JavaScriptModeSource encodes for plain JavaScript or JSON source with
	// no HTML around it. Escape sequences are the shortest available.
	JavaScriptModeSource JavaScriptMode = iota

	// JavaScriptModeAttribute encodes for script inside an HTML attribute
	// (such as onclick). Quotes are hex-escaped so no additional HTML
	// attribute encoding is required around them.
	JavaScriptModeAttribute

	// JavaScriptModeBlock encodes for script inside an HTML <script> block.
	// '/' is escaped so an embedded "</script>" cannot terminate the block.
	JavaScriptModeBlock

	// JavaScriptModeHTML combines the attribute and block protections so the
	// output is safe in either placement.
	JavaScriptModeHTML
)

// Canonical JavaScript encoder instances, safe for concurrent use. All emit
// ASCII-only output; use NewJavaScriptEncoder to let printable non-ASCII
// text pass through unescaped.
var (
	JavaScript          = NewJavaScriptEncoder(JavaScriptModeHTML, true)
	JavaScriptAttribute = NewJavaScriptEncoder(JavaScriptModeAttribute, true)
	JavaScriptBlock     = NewJavaScriptEncoder(JavaScriptModeBlock, true)
	JavaScriptSource    = NewJavaScriptEncoder(JavaScriptModeSource, true)
)

// javaScriptEncoder encodes the contents of a JavaScript string literal. The
// caller must provide the surrounding quotation characters.
type javaScriptEncoder struct {
	// hexQuotes replaces quotes with \x escapes instead of backslash
	// escapes; a backslash-escaped quote is not safe inside an HTML
	// attribute.
	hexQuotes bool
	// escapeSlash prevents "</" from terminating an enclosing script block.
	escapeSlash bool
	escapeAmp   bool
	asciiOnly   bool
}

// NewJavaScriptEncoder creates a JavaScript string encoder for the given
// mode. When asciiOnly is true, every code point outside printable ASCII is
// escaped; otherwise printable non-ASCII passes through, with U+2028 and
// U+2029 still escaped (legal in JS source, but they terminate string
// literals in JSON and HTML script contexts).
func NewJavaScriptEncoder(mode JavaScriptMode, asciiOnly bool) Encoder {
	return &javaScriptEncoder{
		hexQuotes:   mode == JavaScriptModeAttribute || mode == JavaScriptModeHTML,
		escapeSlash: mode == JavaScriptModeBlock || mode == JavaScriptModeHTML,
		escapeAmp:   mode != JavaScriptModeSource,
		asciiOnly:   asciiOnly,
	}
}

// MaxEncodedLength returns the worst-case output size: a one-byte character
// expanding to a four-byte "\xHH" escape. Multi-byte characters expand to at
// most three output bytes per input byte ("\uHHHH" for two or three input
// bytes, a surrogate escape pair for four).
func (e *javaScriptEncoder) MaxEncodedLength(n int) int {
	return n * 4
}

func (e *javaScriptEncoder) FirstEncodedOffset(s string, off, n int) int {
	end := off + n
	for i := off; i < end; {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c < 0x20:
				return i
			case c == '\\' || c == '\'' || c == '"':
				return i
			case c == '/' && e.escapeSlash:
				return i
			case c == '&' && e.escapeAmp:
				return i
			}
			i++

			continue
		}

		if e.asciiOnly {
			return i
		}

		r, size := utf8.DecodeRuneInString(s[i:end])
		if r == utf8.RuneError && size <= 1 {
			// malformed bytes pass through; nothing here is JS syntax
			i++

			continue
		}
		if r == lineSep || r == paraSep {
			return i
		}
		i += size
	}

	return end
}

func (e *javaScriptEncoder) Transcode(src *Source, dst *Dest, endOfInput bool) Result {
	s, end := src.S, src.End
	out, m := dst.B, dst.End
	i, j := src.Pos, dst.Pos

	for i < end {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c < 0x20:
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
				}
				if short != 0 {
					if j+2 > m {
						return overflow(src, i, dst, j)
					}
					out[j] = '\\'
					out[j+1] = short
					j += 2
				} else {
					if j+4 > m {
						return overflow(src, i, dst, j)
					}
					j = putHexEscape(out, j, c)
				}

			case c == '\\', c == '/' && e.escapeSlash:
				if j+2 > m {
					return overflow(src, i, dst, j)
				}
				out[j] = '\\'
				out[j+1] = c
				j += 2

			case c == '\'', c == '"':
				if e.hexQuotes {
					if j+4 > m {
						return overflow(src, i, dst, j)
					}
					j = putHexEscape(out, j, c)
				} else {
					if j+2 > m {
						return overflow(src, i, dst, j)
					}
					out[j] = '\\'
					out[j+1] = c
					j += 2
				}

			case c == '&' && e.escapeAmp:
				if j+4 > m {
					return overflow(src, i, dst, j)
				}
				j = putHexEscape(out, j, c)

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
			if e.asciiOnly {
				// keep the output ASCII: escape the raw byte value
				if j+4 > m {
					return overflow(src, i, dst, j)
				}
				j = putHexEscape(out, j, c)
			} else {
				if j >= m {
					return overflow(src, i, dst, j)
				}
				out[j] = c
				j++
			}
			i++

			continue
		}

		if e.asciiOnly || r == lineSep || r == paraSep {
			switch {
			case r <= 0xff:
				if j+4 > m {
					return overflow(src, i, dst, j)
				}
				j = putHexEscape(out, j, byte(r))
			case r <= 0xffff:
				if j+6 > m {
					return overflow(src, i, dst, j)
				}
				j = putUnicodeEscape(out, j, r)
			default:
				if j+12 > m {
					return overflow(src, i, dst, j)
				}
				j = putSurrogateEscapes(out, j, r)
			}
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

// putHexEscape writes "\xHH" for a byte value and returns the new offset.
// The caller has already checked that four bytes fit.
func putHexEscape(out []byte, j int, c byte) int {
	out[j] = '\\'
	out[j+1] = 'x'
	out[j+2] = hexDigits[c>>4]
	out[j+3] = hexDigits[c&0xf]

	return j + 4
}

// putUnicodeEscape writes "\uHHHH" for a BMP code point or UTF-16 unit and
// returns the new offset. The caller has already checked that six bytes fit.
func putUnicodeEscape(out []byte, j int, r rune) int {
	out[j] = '\\'
	out[j+1] = 'u'
	out[j+2] = hexDigits[r>>12&0xf]
	out[j+3] = hexDigits[r>>8&0xf]
	out[j+4] = hexDigits[r>>4&0xf]
	out[j+5] = hexDigits[r&0xf]

	return j + 6
}

// putSurrogateEscapes writes a supplementary code point as a "\uHHHH\uHHHH"
// surrogate pair and returns the new offset. The caller has already checked
// that twelve bytes fit.
func putSurrogateEscapes(out []byte, j int, r rune) int {
	hi, lo := utf16.EncodeRune(r)
	j = putUnicodeEscape(out, j, hi)

	return putUnicodeEscape(out, j, lo)
}
