package encoder

import "unicode/utf8"

// XMLMode selects which quote characters the XML encoder escapes. The
// structural characters '&', '<' and '>' are escaped in every mode.
type XMLMode int

const (
	// XMLModeAll escapes both quote characters, making the output safe for
	// text content and for single- or double-quoted attribute values.
	XMLModeAll XMLMode = iota
	// XMLModeContent escapes no quotes; safe for text content only.
	XMLModeContent
	// XMLModeSingleQuotedAttribute escapes ' but not "; safe inside
	// single-quoted attribute values.
	XMLModeSingleQuotedAttribute
	// XMLModeDoubleQuotedAttribute escapes " but not '; safe inside
	// double-quoted attribute values.
	XMLModeDoubleQuotedAttribute
)

// Canonical XML encoder instances, safe for concurrent use.
var (
	XML                      = NewXMLEncoder(XMLModeAll)
	XMLContent               = NewXMLEncoder(XMLModeContent)
	XMLSingleQuotedAttribute = NewXMLEncoder(XMLModeSingleQuotedAttribute)
	XMLDoubleQuotedAttribute = NewXMLEncoder(XMLModeDoubleQuotedAttribute)
)

const (
	xmlAmp  = "&amp;"
	xmlLt   = "&lt;"
	xmlGt   = "&gt;"
	xmlApos = "&#39;"
	xmlQuot = "&#34;"
)

// xmlEncoder encodes for XML and XHTML content and attribute contexts.
// Characters that are invalid in XML output (controls, noncharacters,
// malformed bytes) are replaced with a single space, which keeps the output
// well-formed regardless of input.
type xmlEncoder struct {
	escapeSingle bool
	escapeDouble bool
}

// NewXMLEncoder creates an XML encoder for the given quote mode.
func NewXMLEncoder(mode XMLMode) Encoder {
	return &xmlEncoder{
		escapeSingle: mode == XMLModeAll || mode == XMLModeSingleQuotedAttribute,
		escapeDouble: mode == XMLModeAll || mode == XMLModeDoubleQuotedAttribute,
	}
}

// MaxEncodedLength returns the worst-case output size: every input byte
// expanding to a five-byte entity such as "&amp;" or "&#34;".
func (e *xmlEncoder) MaxEncodedLength(n int) int {
	return n * 5
}

func (e *xmlEncoder) FirstEncodedOffset(s string, off, n int) int {
	end := off + n
	for i := off; i < end; {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '&' || c == '<' || c == '>':
				return i
			case c == '\'' && e.escapeSingle:
				return i
			case c == '"' && e.escapeDouble:
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

func (e *xmlEncoder) Transcode(src *Source, dst *Dest, endOfInput bool) Result {
	s, end := src.S, src.End
	out, m := dst.B, dst.End
	i, j := src.Pos, dst.Pos

	for i < end {
		c := s[i]
		if c < utf8.RuneSelf {
			var esc string
			switch c {
			case '&':
				esc = xmlAmp
			case '<':
				esc = xmlLt
			case '>':
				esc = xmlGt
			case '\'':
				if e.escapeSingle {
					esc = xmlApos
				}
			case '"':
				if e.escapeDouble {
					esc = xmlQuot
				}
			}
			if esc != "" {
				if j+len(esc) > m {
					return overflow(src, i, dst, j)
				}
				j += copy(out[j:], esc)
				i++

				continue
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
