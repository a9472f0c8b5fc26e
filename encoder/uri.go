package encoder

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// URIMode selects the percent-encoding allow-list.
type URIMode int

const (
	// URIModeComponent encodes for a single URI component (a path segment,
	// query parameter name or value): only unreserved characters pass.
	URIModeComponent URIMode = iota

	// URIModeFull encodes a complete URI, additionally preserving the
	// reserved delimiters ";,/?:@&=+$#" so URI structure survives.
	URIModeFull
)

// Canonical percent-encoders, safe for concurrent use. Both encode
// characters to UTF-8 bytes before percent-encoding.
var (
	URI          = NewURIEncoder(URIModeFull)
	URIComponent = NewURIEncoder(URIModeComponent)
)

// ErrUnsupportedCharset is returned when a percent-encoder is constructed
// with a text encoding name that is unknown or has no encoder.
var ErrUnsupportedCharset = errors.New("unsupported charset")

// Characters that never get percent-encoded, per RFC 3986 unreserved (plus
// the historically safe marks), and the reserved set preserved in full-URI
// mode only.
const (
	uriUnreservedMarks = "-_.!~*'()"
	uriReservedSafe    = ";,/?:@&=+$#"
)

// uriEncoder percent-encodes every byte not on its allow-list, lowercase
// hex. Text is converted to bytes with UTF-8 unless a charset was supplied
// at construction.
type uriEncoder struct {
	safe [128]bool
	cs   encoding.Encoding // nil for direct UTF-8
}

// NewURIEncoder creates a UTF-8 percent-encoder for the given mode.
func NewURIEncoder(mode URIMode) Encoder {
	e := &uriEncoder{}
	for c := 'a'; c <= 'z'; c++ {
		e.safe[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		e.safe[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		e.safe[c] = true
	}
	for _, c := range uriUnreservedMarks {
		e.safe[c] = true
	}
	if mode == URIModeFull {
		for _, c := range uriReservedSafe {
			e.safe[c] = true
		}
	}

	return e
}

// NewURIEncoderCharset creates a percent-encoder that converts text to the
// named IANA charset before percent-encoding, for URIs consumed by systems
// that do not expect UTF-8. The charset is resolved at construction time;
// an unknown or encode-incapable name yields ErrUnsupportedCharset.
func NewURIEncoderCharset(mode URIMode, charset string) (Encoder, error) {
	cs, err := ianaindex.IANA.Encoding(charset)
	if err != nil || cs == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, charset)
	}

	e, _ := NewURIEncoder(mode).(*uriEncoder)
	if cs != unicode.UTF8 {
		e.cs = cs
	}

	return e, nil
}

// MaxEncodedLength returns the worst-case output size. Direct UTF-8
// percent-encoding triples each byte. Charset conversion can produce more
// bytes than the UTF-8 form it replaces (GB18030 maps some two-byte runes
// to four charset bytes; ISO-2022 charsets bracket runes with shift
// sequences), so converting encoders budget four charset bytes per input
// byte before tripling.
func (e *uriEncoder) MaxEncodedLength(n int) int {
	if e.cs != nil {
		return n * 12
	}

	return n * 3
}

func (e *uriEncoder) FirstEncodedOffset(s string, off, n int) int {
	end := off + n
	for i := off; i < end; i++ {
		c := s[i]
		if c >= utf8.RuneSelf || !e.safe[c] {
			return i
		}
	}

	return end
}

func (e *uriEncoder) Transcode(src *Source, dst *Dest, endOfInput bool) Result {
	s, end := src.S, src.End
	out, m := dst.B, dst.End
	i, j := src.Pos, dst.Pos

	// Transformers are stateful, so a fresh one is created per call to keep
	// the encoder itself immutable. Only the charset path pays for it.
	var conv *encoding.Encoder
	if e.cs != nil {
		conv = encoding.ReplaceUnsupported(e.cs.NewEncoder())
	}

	for i < end {
		c := s[i]
		if c < utf8.RuneSelf {
			if e.safe[c] {
				if j >= m {
					return overflow(src, i, dst, j)
				}
				out[j] = c
				j++
			} else {
				if j+3 > m {
					return overflow(src, i, dst, j)
				}
				j = putPercent(out, j, c)
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

		if conv == nil {
			// percent-encode the UTF-8 bytes directly
			if j+3*size > m {
				return overflow(src, i, dst, j)
			}
			for k := i; k < i+size; k++ {
				j = putPercent(out, j, s[k])
			}
			i += size

			continue
		}

		enc, err := conv.Bytes([]byte(s[i : i+size]))
		if err != nil || len(enc) == 0 {
			if j >= m {
				return overflow(src, i, dst, j)
			}
			out[j] = '-'
			j++
			i += size

			continue
		}
		if j+3*len(enc) > m {
			return overflow(src, i, dst, j)
		}
		for _, b := range enc {
			j = putPercent(out, j, b)
		}
		i += size
	}

	return underflow(src, i, dst, j)
}

// putPercent writes "%hh" for a byte and returns the new offset. The caller
// has already checked that three bytes fit.
func putPercent(out []byte, j int, c byte) int {
	out[j] = '%'
	out[j+1] = hexDigits[c>>4]
	out[j+2] = hexDigits[c&0xf]

	return j + 3
}
