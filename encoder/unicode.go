package encoder

import "unicode/utf8"

// Code points that matter to more than one contextual encoder.
const (
	// nel is the C1 NEXT LINE control, the only C1 character that is valid
	// in XML-flavored output.
	nel = 0x85
	// maxC1Ctrl is the last C1 control character; DEL (0x7f) through this
	// point is rejected by the XML and HTML encoders.
	maxC1Ctrl = 0x9f
	// lineSep and paraSep are legal in JavaScript source but terminate
	// string literals in JSON and older parsers, so they are always escaped.
	lineSep = 0x2028
	paraSep = 0x2029
)

const hexDigits = "0123456789abcdef"

// isNonCharacter reports whether r is one of the code points permanently
// reserved by Unicode as not representing a character: U+FDD0..U+FDEF and
// the last two code points of every plane.
func isNonCharacter(r rune) bool {
	return r&0xfffe == 0xfffe || (r >= 0xfdd0 && r <= 0xfdef)
}

// isValidXMLChar reports whether r may appear literally in XML-flavored
// output. Permitted: tab, LF, CR, NEL, printable ASCII, and everything from
// U+00A0 up excluding noncharacters. C0 and C1 controls (including DEL) are
// rejected. Surrogate code points never reach this check: UTF-8 decoding
// yields RuneError for them.
func isValidXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r' || r == nel:
		return true
	case r < 0x20:
		return false
	case r <= 0x7e:
		return true
	case r <= maxC1Ctrl:
		return false
	case r > utf8.MaxRune:
		return false
	default:
		return !isNonCharacter(r)
	}
}

// runeLen returns the sequence length declared by a UTF-8 lead byte. Invalid
// lead bytes (stray continuations, 0xf8 and up) report 1 so the caller
// consumes them individually.
func runeLen(lead byte) int {
	switch {
	case lead < 0x80:
		return 1
	case lead < 0xc0:
		return 1
	case lead < 0xe0:
		return 2
	case lead < 0xf0:
		return 3
	case lead < 0xf8:
		return 4
	default:
		return 1
	}
}

// incompleteRune reports whether s[i:end] is a truncated prefix of a
// multi-byte UTF-8 sequence. Transcoders stop before such a prefix when more
// input may follow, so a character split across chunk boundaries is never
// misclassified as malformed. A prefix that already contains a non-
// continuation byte cannot be completed and is not deferred.
func incompleteRune(s string, i, end int) bool {
	need := runeLen(s[i])
	if need == 1 || end-i >= need {
		return false
	}

	for k := i + 1; k < end; k++ {
		if s[k]&0xc0 != 0x80 {
			return false
		}
	}

	return true
}
