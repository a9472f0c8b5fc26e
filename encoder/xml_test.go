package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXMLEncoder_Modes(t *testing.T) {
	tests := []struct {
		name  string
		enc   Encoder
		input string
		want  string
	}{
		{"all quotes", XML, `<b>"it's"</b>`, "&lt;b&gt;&#34;it&#39;s&#34;&lt;/b&gt;"},
		{"content keeps quotes", XMLContent, `<b>"it's"</b>`, `&lt;b&gt;"it's"&lt;/b&gt;`},
		{"single quoted attr", XMLSingleQuotedAttribute, `"it's"`, `"it&#39;s"`},
		{"double quoted attr", XMLDoubleQuotedAttribute, `"it's"`, `&#34;it's&#34;`},
		{"ampersand", XML, "fish & chips", "fish &amp; chips"},
		{"gt escaped in every mode", XMLContent, "a>b", "a&gt;b"},
		{"empty", XML, "", ""},
		{"plain text untouched", XML, "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeToString(tt.enc, tt.input))
		})
	}
}

func TestXMLEncoder_InvalidCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"NUL", "a\x00b", "a b"},
		{"bell", "a\x07b", "a b"},
		{"escape", "a\x1bb", "a b"},
		{"DEL", "a\x7fb", "a b"},
		{"C1 control", "a\u0085b", "a\u0085b"}, // NEL is valid in XML
		{"C1 other", "a\u0086b", "a b"},
		{"noncharacter FFFE", "a\ufffeb", "a b"},
		{"noncharacter FFFF", "a\uffffb", "a b"},
		{"noncharacter FDD0", "a\ufdd0b", "a b"},
		{"supplementary noncharacter", "a\U0001FFFEb", "a b"},
		{"supplementary valid", "a\U0001F600b", "a\U0001F600b"},
		{"malformed byte", "a\xffb", "a b"},
		{"truncated sequence", "a\xc3", "a "},
		{"whitespace kept", "a\tb\nc\rd", "a\tb\nc\rd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeToString(XML, tt.input))
		})
	}
}

func TestXMLEncoder_FirstEncodedOffset(t *testing.T) {
	s := "safe text &gt here"
	off := XML.FirstEncodedOffset(s, 0, len(s))
	assert.Equal(t, 10, off, "offset should point at the ampersand")

	s = "all safe"
	assert.Equal(t, len(s), XML.FirstEncodedOffset(s, 0, len(s)))

	// a window that excludes the unsafe byte is reported safe
	s = "ab&cd"
	assert.Equal(t, 2, XML.FirstEncodedOffset(s, 0, 2))

	// quote safety depends on mode
	s = `a"b`
	assert.Equal(t, 1, XML.FirstEncodedOffset(s, 0, len(s)))
	assert.Equal(t, len(s), XMLContent.FirstEncodedOffset(s, 0, len(s)))
}

func TestXMLEncoder_OverflowLeavesNoPartialEscape(t *testing.T) {
	src := &Source{S: "ab&cd", End: 5}
	buf := make([]byte, 4)
	dst := &Dest{B: buf, End: 4}

	res := XML.Transcode(src, dst, true)

	require.Equal(t, Overflow, res)
	assert.Equal(t, 2, src.Pos, "cursor must stop before the character that did not fit")
	assert.Equal(t, 2, dst.Pos, "no partial escape bytes may be written")
	assert.Equal(t, "ab", string(dst.Bytes()))

	// resuming with enough space completes the input
	big := make([]byte, 16)
	dst2 := &Dest{B: big, End: 16}
	res = XML.Transcode(src, dst2, true)

	require.Equal(t, Underflow, res)
	assert.Equal(t, 5, src.Pos)
	assert.Equal(t, "&amp;cd", string(dst2.Bytes()))
}

func TestXMLEncoder_IncompleteRuneDeferred(t *testing.T) {
	// "é" split across a chunk boundary
	input := "ab\xc3"
	src := &Source{S: input, End: len(input)}
	buf := make([]byte, 16)
	dst := &Dest{B: buf, End: 16}

	res := XML.Transcode(src, dst, false)

	require.Equal(t, Underflow, res)
	assert.Equal(t, 2, src.Pos, "the truncated lead byte must wait for the next chunk")
	assert.Equal(t, "ab", string(dst.Bytes()))

	// the same bytes at end of input are malformed
	src.Pos = 0
	dst.Pos = 0
	res = XML.Transcode(src, dst, true)

	require.Equal(t, Underflow, res)
	assert.Equal(t, "ab ", string(dst.Bytes()))
}

func TestXMLEncoder_MaxEncodedLength(t *testing.T) {
	assert.Equal(t, 0, XML.MaxEncodedLength(0))
	assert.Equal(t, 50, XML.MaxEncodedLength(10))

	// the bound must cover the worst real expansion
	worst := EncodeToString(XML, `""""""""""`)
	assert.LessOrEqual(t, len(worst), XML.MaxEncodedLength(10))
}
