package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSSStringEncoder_Encode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain untouched", "bold 12px Arial", "bold 12px Arial"},
		{"double quote before hex digit", `a"b`, `a\22 b`},
		{"double quote before non-hex", `a"zz`, `a\22zz`},
		{"single quote", "a'z", `a\27z`},
		{"backslash", `a\z`, `a\5cz`},
		{"less than", "a<z", `a\3cz`},
		{"newline terminated by space", "a\nb", `a\a b`},
		{"escape at end of input", `say "`, `say \22`},
		{"nul substituted", "a\x00b", "a_b"},
		{"DEL substituted", "a\x7fb", "a_b"},
		{"malformed byte substituted", "a\xffb", "a_b"},
		{"latin hex escaped", "caféz", `caf\e9z`},
		{"bmp hex escaped", "aĀz", `a\100z`},
		{"supplementary hex escaped", "a\U0001F600z", `a\1f600z`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeToString(CSSString, tt.input))
		})
	}
}

func TestCSSURLEncoder_Encode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"url untouched", "http://example.com/a.png", "http://example.com/a.png"},
		{"space escaped", "a b", `a\20 b`},
		{"paren escaped", "a(z", `a\28z`},
		{"quote escaped", `a"z`, `a\22z`},
		{"comma escaped", "a,z", `a\2cz`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeToString(CSSURL, tt.input))
		})
	}
}

func TestCSSEncoder_EscapeSpaceRule(t *testing.T) {
	// the terminating space appears exactly when the next character could
	// extend the hex escape
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"next is hex digit", `"f`, `\22 f`},
		{"next is uppercase hex digit", `"F`, `\22 F`},
		{"next is whitespace", "\" x", `\22  x`},
		{"next is plain letter", `"x`, `\22x`},
		{"escape runs of quotes", `""`, `\22\22`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeToString(CSSString, tt.input))
		})
	}
}

func TestCSSEncoder_ChunkBoundaryLookahead(t *testing.T) {
	// an escape at a chunk boundary is deferred: the space rule depends on
	// the next character
	src := &Source{S: `ab"`, End: 3}
	buf := make([]byte, 16)
	dst := &Dest{B: buf, End: 16}

	res := CSSString.Transcode(src, dst, false)

	require.Equal(t, Underflow, res)
	assert.Equal(t, 2, src.Pos)
	assert.Equal(t, "ab", string(dst.Bytes()))

	// at end of input nothing can follow, so no space is needed
	res = CSSString.Transcode(src, dst, true)

	require.Equal(t, Underflow, res)
	assert.Equal(t, `ab\22`, string(dst.Bytes()))
}

func TestCSSEncoder_Overflow(t *testing.T) {
	src := &Source{S: `ab"f`, End: 4}
	buf := make([]byte, 5)
	dst := &Dest{B: buf, End: 5}

	res := CSSString.Transcode(src, dst, true)

	require.Equal(t, Overflow, res)
	assert.Equal(t, 2, src.Pos)
	assert.Equal(t, "ab", string(dst.Bytes()))
}

func TestCSSEncoder_MaxEncodedLength(t *testing.T) {
	assert.Equal(t, 40, CSSString.MaxEncodedLength(10))

	worst := EncodeToString(CSSString, `""""""""""`)
	assert.LessOrEqual(t, len(worst), CSSString.MaxEncodedLength(10))
}
