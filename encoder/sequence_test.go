package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSequence_Construction(t *testing.T) {
	t.Run("single stage collapses", func(t *testing.T) {
		assert.Equal(t, XML, NewSequence(XML))
	})

	t.Run("nested sequences flatten", func(t *testing.T) {
		inner := NewSequence(URI, XML)
		outer := NewSequence(inner, XMLComment)
		seq, ok := outer.(*sequenceEncoder)
		require.True(t, ok)
		assert.Len(t, seq.stages, 3)
	})

	t.Run("empty panics", func(t *testing.T) {
		assert.Panics(t, func() { NewSequence() })
	})

	t.Run("nil stage panics", func(t *testing.T) {
		assert.Panics(t, func() { NewSequence(XML, nil) })
	})
}

func TestSequence_CompositionLaw(t *testing.T) {
	// Sequence(A, B) applied to x must equal B(A(x))
	seq := NewSequence(URI, XML)

	inputs := []string{
		"",
		"plain",
		"a= &b=\u00a0",
		`<a href="x">&amp;</a>`,
		"100% & more",
		"café \U0001F600",
	}

	for _, input := range inputs {
		direct := EncodeToString(XML, EncodeToString(URI, input))
		assert.Equal(t, direct, EncodeToString(seq, input), "input %q", input)
	}
}

func TestSequence_URIThenXML(t *testing.T) {
	// percent-encode first, then entity-escape the result
	seq := NewSequence(URI, XML)

	assert.Equal(t, "a=%20&amp;b=%c2%a0", EncodeToString(seq, "a= &b=\u00a0"))
}

func TestSequence_FastPath(t *testing.T) {
	seq := NewSequence(URI, XML)

	s := "safe-text"
	assert.Equal(t, len(s), seq.FirstEncodedOffset(s, 0, len(s)))

	// a character safe for the last stage but not the first still triggers
	// encoding
	s = "a b"
	assert.Equal(t, 1, seq.FirstEncodedOffset(s, 0, len(s)))
}

func TestSequence_MaxEncodedLength(t *testing.T) {
	seq := NewSequence(URI, XML)

	// bounds compose: n*3 through the percent-encoder, then *5 through XML
	assert.Equal(t, 150, seq.MaxEncodedLength(10))
}

func TestSequence_OverflowConsumesNothingPartial(t *testing.T) {
	seq := NewSequence(URI, XML)

	// "&" becomes "%26" then "%26" passes XML; " " becomes "%20"
	src := &Source{S: " & ", End: 3}
	buf := make([]byte, 4)
	dst := &Dest{B: buf, End: 4}

	res := seq.Transcode(src, dst, true)

	require.Equal(t, Overflow, res)
	// whatever was consumed is fully present in the output
	assert.Equal(t, EncodeToString(seq, " & ")[:dst.Pos], string(dst.Bytes()))
	assert.LessOrEqual(t, src.Pos, 2)

	// a second call with more space finishes the job
	rest := make([]byte, 16)
	dst2 := &Dest{B: rest, End: 16}
	res = seq.Transcode(src, dst2, true)

	require.Equal(t, Underflow, res)
	assert.Equal(t, 3, src.Pos)
}

func TestSequence_ChunkedEquivalence(t *testing.T) {
	seq := NewSequence(URI, XML)
	input := "a= &b=\u00a0 café <>&"
	want := EncodeToString(seq, input)

	// feed byte by byte through a tiny destination
	src := &Source{S: input, End: 0}
	out := make([]byte, 0, len(want))
	buf := make([]byte, 8)

	for end := 1; end <= len(input); end++ {
		src.End = end
		eof := end == len(input)
		for {
			dst := &Dest{B: buf, End: len(buf)}
			res := seq.Transcode(src, dst, eof)
			out = append(out, dst.Bytes()...)
			if res == Underflow {
				break
			}
		}
	}

	assert.Equal(t, want, string(out))
}
