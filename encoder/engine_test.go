package encoder

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeToString_FastPathIdentity(t *testing.T) {
	s := "nothing to encode here"
	out := EncodeToString(XML, s)

	require.Equal(t, s, out)

	// not just equal content: the very same string, with no allocation
	allocs := testing.AllocsPerRun(100, func() {
		out = EncodeToString(XML, s)
	})
	assert.Zero(t, allocs, "safe input must not allocate")
}

func TestEncodeToString_SafePrefixPreserved(t *testing.T) {
	// a long safe prefix is copied verbatim before transcoding starts
	prefix := strings.Repeat("safe ", 40)
	input := prefix + "<tag>"

	assert.Equal(t, prefix+"&lt;tag&gt;", EncodeToString(XML, input))
}

func TestEncodeToString_GrowthRetry(t *testing.T) {
	// all-quote input expands five-fold, far past the initial slack, which
	// forces the worst-case-sized retry
	input := strings.Repeat(`"`, 3000)
	want := strings.Repeat("&#34;", 3000)

	assert.Equal(t, want, EncodeToString(XML, input))
}

func TestEncodeToString_Determinism(t *testing.T) {
	input := `mixed <content> & "quotes" café \x00` + "\x00"
	first := EncodeToString(XML, input)

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, EncodeToString(XML, input))
	}
}

type flakySink struct {
	fail  bool
	wrote bytes.Buffer
}

var errSink = errors.New("sink failed")

func (f *flakySink) Write(p []byte) (int, error) {
	if f.fail {
		return 0, errSink
	}

	return f.wrote.Write(p)
}

func TestEncodeToWriter(t *testing.T) {
	t.Run("fast path writes input unchanged", func(t *testing.T) {
		var sink flakySink
		err := EncodeToWriter(XML, &sink, "all safe")

		require.NoError(t, err)
		assert.Equal(t, "all safe", sink.wrote.String())
	})

	t.Run("empty input writes nothing", func(t *testing.T) {
		var sink flakySink
		require.NoError(t, EncodeToWriter(XML, &sink, ""))
		assert.Zero(t, sink.wrote.Len())
	})

	t.Run("matches EncodeToString", func(t *testing.T) {
		input := `<a href="x">fish & chips</a>` + strings.Repeat("&", 5000)
		var sink flakySink
		err := EncodeToWriter(XML, &sink, input)

		require.NoError(t, err)
		assert.Equal(t, EncodeToString(XML, input), sink.wrote.String())
	})

	t.Run("sink error propagates", func(t *testing.T) {
		sink := flakySink{fail: true}
		err := EncodeToWriter(XML, &sink, "needs <encoding>")

		require.ErrorIs(t, err, errSink)
	})

	t.Run("sink error on safe input propagates", func(t *testing.T) {
		sink := flakySink{fail: true}
		err := EncodeToWriter(XML, &sink, "all safe")

		require.ErrorIs(t, err, errSink)
	})
}

func TestEncodeToWriter_LargeInputBoundedBuffer(t *testing.T) {
	// output far exceeds any single buffer, exercising the flush loop
	input := strings.Repeat(`<">`, 40000)
	var sink flakySink
	err := EncodeToWriter(XML, &sink, input)

	require.NoError(t, err)
	assert.Equal(t, EncodeToString(XML, input), sink.wrote.String())
}
