package encoder

import (
	"io"
	"strings"
	"testing"
)

var benchSink string

func BenchmarkEncodeToString_SafeInput(b *testing.B) {
	s := strings.Repeat("no markup at all here ", 50)
	b.SetBytes(int64(len(s)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		benchSink = EncodeToString(XML, s)
	}
}

func BenchmarkEncodeToString_DenseEscapes(b *testing.B) {
	s := strings.Repeat(`<a href="x">&amp;</a>`, 50)
	b.SetBytes(int64(len(s)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		benchSink = EncodeToString(XML, s)
	}
}

func BenchmarkEncodeToString_SparseEscapes(b *testing.B) {
	s := strings.Repeat("mostly plain text with one & per block ", 50)
	b.SetBytes(int64(len(s)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		benchSink = EncodeToString(XML, s)
	}
}

func BenchmarkEncodeToWriter(b *testing.B) {
	s := strings.Repeat(`<item v="1">&</item>`, 200)
	b.SetBytes(int64(len(s)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = EncodeToWriter(XML, io.Discard, s)
	}
}

func BenchmarkEncodeToString_URIComponent(b *testing.B) {
	s := strings.Repeat("key=value with spaces&more café ", 40)
	b.SetBytes(int64(len(s)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		benchSink = EncodeToString(URIComponent, s)
	}
}

func BenchmarkSequence_URIThenXML(b *testing.B) {
	seq := NewSequence(URI, XML)
	s := strings.Repeat("a= &b=c ", 40)
	b.SetBytes(int64(len(s)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		benchSink = EncodeToString(seq, s)
	}
}
