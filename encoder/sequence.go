package encoder

import (
	"github.com/arloliu/ctxenc/internal/pool"
)

// sequenceEncoder chains encoders so that the output of each stage feeds the
// next. Nested sequences are flattened at construction.
type sequenceEncoder struct {
	stages []Encoder
}

// NewSequence creates an encoder equivalent to applying each given encoder in
// order: the first stage reads the input, the last stage produces the output.
// Nested sequences are flattened. Panics if no encoder is given or any is
// nil.
//
// A single-stage sequence returns that stage directly.
func NewSequence(encs ...Encoder) Encoder {
	flat := make([]Encoder, 0, len(encs))
	for _, e := range encs {
		if e == nil {
			panic("encoder: NewSequence called with a nil encoder")
		}
		if seq, ok := e.(*sequenceEncoder); ok {
			flat = append(flat, seq.stages...)
		} else {
			flat = append(flat, e)
		}
	}
	if len(flat) == 0 {
		panic("encoder: NewSequence requires at least one encoder")
	}
	if len(flat) == 1 {
		return flat[0]
	}

	return &sequenceEncoder{stages: flat}
}

// MaxEncodedLength folds the stage bounds: each stage's worst case feeds the
// next stage's sizing.
func (e *sequenceEncoder) MaxEncodedLength(n int) int {
	for _, stage := range e.stages {
		n = stage.MaxEncodedLength(n)
	}

	return n
}

// FirstEncodedOffset returns the earliest offset any stage would encode at.
// Input that every stage passes verbatim passes the whole chain verbatim.
func (e *sequenceEncoder) FirstEncodedOffset(s string, off, n int) int {
	limit := off + n
	for _, stage := range e.stages {
		if o := stage.FirstEncodedOffset(s, off, limit-off); o < limit {
			limit = o
		}
	}

	return limit
}

// Outcomes of piping one input prefix through the chain.
type pipeOutcome int

const (
	// pipeOK: every stage consumed its whole input (the first stage may
	// have deferred a trailing lookahead) and the output is committed.
	pipeOK pipeOutcome = iota
	// pipeMisfit: the final stage ran out of output space; nothing was
	// committed.
	pipeMisfit
	// pipeDefer: a downstream stage held back trailing lookahead bytes that
	// a stateless chain cannot carry between calls; nothing was committed.
	pipeDefer
)

// Transcode pipelines input through the stages without carrying state
// between calls. Each round picks the largest input prefix whose full
// pipeline output fits the destination: on a misfit or a downstream
// deferral the prefix shrinks and the round reruns. Output reaches dst only
// for fully-piped prefixes, so the cursor contract holds across the chain.
func (e *sequenceEncoder) Transcode(src *Source, dst *Dest, endOfInput bool) Result {
	s := src.S

	for src.Pos < src.End {
		avail := src.End - src.Pos
		take := avail

		for {
			// the real end-of-input flag only applies when the whole
			// remaining input is in play
			eof := endOfInput && take == avail
			consumed, outcome := e.pipe(s[src.Pos:src.Pos+take], eof, dst)

			if outcome == pipeOK {
				if consumed > 0 {
					src.Pos += consumed

					break
				}

				// the whole prefix is deferred lookahead
				if endOfInput {
					// shrunken by an earlier misfit; a larger destination
					// lets the full input run with eof set
					return Overflow
				}

				return Underflow
			}

			if outcome == pipeMisfit {
				if take <= 1 {
					return Overflow
				}
				take /= 2

				continue
			}

			// pipeDefer: peel tail bytes until the lookahead boundary falls
			// outside the prefix
			if take <= 1 {
				if endOfInput {
					return Overflow
				}

				return Underflow
			}
			take--
		}
	}

	return Underflow
}

// pipe runs text through every stage, writing the final stage into dst.
// Intermediate results live in pooled buffers sized to each stage's worst
// case, so only the final stage competes for dst space. On any outcome
// other than pipeOK the destination cursor is restored, so dst only ever
// holds output of fully-piped input.
func (e *sequenceEncoder) pipe(text string, endOfInput bool, dst *Dest) (consumed int, outcome pipeOutcome) {
	last := len(e.stages) - 1
	mark := dst.Pos
	cur := text

	for idx, stage := range e.stages {
		stageSrc := Source{S: cur, End: len(cur)}

		if idx == last {
			res := stage.Transcode(&stageSrc, dst, endOfInput)
			if res == Overflow {
				dst.Pos = mark

				return 0, pipeMisfit
			}
			if stageSrc.Pos < stageSrc.End {
				dst.Pos = mark

				return 0, pipeDefer
			}

			return consumed, pipeOK
		}

		buf, release := pool.GetByteSlice(stage.MaxEncodedLength(len(cur)))
		mid := Dest{B: buf, End: len(buf)}
		if stage.Transcode(&stageSrc, &mid, endOfInput) == Overflow {
			release()
			panic("encoder: transcode overflowed a worst-case sized buffer")
		}
		if idx == 0 {
			// the entry stage may defer a trailing lookahead; those bytes
			// simply stay in the caller's input
			consumed = stageSrc.Pos
		} else if stageSrc.Pos < stageSrc.End {
			release()
			dst.Pos = mark

			return 0, pipeDefer
		}
		next := string(mid.Bytes())
		release()
		cur = next
	}

	return consumed, pipeOK
}
