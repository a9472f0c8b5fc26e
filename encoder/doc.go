// Package encoder implements contextual output encoding: rewriting untrusted
// text so it is safe to embed in a specific syntactic context (XML/HTML
// content and attributes, JavaScript string literals, CSS strings and URLs,
// URI components, CDATA sections, XML comments, Java string literals).
//
// The package is built around a chunked transcoding contract (the Encoder
// interface) driven by a buffer engine that reuses pooled scratch memory:
//
//   - EncodeToString encodes a string and returns the result, returning the
//     input unchanged (and allocation-free) when nothing needs encoding.
//   - EncodeToWriter streams encoded output to an io.Writer with memory use
//     bounded by a fixed buffer, independent of input size.
//   - Writer wraps an io.Writer so arbitrary chunks can be encoded
//     incrementally without ever splitting an escape sequence or
//     misclassifying a multi-byte character cut at a chunk boundary.
//
// Encoder instances are immutable and safe for unlimited concurrent use.
// Malformed input (invalid UTF-8, noncharacters, context-illegal controls)
// never produces an error; every context defines a total substitution
// policy, so encoding always yields output.
//
// Most callers should use the top-level ctxenc package, which maps context
// names to the encoder singletons defined here.
package encoder
