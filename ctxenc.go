// Package ctxenc encodes untrusted text for safe embedding in a specific
// output context: XML and HTML content or attributes, JavaScript string
// literals, CSS strings and URLs, URI components, CDATA sections and XML
// comments.
//
// Encoding is contextual: the characters that must be escaped, and how,
// depend entirely on where the output lands. Each context has a dedicated
// encoder that escapes exactly what that context requires and substitutes a
// safe character for anything the context cannot represent, so the output is
// always well formed regardless of input.
//
// # Core Features
//
//   - One encoder per output context, selected by a Context constant
//   - Zero allocation when the input needs no encoding
//   - Bounded memory on the streaming paths, independent of input size
//   - Byte-exact results whether input arrives whole or in arbitrary chunks
//   - Invalid UTF-8 replaced per context, never echoed into markup
//
// # Basic Usage
//
// Encoding for a known context:
//
//	import "github.com/arloliu/ctxenc"
//
//	fmt.Println(ctxenc.ForHTML(`<script>alert("pwned")</script>`))
//	// &lt;script&gt;alert(&#34;pwned&#34;)&lt;/script&gt;
//
//	href := "/search?q=" + ctxenc.ForURIComponent(userQuery)
//
// Selecting the context dynamically:
//
//	out, err := ctxenc.Encode(ctxenc.ContextJavaScript, userInput)
//
// Streaming to a writer:
//
//	err := ctxenc.ForHTMLTo(w, largeUntrustedText)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the encoder
// package. For advanced usage (custom JavaScript or URI encoder
// configurations, encoder chaining, or the incremental Writer), use the
// encoder package directly.
package ctxenc

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/ctxenc/encoder"
)

// Context identifies an output context with a stable string tag, for callers
// that select the encoder from configuration or template metadata.
type Context string

// All supported output contexts.
const (
	// ContextHTML covers general HTML: element content and quoted
	// attribute values.
	ContextHTML Context = "html"
	// ContextHTMLContent covers HTML element content only, leaving quotes
	// unescaped.
	ContextHTMLContent Context = "html-content"
	// ContextHTMLAttribute covers quoted HTML attribute values.
	ContextHTMLAttribute Context = "html-attribute"
	// ContextHTMLUnquotedAttribute covers attribute values written without
	// surrounding quotes.
	ContextHTMLUnquotedAttribute Context = "html-unquoted-attribute"

	// ContextXML covers general XML: element content and quoted attribute
	// values.
	ContextXML Context = "xml"
	// ContextXMLContent covers XML element content only.
	ContextXMLContent Context = "xml-content"
	// ContextXMLAttribute covers quoted XML attribute values.
	ContextXMLAttribute Context = "xml-attribute"
	// ContextXMLComment covers text inside an XML comment.
	ContextXMLComment Context = "xml-comment"
	// ContextCDATA covers text inside a CDATA section.
	ContextCDATA Context = "cdata"

	// ContextJavaScript covers JavaScript string literals embedded anywhere
	// in HTML.
	ContextJavaScript Context = "javascript"
	// ContextJavaScriptAttribute covers JavaScript string literals inside
	// HTML event-handler attributes.
	ContextJavaScriptAttribute Context = "javascript-attribute"
	// ContextJavaScriptBlock covers JavaScript string literals inside
	// <script> blocks.
	ContextJavaScriptBlock Context = "javascript-block"
	// ContextJavaScriptSource covers JavaScript string literals in plain
	// script or JSON source with no surrounding HTML.
	ContextJavaScriptSource Context = "javascript-source"

	// ContextCSSString covers CSS string literal contents.
	ContextCSSString Context = "css-string"
	// ContextCSSURL covers unquoted CSS url() values.
	ContextCSSURL Context = "css-url"

	// ContextURI covers complete URIs, preserving reserved delimiters.
	ContextURI Context = "uri"
	// ContextURIComponent covers single URI components such as query
	// parameter values.
	ContextURIComponent Context = "uri-component"

	// ContextJava covers Java string literal contents, for generated
	// source and properties files.
	ContextJava Context = "java"
)

// ErrUnknownContext is returned when a Context has no registered encoder.
var ErrUnknownContext = errors.New("unknown encoding context")

// encoders is fixed at init: contexts are a closed set, and an immutable
// map keeps every lookup safe for concurrent use.
var encoders = map[Context]encoder.Encoder{
	ContextHTML:                  encoder.XML,
	ContextHTMLContent:           encoder.XMLContent,
	ContextHTMLAttribute:         encoder.XML,
	ContextHTMLUnquotedAttribute: encoder.HTMLUnquotedAttribute,
	ContextXML:                   encoder.XML,
	ContextXMLContent:            encoder.XMLContent,
	ContextXMLAttribute:          encoder.XML,
	ContextXMLComment:            encoder.XMLComment,
	ContextCDATA:                 encoder.CDATA,
	ContextJavaScript:            encoder.JavaScript,
	ContextJavaScriptAttribute:   encoder.JavaScriptAttribute,
	ContextJavaScriptBlock:       encoder.JavaScriptBlock,
	ContextJavaScriptSource:      encoder.JavaScriptSource,
	ContextCSSString:             encoder.CSSString,
	ContextCSSURL:                encoder.CSSURL,
	ContextURI:                   encoder.URI,
	ContextURIComponent:          encoder.URIComponent,
	ContextJava:                  encoder.JavaString,
}

// Lookup returns the encoder registered for ctx.
//
// Parameters:
//   - ctx: The output context tag
//
// Returns:
//   - encoder.Encoder: The encoder for ctx
//   - error: ErrUnknownContext if ctx has no encoder
func Lookup(ctx Context) (encoder.Encoder, error) {
	e, ok := encoders[ctx]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContext, ctx)
	}

	return e, nil
}

// Encode encodes s for the given context.
//
// Parameters:
//   - ctx: The output context tag
//   - s: The text to encode
//
// Returns:
//   - string: The encoded text
//   - error: ErrUnknownContext if ctx has no encoder
func Encode(ctx Context, s string) (string, error) {
	e, err := Lookup(ctx)
	if err != nil {
		return "", err
	}

	return encoder.EncodeToString(e, s), nil
}

// EncodeTo encodes s for the given context and writes the result to w.
//
// Parameters:
//   - ctx: The output context tag
//   - w: The destination for encoded output
//   - s: The text to encode
//
// Returns:
//   - error: ErrUnknownContext if ctx has no encoder, or the first error
//     returned by w
func EncodeTo(w io.Writer, ctx Context, s string) error {
	e, err := Lookup(ctx)
	if err != nil {
		return err
	}

	return encoder.EncodeToWriter(e, w, s)
}

// ForHTML encodes s for HTML element content or quoted attribute values.
func ForHTML(s string) string {
	return encoder.EncodeToString(encoder.XML, s)
}

// ForHTMLTo encodes s as ForHTML does and writes the result to w.
func ForHTMLTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.XML, w, s)
}

// ForHTMLContent encodes s for HTML element content, leaving quotes alone.
func ForHTMLContent(s string) string {
	return encoder.EncodeToString(encoder.XMLContent, s)
}

// ForHTMLContentTo encodes s as ForHTMLContent does and writes the result to w.
func ForHTMLContentTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.XMLContent, w, s)
}

// ForHTMLAttribute encodes s for a quoted HTML attribute value.
func ForHTMLAttribute(s string) string {
	return encoder.EncodeToString(encoder.XML, s)
}

// ForHTMLAttributeTo encodes s as ForHTMLAttribute does and writes the result to w.
func ForHTMLAttributeTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.XML, w, s)
}

// ForHTMLUnquotedAttribute encodes s for an HTML attribute value written
// without surrounding quotes.
func ForHTMLUnquotedAttribute(s string) string {
	return encoder.EncodeToString(encoder.HTMLUnquotedAttribute, s)
}

// ForHTMLUnquotedAttributeTo encodes s as ForHTMLUnquotedAttribute does and
// writes the result to w.
func ForHTMLUnquotedAttributeTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.HTMLUnquotedAttribute, w, s)
}

// ForXML encodes s for XML element content or quoted attribute values.
func ForXML(s string) string {
	return encoder.EncodeToString(encoder.XML, s)
}

// ForXMLTo encodes s as ForXML does and writes the result to w.
func ForXMLTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.XML, w, s)
}

// ForXMLContent encodes s for XML element content, leaving quotes alone.
func ForXMLContent(s string) string {
	return encoder.EncodeToString(encoder.XMLContent, s)
}

// ForXMLContentTo encodes s as ForXMLContent does and writes the result to w.
func ForXMLContentTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.XMLContent, w, s)
}

// ForXMLAttribute encodes s for a quoted XML attribute value.
func ForXMLAttribute(s string) string {
	return encoder.EncodeToString(encoder.XML, s)
}

// ForXMLAttributeTo encodes s as ForXMLAttribute does and writes the result to w.
func ForXMLAttributeTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.XML, w, s)
}

// ForXMLComment encodes s for embedding in an XML comment.
func ForXMLComment(s string) string {
	return encoder.EncodeToString(encoder.XMLComment, s)
}

// ForXMLCommentTo encodes s as ForXMLComment does and writes the result to w.
func ForXMLCommentTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.XMLComment, w, s)
}

// ForCDATA encodes s for embedding in a CDATA section. The caller provides
// the section boundaries.
func ForCDATA(s string) string {
	return encoder.EncodeToString(encoder.CDATA, s)
}

// ForCDATATo encodes s as ForCDATA does and writes the result to w.
func ForCDATATo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.CDATA, w, s)
}

// ForJavaScript encodes s for a JavaScript string literal embedded anywhere
// in HTML. The caller provides the surrounding quotes.
func ForJavaScript(s string) string {
	return encoder.EncodeToString(encoder.JavaScript, s)
}

// ForJavaScriptTo encodes s as ForJavaScript does and writes the result to w.
func ForJavaScriptTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.JavaScript, w, s)
}

// ForJavaScriptAttribute encodes s for a JavaScript string literal inside an
// HTML event-handler attribute.
func ForJavaScriptAttribute(s string) string {
	return encoder.EncodeToString(encoder.JavaScriptAttribute, s)
}

// ForJavaScriptAttributeTo encodes s as ForJavaScriptAttribute does and
// writes the result to w.
func ForJavaScriptAttributeTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.JavaScriptAttribute, w, s)
}

// ForJavaScriptBlock encodes s for a JavaScript string literal inside a
// <script> block.
func ForJavaScriptBlock(s string) string {
	return encoder.EncodeToString(encoder.JavaScriptBlock, s)
}

// ForJavaScriptBlockTo encodes s as ForJavaScriptBlock does and writes the
// result to w.
func ForJavaScriptBlockTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.JavaScriptBlock, w, s)
}

// ForJavaScriptSource encodes s for a JavaScript string literal in plain
// script or JSON source.
func ForJavaScriptSource(s string) string {
	return encoder.EncodeToString(encoder.JavaScriptSource, s)
}

// ForJavaScriptSourceTo encodes s as ForJavaScriptSource does and writes the
// result to w.
func ForJavaScriptSourceTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.JavaScriptSource, w, s)
}

// ForCSSString encodes s for the contents of a CSS string literal.
func ForCSSString(s string) string {
	return encoder.EncodeToString(encoder.CSSString, s)
}

// ForCSSStringTo encodes s as ForCSSString does and writes the result to w.
func ForCSSStringTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.CSSString, w, s)
}

// ForCSSURL encodes s for an unquoted CSS url() value.
func ForCSSURL(s string) string {
	return encoder.EncodeToString(encoder.CSSURL, s)
}

// ForCSSURLTo encodes s as ForCSSURL does and writes the result to w.
func ForCSSURLTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.CSSURL, w, s)
}

// ForURI encodes s as a complete URI, preserving reserved delimiters.
func ForURI(s string) string {
	return encoder.EncodeToString(encoder.URI, s)
}

// ForURITo encodes s as ForURI does and writes the result to w.
func ForURITo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.URI, w, s)
}

// ForURIComponent encodes s as a single URI component.
func ForURIComponent(s string) string {
	return encoder.EncodeToString(encoder.URIComponent, s)
}

// ForURIComponentTo encodes s as ForURIComponent does and writes the result to w.
func ForURIComponentTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.URIComponent, w, s)
}

// ForJava encodes s for the contents of a Java string literal.
func ForJava(s string) string {
	return encoder.EncodeToString(encoder.JavaString, s)
}

// ForJavaTo encodes s as ForJava does and writes the result to w.
func ForJavaTo(w io.Writer, s string) error {
	return encoder.EncodeToWriter(encoder.JavaString, w, s)
}
