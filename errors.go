package sxmlc

import "fmt"

type errorString string

func (e errorString) Error() string { return string(e) }

const (
	// ErrMalformedTag is reported when a tag token matches no known grammar.
	ErrMalformedTag = errorString("malformed tag")

	// ErrQuoteMismatch is reported by ParseAttribute when a value opened
	// with a quote does not close with one. The decoded attribute is still
	// returned and callers decide whether to treat this as fatal.
	ErrQuoteMismatch = errorString("attribute value quote mismatch")

	// ErrStop may be returned from any Handler callback to stop parsing
	// immediately. Parse treats it as a clean stop, not an error.
	ErrStop = errorString("stop")

	// errPartialTag signals that a tag's end delimiter was not found in the
	// available text and more input must be appended before retrying.
	errPartialTag = errorString("partial tag")

	errBufferLimit = errorString("auto grow buffer exceed max limit")
)

// SyntaxError reports a tag that could not be classified, with the 1-based
// input line it ended on and the offending text.
type SyntaxError struct {
	Line int
	Tag  string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: syntax error: %v (%s)", e.Line, e.Err, e.Tag)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// StructureError reports a structural violation: an end tag that does not
// match the open element, text before the root, or a duplicate root.
type StructureError struct {
	Line     int
	Expected string // open element name, when relevant
	Got      string // offending tag name, when relevant
	Msg      string
}

func (e *StructureError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("line %d: unexpected tag end </%s>, waiting for </%s>", e.Line, e.Got, e.Expected)
	}
	if e.Got != "" {
		return fmt.Sprintf("line %d: %s <%s>", e.Line, e.Msg, e.Got)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}
