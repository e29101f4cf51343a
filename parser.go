// Package sxmlc is a small, forgiving XML ingestion core: it turns a textual
// stream into structural events (tag start, tag end, text run, attribute)
// and can assemble those events into an in-memory tree. It targets
// configuration and data-interchange documents rather than fully conformant
// XML: there is no namespace, DTD or encoding handling.
package sxmlc

import (
	"bytes"
	"fmt"
	"io"
)

const (
	defaultReadBufferSize      = 4 << 10
	autoGrowBufferMaxLimitSize = 1000 << 10
	defaultAttrsBufferSize     = 16
)

// Parser drives one input stream. It is not safe for concurrent use; give
// each goroutine its own Parser.
type Parser struct {
	r       io.Reader // reader provided by the client
	options options   // parser's options
	buf     []byte    // buffer that will grow as needed, large enough to hold a tag (default max limit: 1MB)
	cur     int       // cursor byte position
	line    int       // 1-based input line, advanced as segments are consumed
	err     error     // last encountered error
	node    Node      // shared node handed to callbacks
}

type options struct {
	readBufferSize             int
	autoGrowBufferMaxLimitSize int
	attrsBufferSize            int
}

func defaultOptions() options {
	return options{
		readBufferSize:             defaultReadBufferSize,
		autoGrowBufferMaxLimitSize: autoGrowBufferMaxLimitSize,
		attrsBufferSize:            defaultAttrsBufferSize,
	}
}

// Option is a Parser option.
type Option func(o *options)

// WithReadBufferSize directs the Parser to this buffer size
// to read from the io.Reader. Default: 4096.
func WithReadBufferSize(size int) Option {
	if size <= 0 {
		size = defaultReadBufferSize
	}
	return func(o *options) { o.readBufferSize = size }
}

// WithAutoGrowBufferMaxLimitSize directs the Parser to limit
// auto grow buffer to not grow exceed this limit. Default: 1 MB.
func WithAutoGrowBufferMaxLimitSize(size int) Option {
	if size <= 0 {
		size = autoGrowBufferMaxLimitSize
	}
	return func(o *options) { o.autoGrowBufferMaxLimitSize = size }
}

// WithAttrsBufferSize directs the Parser to use this attribute
// buffer capacity as its initial size. Default: 16.
func WithAttrsBufferSize(size int) Option {
	if size <= 0 {
		size = defaultAttrsBufferSize
	}
	return func(o *options) { o.attrsBufferSize = size }
}

// New creates a new Parser over r.
func New(r io.Reader, opts ...Option) *Parser {
	p := new(Parser)
	p.Reset(r, opts...)
	return p
}

// Reset resets the Parser to read from r, maintaining storage for future
// parsing to reduce memory alloc.
func (p *Parser) Reset(r io.Reader, opts ...Option) {
	p.r, p.err = r, nil
	p.cur, p.line = 0, 1

	p.options = defaultOptions()
	for i := range opts {
		opts[i](&p.options)
	}

	if cap(p.node.Attrs) < p.options.attrsBufferSize {
		p.node.Attrs = make([]Attr, 0, p.options.attrsBufferSize)
	}
	if p.options.readBufferSize > p.options.autoGrowBufferMaxLimitSize {
		p.options.autoGrowBufferMaxLimitSize = p.options.readBufferSize
	}

	switch size := p.options.readBufferSize; {
	case cap(p.buf) >= size+defaultReadBufferSize:
		p.buf = p.buf[:0:cap(p.buf)]
	default:
		// Create buffer with additional cap since we need to memmove remaining bytes
		p.buf = make([]byte, 0, size+defaultReadBufferSize)
	}
}

// Line returns the current 1-based input line. Custom Handler callbacks can
// use it to attach positions to their own diagnostics.
func (p *Parser) Line() int { return p.line }

// readSegment returns the raw bytes up to and including the next '>',
// growing the buffer as needed. At end of input it returns whatever remains
// together with io.EOF. The returned slice is only valid until the next
// readSegment call.
func (p *Parser) readSegment() ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}

	pivot, pos := p.cur, p.cur
	for {
		if pos >= len(p.buf) {
			pivot, pos = p.memmoveRemainingBytes(pivot)
			if err := p.manageBuffer(); err != nil {
				p.err = err
				seg := p.buf[pivot:pos]
				p.cur = pos
				p.line += bytes.Count(seg, []byte{'\n'})
				return seg, err
			}
		}
		if p.buf[pos] == '>' {
			seg := p.buf[pivot : pos+1]
			p.cur = pos + 1
			p.line += bytes.Count(seg, []byte{'\n'})
			return seg, nil
		}
		pos++
	}
}

func (p *Parser) memmoveRemainingBytes(pivot int) (cur, last int) {
	if pivot == 0 {
		return p.cur, len(p.buf)
	}
	n := copy(p.buf, p.buf[pivot:])
	p.buf = p.buf[:n:cap(p.buf)]
	p.cur = 0
	return p.cur, len(p.buf)
}

func (p *Parser) manageBuffer() error {
	growSize := len(p.buf) + p.options.readBufferSize
	start, end := len(p.buf), growSize
	switch {
	case growSize <= cap(p.buf): // Grow by reslice
		p.buf = p.buf[:growSize:cap(p.buf)]
	default: // Grow by make new alloc
		if growSize > p.options.autoGrowBufferMaxLimitSize {
			return fmt.Errorf("could not grow buffer to %d, max limit is set to %d: %w",
				growSize, p.options.autoGrowBufferMaxLimitSize, errBufferLimit)
		}
		buf := make([]byte, growSize)
		n := copy(buf, p.buf)
		p.buf = buf
		start, end = n, cap(p.buf)
	}

	n, err := io.ReadAtLeast(p.r, p.buf[start:end], 1)
	p.buf = p.buf[: start+n : cap(p.buf)]

	return err
}

// resetNode clears the shared node while keeping the attribute storage.
func (p *Parser) resetNode() {
	p.node.Kind = TagNone
	p.node.Tag = ""
	p.node.Text = ""
	p.node.Attrs = p.node.Attrs[:0]
	p.node.Children = nil
	p.node.Father = nil
	p.node.Active = true
}
