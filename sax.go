package sxmlc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// EventKind discriminates the events delivered to a Handler's Every slot.
type EventKind int

const (
	EventText EventKind = iota
	EventStart
	EventEnd
)

// Handler holds the callback slots of a streaming parse. Any subset may be
// set; unset slots are not invoked. Every, when set, receives each event in
// addition to the specific slot (node is nil and text non-empty for text
// events, the reverse for the others).
//
// Self-closing elements and auxiliary tags (comment, instruction, CDATA,
// doctype, user kinds) raise StartNode then EndNode immediately, with
// nothing in between. Attribute fires between the two for each decoded
// attribute, in document order.
//
// The *Node passed to callbacks is reused and only valid until the next
// event; use CopyFrom to retain it. Returning ErrStop from any slot stops
// the parse cleanly; any other error aborts it and is returned by Parse.
type Handler struct {
	Text      func(text string) error
	StartNode func(node *Node) error
	EndNode   func(node *Node) error
	Attribute func(name, value string) error
	Every     func(kind EventKind, node *Node, text string) error
}

// Parse runs the streaming parse until end of input, a callback stop, or an
// error. Whitespace-only text runs are never delivered. End of input with
// unclosed elements is an error.
func (p *Parser) Parse(h Handler) error {
	depth := 0
	for {
		seg, err := p.readSegment()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if !isBlank(seg) {
					return &SyntaxError{Line: p.line, Tag: clipTag(string(seg)), Err: ErrMalformedTag}
				}
				if depth != 0 {
					return &StructureError{Line: p.line, Msg: fmt.Sprintf("unexpected end of input, %d unclosed element(s)", depth)}
				}
				return nil
			}
			return err
		}

		lt := bytes.IndexByte(seg, '<')
		if lt < 0 {
			// A '>' was seen with no matching '<' before it.
			return &SyntaxError{Line: p.line, Tag: clipTag(string(seg)), Err: ErrMalformedTag}
		}

		if text := seg[:lt]; !isBlank(text) {
			if err := p.emitText(h, Unescape(string(text))); err != nil {
				return stopFilter(err)
			}
		}

		tag := string(seg[lt:])
		p.resetNode()
		kind, cerr := classifyTag(tag, &p.node)
		for errors.Is(cerr, errPartialTag) {
			// The tag's end delimiter may legitimately come after this '>'
			// (comment, CDATA or doctype containing one): append the next
			// segment and retry.
			more, rerr := p.readSegment()
			tag += string(more)
			if rerr != nil {
				if errors.Is(rerr, io.EOF) {
					return &SyntaxError{Line: p.line, Tag: clipTag(tag), Err: io.ErrUnexpectedEOF}
				}
				return rerr
			}
			p.resetNode()
			kind, cerr = classifyTag(tag, &p.node)
		}
		if cerr != nil {
			return &SyntaxError{Line: p.line, Tag: clipTag(tag), Err: cerr}
		}

		switch kind {
		case TagEnd:
			if depth == 0 {
				return &StructureError{Line: p.line, Got: p.node.Tag, Msg: "unexpected tag end"}
			}
			depth--
			if err := p.emitEnd(h, &p.node); err != nil {
				return stopFilter(err)
			}
		default:
			if err := p.emitStart(h, &p.node); err != nil {
				return stopFilter(err)
			}
			if h.Attribute != nil {
				for i := range p.node.Attrs {
					if err := h.Attribute(p.node.Attrs[i].Name, p.node.Attrs[i].Value); err != nil {
						return stopFilter(err)
					}
				}
			}
			if kind == TagFather {
				depth++
			} else if err := p.emitEnd(h, &p.node); err != nil {
				return stopFilter(err)
			}
		}
	}
}

func (p *Parser) emitText(h Handler, text string) error {
	if h.Text != nil {
		if err := h.Text(text); err != nil {
			return err
		}
	}
	if h.Every != nil {
		return h.Every(EventText, nil, text)
	}
	return nil
}

func (p *Parser) emitStart(h Handler, node *Node) error {
	if h.StartNode != nil {
		if err := h.StartNode(node); err != nil {
			return err
		}
	}
	if h.Every != nil {
		return h.Every(EventStart, node, "")
	}
	return nil
}

func (p *Parser) emitEnd(h Handler, node *Node) error {
	if h.EndNode != nil {
		if err := h.EndNode(node); err != nil {
			return err
		}
	}
	if h.Every != nil {
		return h.Every(EventEnd, node, "")
	}
	return nil
}

// stopFilter turns the listener's stop signal into a clean return.
func stopFilter(err error) error {
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func isBlank(b []byte) bool {
	for _, c := range b {
		if !isSpace(c) {
			return false
		}
	}
	return true
}

// clipTag keeps diagnostics one line long.
func clipTag(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + "..."
	}
	return s
}
