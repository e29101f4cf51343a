package sxmlc

// domBuilder materializes the event stream into a Document. The cursor is
// the currently open element; children and text attach to it.
type domBuilder struct {
	p   *Parser
	doc *Document
	cur *Node
}

// ParseDocument runs the streaming parse and assembles the events into a
// tree. Auxiliary tags seen with no open element go to the document's
// pre-root list; the first top-level element becomes the root, a second one
// is a structural error.
func (p *Parser) ParseDocument() (*Document, error) {
	b := &domBuilder{p: p, doc: NewDocument()}
	h := Handler{
		Text:      b.text,
		StartNode: b.start,
		EndNode:   b.end,
	}
	if err := p.Parse(h); err != nil {
		b.doc.Free()
		return nil, err
	}
	return b.doc, nil
}

func (b *domBuilder) start(n *Node) error {
	node := new(Node)
	node.CopyFrom(n, false)

	if b.cur == nil {
		switch node.Kind {
		case TagFather, TagSelf:
			if b.doc.Root != nil {
				return &StructureError{Line: b.p.Line(), Got: node.Tag, Msg: "duplicate root element"}
			}
			b.doc.SetRoot(node)
		default:
			b.doc.AddPreRoot(node)
		}
	} else {
		b.cur.AddChild(node)
	}

	if node.Kind == TagFather {
		b.cur = node
	}
	return nil
}

func (b *domBuilder) end(n *Node) error {
	// Synthetic end events of self-closing and auxiliary tags never opened
	// the cursor.
	if n.Kind != TagEnd {
		return nil
	}
	if b.cur == nil {
		return &StructureError{Line: b.p.Line(), Got: n.Tag, Msg: "unexpected tag end"}
	}
	if b.cur.Tag != n.Tag {
		return &StructureError{Line: b.p.Line(), Expected: b.cur.Tag, Got: n.Tag}
	}
	b.cur = b.cur.Father
	return nil
}

func (b *domBuilder) text(s string) error {
	if b.cur == nil {
		return &StructureError{Line: b.p.Line(), Msg: "text before root element"}
	}
	b.cur.Text += s
	return nil
}
