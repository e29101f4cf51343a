package sxmlc

// Attr is one attribute of an element node. Names need not be unique at the
// storage level; lookups return the lowest-index active match.
type Attr struct {
	Name   string
	Value  string
	Active bool
}

// Node is one node of a document tree. For elements, Tag is the tag name;
// for comment, instruction, CDATA, doctype and user-registered kinds it is
// the raw payload between the delimiters.
//
// Father is a non-owning back-reference used for upward traversal only. The
// Children slice is the ownership edge: a node appears in exactly one
// Children slice, and its Father is the node holding it there.
type Node struct {
	Kind     TagKind
	Tag      string
	Text     string
	Attrs    []Attr
	Children []*Node
	Father   *Node
	Active   bool
}

// NewNode returns an active node of the given kind.
func NewNode(kind TagKind, tag string) *Node {
	return &Node{Kind: kind, Tag: tag, Active: true}
}

// SetActive marks the node active or inactive. Inactive nodes are skipped by
// search, equality and printing but stay in place until removed.
func (n *Node) SetActive(active bool) { n.Active = active }

// SetTag replaces the node's tag name or payload.
func (n *Node) SetTag(tag string) { n.Tag = tag }

// SetComment turns the node into a comment with the given payload.
func (n *Node) SetComment(comment string) {
	n.Tag = comment
	n.Kind = TagComment
}

// SetText replaces the node's text content.
func (n *Node) SetText(text string) { n.Text = text }

// AddChild appends child to n and sets its back-reference.
func (n *Node) AddChild(child *Node) {
	child.Father = n
	n.Children = append(n.Children, child)
}

// SearchAttr returns the lowest index >= from of an active attribute named
// name, or -1.
func (n *Node) SearchAttr(name string, from int) int {
	if n == nil || name == "" || from < 0 || from > len(n.Attrs) {
		return -1
	}
	for i := from; i < len(n.Attrs); i++ {
		if n.Attrs[i].Active && n.Attrs[i].Name == name {
			return i
		}
	}
	return -1
}

// SetAttr updates the first attribute named name, reactivating it if it had
// been deactivated, or appends a new one. It returns the attribute's index.
func (n *Node) SetAttr(name, value string) int {
	if name == "" {
		return -1
	}
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			n.Attrs[i].Active = true
			return i
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value, Active: true})
	return len(n.Attrs) - 1
}

// RemoveAttr removes the attribute at index i, preserving the order of the
// remaining ones. It returns the new attribute count, or -1 when i is out of
// range.
func (n *Node) RemoveAttr(i int) int {
	if n == nil || i < 0 || i >= len(n.Attrs) {
		return -1
	}
	n.Attrs[i].Active = false
	n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
	return len(n.Attrs)
}

// SearchChild returns the lowest index >= from of an active child whose tag
// name is tag, or -1.
func (n *Node) SearchChild(tag string, from int) int {
	if n == nil || tag == "" || from < 0 || from > len(n.Children) {
		return -1
	}
	for i := from; i < len(n.Children); i++ {
		if n.Children[i].Active && n.Children[i].Tag == tag {
			return i
		}
	}
	return -1
}

// RemoveChild removes the child at index i, preserving the order of the
// remaining ones. It returns the new child count, or -1 when i is out of
// range.
func (n *Node) RemoveChild(i int) int {
	if n == nil || i < 0 || i >= len(n.Children) {
		return -1
	}
	n.Children[i].Active = false
	n.Children[i].Father = nil
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	return len(n.Children)
}

// Equal reports whether two nodes have the same tag name and the same set of
// active attribute names, in either order. Attribute values are not compared;
// this mirrors the historical contract and callers needing value equality
// must check values themselves.
func (n *Node) Equal(o *Node) bool {
	if n == o {
		return true
	}
	if n == nil || o == nil {
		return false
	}
	if n.Tag != o.Tag {
		return false
	}
	for i := range n.Attrs {
		if !n.Attrs[i].Active {
			continue
		}
		if o.SearchAttr(n.Attrs[i].Name, 0) < 0 {
			return false
		}
	}
	for i := range o.Attrs {
		if !o.Attrs[i].Active {
			continue
		}
		if n.SearchAttr(o.Attrs[i].Name, 0) < 0 {
			return false
		}
	}
	return true
}

// NextSibling returns the node following n among its father's children, or
// nil when n is the last one or has no father.
func (n *Node) NextSibling() *Node {
	if n == nil || n.Father == nil {
		return nil
	}
	kids := n.Father.Children
	for i := range kids {
		if kids[i] == n {
			if i+1 < len(kids) {
				return kids[i+1]
			}
			break
		}
	}
	return nil
}

// Next returns the pre-order successor of n: its first child, else its next
// sibling, else the next sibling of the nearest ancestor that has one. It
// returns nil past the last node.
func (n *Node) Next() *Node { return n.next(true) }

func (n *Node) next(inChildren bool) *Node {
	if n == nil {
		return nil
	}
	if inChildren && len(n.Children) > 0 {
		return n.Children[0]
	}
	if s := n.NextSibling(); s != nil {
		return s
	}
	return n.Father.next(false)
}

// CopyFrom resets n and copies src's kind, tag, text, attributes and active
// flag into it. Children are copied recursively only when deep is set, with
// their back-references pointing into the copy. n's own Father is left
// untouched, and no attribute or child storage is shared with src.
func (n *Node) CopyFrom(src *Node, deep bool) {
	father := n.Father
	*n = Node{Father: father, Active: true}
	if src == nil {
		return
	}
	n.Kind = src.Kind
	n.Tag = src.Tag
	n.Text = src.Text
	n.Active = src.Active
	if len(src.Attrs) > 0 {
		n.Attrs = append(make([]Attr, 0, len(src.Attrs)), src.Attrs...)
	}
	if deep {
		for _, child := range src.Children {
			c := new(Node)
			c.CopyFrom(child, true)
			n.AddChild(c)
		}
	}
}
