package sxmlc

// Document holds a parsed tree: the auxiliary nodes that precede the logical
// root (prolog, comments, doctype) and at most one root element.
type Document struct {
	PreRoot []*Node
	Root    *Node
}

// NewDocument returns an empty document.
func NewDocument() *Document { return &Document{} }

// AddPreRoot appends an auxiliary node to the pre-root list.
func (d *Document) AddPreRoot(n *Node) {
	d.PreRoot = append(d.PreRoot, n)
}

// SetRoot installs the root element. A nil root detaches the current one.
func (d *Document) SetRoot(n *Node) { d.Root = n }

// Free resets the document to its empty state, releasing every node it owns
// to the garbage collector. The document is unusable until repopulated.
func (d *Document) Free() {
	d.PreRoot = nil
	d.Root = nil
}
