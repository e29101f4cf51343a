package sxmlc

import (
	"fmt"
	"io"
	"strings"
)

// PrintOptions controls tree serialization. TagSep is written before every
// tag (typically "\n"), ChildSep once per nesting depth after it (typically
// "\t"). When LineWidth > 0, attribute lists wrap once the current column
// passes it; TabWidth is how many columns a tab counts for. Inactive nodes
// and attributes are not printed.
type PrintOptions struct {
	TagSep    string
	ChildSep  string
	LineWidth int
	TabWidth  int
}

// Print serializes the document: pre-root nodes first, then the root tree.
func (d *Document) Print(w io.Writer, opts PrintOptions) error {
	pr := newPrinter(w, opts)
	for _, n := range d.PreRoot {
		pr.node(n, 0)
	}
	if d.Root != nil {
		pr.node(d.Root, 0)
	}
	return pr.err
}

// Print serializes the node and its children.
func (n *Node) Print(w io.Writer, opts PrintOptions) error {
	pr := newPrinter(w, opts)
	pr.node(n, 0)
	return pr.err
}

type printer struct {
	w    io.Writer
	opts PrintOptions
	col  int // characters on the current line
	err  error
}

func newPrinter(w io.Writer, opts PrintOptions) *printer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 1
	}
	return &printer{w: w, opts: opts}
}

func (pr *printer) write(s string) {
	if pr.err != nil {
		return
	}
	_, pr.err = io.WriteString(pr.w, s)
}

// count advances the column accounting over s, resetting at newlines and
// expanding tabs.
func (pr *printer) count(s string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			pr.col = 0
		case '\t':
			pr.col += pr.opts.TabWidth
		default:
			pr.col++
		}
	}
}

// formatting writes the tag separator and depth-many child separators.
func (pr *printer) formatting(depth int) {
	if pr.opts.TagSep != "" {
		pr.write(pr.opts.TagSep)
		pr.count(pr.opts.TagSep)
	}
	if pr.opts.ChildSep != "" {
		for i := 0; i < depth; i++ {
			pr.write(pr.opts.ChildSep)
			pr.count(pr.opts.ChildSep)
		}
	}
}

func (pr *printer) node(n *Node, depth int) {
	if n == nil || !n.Active || pr.err != nil {
		return
	}

	pr.formatting(depth)

	switch {
	case n.Kind == TagComment:
		pr.write("<!--" + n.Tag + "-->")
		return
	case n.Kind == TagInstr:
		pr.write("<?" + n.Tag + "?>")
		return
	case n.Kind == TagCData:
		pr.write("<![CDATA[" + n.Tag + "]]/>")
		return
	case n.Kind == TagDoctype:
		closing := ">"
		if strings.Contains(n.Tag, "[") {
			closing = "]>"
		}
		pr.write("<!DOCTYPE" + n.Tag + closing)
		return
	case n.Kind >= TagUser:
		if t, ok := userTagDelims(n.Kind); ok {
			pr.write(t.start + n.Tag + t.end)
			return
		}
		pr.err = fmt.Errorf("print: no delimiters registered for user tag kind %d", n.Kind)
		return
	}

	pr.write("<" + n.Tag)
	pr.col += len(n.Tag) + 1

	for i := range n.Attrs {
		if !n.Attrs[i].Active {
			continue
		}
		pr.col += len(n.Attrs[i].Name) + len(n.Attrs[i].Value) + 3
		if pr.opts.LineWidth > 0 && pr.col > pr.opts.LineWidth {
			pr.formatting(depth)
			// Extra separator so the wrapped attributes read as nested under
			// the tag itself.
			if pr.opts.ChildSep != "" {
				pr.write(pr.opts.ChildSep)
				pr.count(pr.opts.ChildSep)
			}
		}
		pr.write(" " + n.Attrs[i].Name + `="` + Escape(n.Attrs[i].Value) + `"`)
	}

	if len(n.Children) == 0 && n.Text == "" {
		pr.write("/>")
		return
	}
	pr.write(">")
	if n.Text != "" {
		pr.write(Escape(n.Text))
	}
	pr.col++

	for _, child := range n.Children {
		pr.node(child, depth+1)
	}

	if len(n.Children) > 0 {
		pr.formatting(depth)
	}
	pr.write("</" + n.Tag + ">")
}
