// Package dom models the editable document as a tree of typed nodes with
// stable, ProseMirror-style positions. The pagination, tab and field engines
// consume this tree through read-only accessors; they never mutate it.
package dom

import (
	"strings"
	"unicode/utf8"
)

// Kind identifies the structural role of a node. It is resolved once when the
// tree is built, so consumers can switch on it instead of re-inspecting tag
// names at every step.
type Kind int

const (
	KindOther Kind = iota
	KindParagraph
	KindHeading
	KindList
	KindListItem
	KindTable
	KindTableRow
	KindTableCell
	KindRun
	KindText
	KindHardBreak
	KindSectionMarker
	KindField
)

var kindNames = [...]string{
	"other", "paragraph", "heading", "list", "listItem",
	"table", "tableRow", "tableCell", "run", "text",
	"hardBreak", "sectionMarker", "field",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "other"
}

// IsBlock reports whether the kind participates in vertical block flow.
func (k Kind) IsBlock() bool {
	switch k {
	case KindParagraph, KindHeading, KindList, KindListItem,
		KindTable, KindTableRow, KindTableCell, KindOther:
		return true
	}
	return false
}

// IsInlineAtom reports whether the kind is an inline leaf occupying exactly
// one document position.
func (k Kind) IsInlineAtom() bool {
	switch k {
	case KindHardBreak, KindSectionMarker, KindField:
		return true
	}
	return false
}

// Well-known attribute keys carried on nodes.
const (
	AttrHardBreak = "pageBreak" // forced page break marker
	AttrFieldID   = "fieldId"
	AttrFieldType = "fieldType"
	AttrAlias     = "alias"
	AttrStyleID   = "styleId"
	AttrFormat    = "format" // display-value script for fields
)

// Node is a single document node. Text nodes carry Text; all other nodes
// carry Children. Attrs is nil for most nodes.
type Node struct {
	Kind     Kind
	Text     string
	Attrs    map[string]string
	Children []*Node

	parent *Node
	index  int // position among siblings
	pos    int
	size   int
}

// Pos returns the document position at which the node starts.
func (n *Node) Pos() int { return n.pos }

// NodeSize returns the number of positions the node spans: rune count for
// text, 1 for inline atoms, content+2 for anything with open/close tokens.
func (n *Node) NodeSize() int { return n.size }

// End returns the position just past the node.
func (n *Node) End() int { return n.pos + n.size }

// Parent returns the containing node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// NextSibling returns the node after n in its parent, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil || n.index+1 >= len(n.parent.Children) {
		return nil
	}
	return n.parent.Children[n.index+1]
}

// PrevSibling returns the node before n in its parent, or nil.
func (n *Node) PrevSibling() *Node {
	if n.parent == nil || n.index == 0 {
		return nil
	}
	return n.parent.Children[n.index-1]
}

// Attr returns the named attribute and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

// HasAttr reports attribute presence regardless of value.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attrs[key]
	return ok
}

// IsHardBreak reports whether the node is a forced page break: either a
// dedicated hardBreak node or any node carrying the marker attribute.
func (n *Node) IsHardBreak() bool {
	return n.Kind == KindHardBreak || n.HasAttr(AttrHardBreak)
}

// TextContent concatenates every text descendant in document order.
func (n *Node) TextContent() string {
	var sb strings.Builder
	Walk(n, func(d *Node) bool {
		if d.Kind == KindText {
			sb.WriteString(d.Text)
		}
		return true
	})
	return sb.String()
}

// maxWalkNodes bounds the explicit traversal worklist so a cyclic or
// absurdly deep tree cannot wedge a pagination run.
const maxWalkNodes = 1 << 20

// Walk visits n and its descendants depth-first using an explicit stack.
// Returning false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	visited := 0
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visited++
		if visited > maxWalkNodes {
			return
		}
		if !fn(cur) {
			continue
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Document is an immutable node tree with positions assigned.
type Document struct {
	root *Node
}

// NewDocument wraps root, wiring parent links and assigning positions.
// A nil root yields an empty document.
func NewDocument(root *Node) *Document {
	if root == nil {
		root = &Node{Kind: KindOther}
	}
	d := &Document{root: root}
	d.reindex()
	return d
}

// Root returns the document's root node.
func (d *Document) Root() *Node { return d.root }

// Blocks returns the top-level block children, the units the pagination
// driver walks.
func (d *Document) Blocks() []*Node { return d.root.Children }

// Size returns the total number of positions in the document.
func (d *Document) Size() int {
	if len(d.root.Children) == 0 {
		return 0
	}
	last := d.root.Children[len(d.root.Children)-1]
	return last.End()
}

// NodeAt returns the deepest node whose span contains pos, or nil when pos is
// outside the document.
func (d *Document) NodeAt(pos int) *Node {
	if pos < 0 || pos > d.Size() {
		return nil
	}
	cur := d.root
	for {
		var next *Node
		for _, c := range cur.Children {
			if pos >= c.pos && pos < c.End() {
				next = c
				break
			}
		}
		if next == nil {
			if cur == d.root {
				return nil
			}
			return cur
		}
		cur = next
	}
}

// Fields returns every field annotation node in document order.
func (d *Document) Fields() []*Node {
	var out []*Node
	Walk(d.root, func(n *Node) bool {
		if n.Kind == KindField {
			out = append(out, n)
		}
		return true
	})
	return out
}

// reindex wires parent/index links and assigns positions. The root is not
// itself addressable; its content starts at position 0.
func (d *Document) reindex() {
	cur := 0
	for i, c := range d.root.Children {
		c.parent = d.root
		c.index = i
		cur = assignPositions(c, cur)
	}
	d.root.pos = 0
	d.root.size = cur
}

func assignPositions(n *Node, pos int) int {
	n.pos = pos
	switch {
	case n.Kind == KindText:
		n.size = utf8.RuneCountInString(n.Text)
	case len(n.Children) == 0 && n.Kind.IsInlineAtom():
		n.size = 1
	default:
		cur := pos + 1
		for i, c := range n.Children {
			c.parent = n
			c.index = i
			cur = assignPositions(c, cur)
		}
		n.size = cur + 1 - pos
	}
	return pos + n.size
}
