package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML builds a Document from an HTML fragment or full page. Elements
// that have no block-layout meaning (head, script, style) are skipped; inline
// formatting elements become runs.
func ParseHTML(r io.Reader) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	root := &Node{Kind: KindOther}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		convertHTML(c, root)
	}
	return NewDocument(root), nil
}

func convertHTML(n *html.Node, parent *Node) {
	switch n.Type {
	case html.TextNode:
		text := collapseSpace(n.Data)
		if strings.TrimSpace(text) == "" {
			return
		}
		parent.Children = append(parent.Children, &Node{Kind: KindText, Text: text})
		return
	case html.ElementNode:
		// handled below
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			convertHTML(c, parent)
		}
		return
	}

	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style:
		return
	case atom.Html, atom.Body:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			convertHTML(c, parent)
		}
		return
	}

	node := &Node{Kind: htmlKind(n), Attrs: htmlAttrs(n)}

	// Void markers carry no content.
	if node.Kind == KindHardBreak || node.Kind == KindSectionMarker {
		parent.Children = append(parent.Children, node)
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		convertHTML(c, node)
	}

	// An inline wrapper with nothing inside contributes nothing.
	if node.Kind == KindRun && len(node.Children) == 0 {
		return
	}
	parent.Children = append(parent.Children, node)
}

func htmlKind(n *html.Node) Kind {
	if hasHTMLAttr(n, "data-page-break") {
		return KindHardBreak
	}
	if hasHTMLAttr(n, "data-section-marker") {
		return KindSectionMarker
	}
	if hasHTMLAttr(n, "data-field-id") {
		return KindField
	}
	switch n.DataAtom {
	case atom.P:
		return KindParagraph
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return KindHeading
	case atom.Ul, atom.Ol:
		return KindList
	case atom.Li:
		return KindListItem
	case atom.Table:
		return KindTable
	case atom.Tr:
		return KindTableRow
	case atom.Td, atom.Th:
		return KindTableCell
	case atom.Thead, atom.Tbody, atom.Tfoot:
		// Row groups are transparent for layout; rows hang off the table.
		return KindOther
	case atom.Hr:
		return KindHardBreak
	case atom.Span, atom.B, atom.Strong, atom.I, atom.Em, atom.U, atom.A, atom.Code:
		return KindRun
	}
	return KindOther
}

func htmlAttrs(n *html.Node) map[string]string {
	var attrs map[string]string
	set := func(key, val string) {
		if attrs == nil {
			attrs = make(map[string]string)
		}
		attrs[key] = val
	}
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "data-page-break":
			set(AttrHardBreak, a.Val)
		case "data-field-id":
			set(AttrFieldID, a.Val)
		case "data-field-type":
			set(AttrFieldType, a.Val)
		case "data-alias":
			set(AttrAlias, a.Val)
		case "data-style-id":
			set(AttrStyleID, a.Val)
		case "data-format":
			set(AttrFormat, a.Val)
		}
	}
	return attrs
}

func hasHTMLAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return true
		}
	}
	return false
}

// collapseSpace folds runs of whitespace into single spaces without dropping
// a significant leading or trailing space, matching how a rendered DOM would
// present the text.
func collapseSpace(s string) string {
	var sb strings.Builder
	lastWasSpace := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if !lastWasSpace {
				sb.WriteByte(' ')
			}
			lastWasSpace = true
		default:
			sb.WriteRune(r)
			lastWasSpace = false
		}
	}
	return sb.String()
}
