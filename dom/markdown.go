package dom

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseMarkdown builds a Document from Markdown source using goldmark.
// Thematic breaks become forced page breaks, matching the editor's export
// convention.
func ParseMarkdown(source []byte) (*Document, error) {
	md := goldmark.New()
	tree := md.Parser().Parse(text.NewReader(source))

	root := &Node{Kind: KindOther}
	for child := tree.FirstChild(); child != nil; child = child.NextSibling() {
		if n := convertMarkdown(child, source); n != nil {
			root.Children = append(root.Children, n)
		}
	}
	return NewDocument(root), nil
}

func convertMarkdown(n ast.Node, source []byte) *Node {
	switch v := n.(type) {
	case *ast.Heading:
		return textBlock(KindHeading, string(v.Text(source)))
	case *ast.Paragraph:
		return textBlock(KindParagraph, string(v.Text(source)))
	case *ast.TextBlock:
		return textBlock(KindParagraph, string(v.Text(source)))
	case *ast.ThematicBreak:
		return &Node{Kind: KindHardBreak}
	case *ast.List:
		list := &Node{Kind: KindList}
		for c := v.FirstChild(); c != nil; c = c.NextSibling() {
			if item := convertMarkdown(c, source); item != nil {
				list.Children = append(list.Children, item)
			}
		}
		return list
	case *ast.ListItem:
		item := &Node{Kind: KindListItem}
		for c := v.FirstChild(); c != nil; c = c.NextSibling() {
			if child := convertMarkdown(c, source); child != nil {
				item.Children = append(item.Children, child)
			}
		}
		return item
	case *ast.Blockquote, *ast.FencedCodeBlock, *ast.CodeBlock:
		return textBlock(KindOther, string(n.Text(source)))
	}
	return nil
}

func textBlock(kind Kind, content string) *Node {
	n := &Node{Kind: kind}
	if content != "" {
		n.Children = append(n.Children, &Node{Kind: KindText, Text: content})
	}
	return n
}
