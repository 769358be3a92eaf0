package document

// Walk visits doc depth-first in document order, calling fn for every node
// below the root. Returning false from fn skips the node's children.
func Walk(doc *Doc, fn func(Node) bool) {
	if doc == nil || fn == nil {
		return
	}
	for _, block := range doc.Content {
		walkNode(block, fn)
	}
}

func walkNode(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case Paragraph:
		for _, leaf := range n.Content {
			walkNode(leaf, fn)
		}
	case Heading:
		for _, leaf := range n.Content {
			walkNode(leaf, fn)
		}
	case Blockquote:
		for _, child := range n.Content {
			walkNode(child, fn)
		}
	case List:
		for _, item := range n.Content {
			walkNode(item, fn)
		}
	case ListItem:
		for _, child := range n.Content {
			walkNode(child, fn)
		}
	case Table:
		for _, row := range n.Content {
			walkNode(row, fn)
		}
	case TableRow:
		for _, cell := range n.Content {
			walkNode(cell, fn)
		}
	case TableCell:
		for _, child := range n.Content {
			walkNode(child, fn)
		}
	case CodeBlock:
		fn(Text{Text: n.Text})
	}
}
