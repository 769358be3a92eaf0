package convert

import (
	"github.com/goliatone/go-adf/internal/token"
	"github.com/goliatone/go-adf/pkg/document"
)

// Inlines converts inline tokens in order and concatenates their leaves.
func Inlines(tokens []token.Inline) []document.Inline {
	leaves := make([]document.Inline, 0, len(tokens))
	for _, tok := range tokens {
		leaves = append(leaves, Inline(tok)...)
	}
	return leaves
}

// Inline converts one inline token into zero or more leaves.
//
// A token with children is converted recursively and its own formatting is
// appended to the marks of every text leaf underneath, so the outermost
// token's mark ends up last. Wrapping kinds without formatting pass their
// children through untouched.
func Inline(tok token.Inline) []document.Inline {
	if tok == nil {
		return nil
	}

	if children := tok.Children(); len(children) > 0 {
		leaves := Inlines(children)
		mark := wrapperMark(tok)
		if mark == nil {
			return leaves
		}
		for i, leaf := range leaves {
			if text, ok := leaf.(document.Text); ok {
				leaves[i] = text.WithMark(mark)
			}
		}
		return leaves
	}

	switch t := tok.(type) {
	case token.Text:
		return leaf(t.Text)
	case token.Strong:
		return leaf(t.Text, document.Strong{})
	case token.Em:
		return leaf(t.Text, document.Em{})
	case token.Del:
		return leaf(t.Text, document.Strike{})
	case token.Codespan:
		return leaf(t.Text, document.Code{})
	case token.Link:
		return leaf(t.Text, document.Link{Href: t.Href, Title: t.Title})
	case token.UnknownInline:
		if t.Text == "" {
			return nil
		}
		return leaf(t.Text)
	default:
		return nil
	}
}

func wrapperMark(tok token.Inline) document.Mark {
	switch tok.(type) {
	case token.Strong:
		return document.Strong{}
	case token.Em:
		return document.Em{}
	case token.Del:
		return document.Strike{}
	default:
		return nil
	}
}

func leaf(text string, marks ...document.Mark) []document.Inline {
	node := document.Text{Text: text}
	if len(marks) > 0 {
		node.Marks = marks
	}
	return []document.Inline{node}
}
