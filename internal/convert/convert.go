// Package convert maps lexer tokens onto document nodes. Every function is
// pure and total: missing optional fields fall back to defaults and tokens
// without a mapping are dropped.
package convert

import (
	"github.com/goliatone/go-adf/internal/token"
	"github.com/goliatone/go-adf/pkg/document"
)

// Blocks converts tokens in order, skipping those that produce no node.
func Blocks(tokens []token.Block) []document.Block {
	nodes := make([]document.Block, 0, len(tokens))
	for _, tok := range tokens {
		if node, ok := Block(tok); ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// Block converts a single block token. The boolean is false for space tokens
// and for unrecognised tokens without text.
func Block(tok token.Block) (document.Block, bool) {
	switch t := tok.(type) {
	case token.Paragraph:
		return document.Paragraph{Content: inlineContent(t.Tokens, t.Text)}, true
	case token.Heading:
		return heading(t), true
	case token.Blockquote:
		return document.Blockquote{Content: Blocks(t.Tokens)}, true
	case token.List:
		return list(t), true
	case token.ListItem:
		return listItem(t), true
	case token.Code:
		return codeBlock(t), true
	case token.Table:
		return table(t), true
	case token.HR:
		return document.Rule{}, true
	case token.Space:
		return nil, false
	case token.UnknownBlock:
		if t.Text == "" {
			return nil, false
		}
		return document.Paragraph{Content: []document.Inline{document.Text{Text: t.Text}}}, true
	default:
		return nil, false
	}
}

func heading(t token.Heading) document.Heading {
	level := t.Depth
	if level < 1 {
		level = 1
	}
	return document.Heading{
		Level:   level,
		Content: inlineContent(t.Tokens, t.Text),
	}
}

func list(t token.List) document.List {
	items := make([]document.ListItem, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, listItem(item))
	}
	return document.List{Ordered: t.Ordered, Content: items}
}

func listItem(t token.ListItem) document.ListItem {
	return document.ListItem{Content: Blocks(t.Tokens)}
}

func codeBlock(t token.Code) document.CodeBlock {
	language := t.Lang
	if language == "" {
		language = document.DefaultCodeLanguage
	}
	return document.CodeBlock{Language: language, Text: t.Text}
}

func table(t token.Table) document.Table {
	if t.Header == nil || t.Cells == nil {
		return document.Table{Content: []document.TableRow{}}
	}

	rows := make([]document.TableRow, 0, len(t.Cells)+1)
	rows = append(rows, tableRow(t.Header, true))
	for _, cells := range t.Cells {
		rows = append(rows, tableRow(cells, false))
	}
	return document.Table{Content: rows}
}

func tableRow(cells []string, header bool) document.TableRow {
	row := document.TableRow{Content: make([]document.TableCell, 0, len(cells))}
	for _, cell := range cells {
		row.Content = append(row.Content, document.TableCell{
			Header: header,
			Content: []document.Block{
				document.Paragraph{Content: []document.Inline{document.Text{Text: cell}}},
			},
		})
	}
	return row
}

// inlineContent prefers tokenized content and falls back to the flat text of
// the block when the lexer produced no inline tokens.
func inlineContent(tokens []token.Inline, text string) []document.Inline {
	if len(tokens) > 0 {
		return Inlines(tokens)
	}
	if text != "" {
		return []document.Inline{document.Text{Text: text}}
	}
	return []document.Inline{}
}
