package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-adf/internal/token"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

// Lexer turns Markdown source into block tokens.
type Lexer interface {
	Lex(source []byte) ([]token.Block, error)
}

// GoldmarkLexer implements Lexer on top of the goldmark parser. The engine is
// built once and is safe to share across goroutines.
type GoldmarkLexer struct {
	engine goldmark.Markdown
}

var _ Lexer = (*GoldmarkLexer)(nil)

// NewGoldmarkLexer constructs a lexer with the requested extensions, falling
// back to GFM with linkify and task lists when none are named.
func NewGoldmarkLexer(opts interfaces.ParseOptions) *GoldmarkLexer {
	return &GoldmarkLexer{engine: newGoldmarkEngine(opts)}
}

// Lex parses source and adapts the goldmark AST into tokens.
func (l *GoldmarkLexer) Lex(source []byte) ([]token.Block, error) {
	if l == nil || l.engine == nil {
		return nil, fmt.Errorf("markdown lex: lexer not configured")
	}
	root := l.engine.Parser().Parse(text.NewReader(source))
	if root == nil {
		return nil, fmt.Errorf("markdown lex: parser returned no document")
	}
	w := walker{source: source}
	return w.blocks(root), nil
}

func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	engineOptions := []goldmark.Option{}
	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}
	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
}

// KnownExtension reports whether name maps to a goldmark extension.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}

// walker adapts goldmark nodes to tokens. It holds the source because
// goldmark segments are offsets into it.
type walker struct {
	source []byte
}

func (w walker) blocks(parent ast.Node) []token.Block {
	var out []token.Block
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if tok := w.block(child); tok != nil {
			out = append(out, tok)
		}
	}
	return out
}

func (w walker) block(node ast.Node) token.Block {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return token.Paragraph{Text: w.plain(n), Tokens: w.inlines(n)}
	case *ast.Heading:
		return token.Heading{Depth: n.Level, Text: w.plain(n), Tokens: w.inlines(n)}
	case *ast.Blockquote:
		return token.Blockquote{Tokens: w.blocks(n)}
	case *ast.List:
		list := token.List{Ordered: n.IsOrdered(), Start: n.Start}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			list.Items = append(list.Items, token.ListItem{Tokens: w.blocks(child)})
		}
		return list
	case *ast.ListItem:
		return token.ListItem{Tokens: w.blocks(n)}
	case *ast.FencedCodeBlock:
		return token.Code{Lang: string(n.Language(w.source)), Text: w.codeLines(n)}
	case *ast.CodeBlock:
		return token.Code{Text: w.codeLines(n)}
	case *ast.ThematicBreak:
		return token.HR{}
	case *east.Table:
		return w.table(n)
	case *ast.HTMLBlock:
		raw := w.lines(n)
		if n.HasClosure() {
			raw += string(n.ClosureLine.Value(w.source))
		}
		return token.UnknownBlock{Name: "html", Text: strings.TrimRight(raw, "\n")}
	default:
		return token.UnknownBlock{Name: strings.ToLower(node.Kind().String()), Text: w.plain(node)}
	}
}

func (w walker) table(n *east.Table) token.Table {
	tbl := token.Table{Header: []string{}, Cells: [][]string{}}
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		cells := []string{}
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(w.plain(cell)))
		}
		if _, ok := row.(*east.TableHeader); ok {
			tbl.Header = cells
			continue
		}
		tbl.Cells = append(tbl.Cells, cells)
	}
	return tbl
}

// inlines converts the inline children of node, merging adjacent plain text
// so references split across goldmark segments stay in one token.
func (w walker) inlines(node ast.Node) []token.Inline {
	var out []token.Inline
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		tok := w.inline(child)
		if tok == nil {
			continue
		}
		if next, ok := tok.(token.Text); ok && len(next.Tokens) == 0 {
			if next.Text == "" {
				continue
			}
			if len(out) > 0 {
				if prev, ok := out[len(out)-1].(token.Text); ok && len(prev.Tokens) == 0 {
					out[len(out)-1] = token.Text{Text: prev.Text + next.Text}
					continue
				}
			}
		}
		out = append(out, tok)
	}
	return out
}

func (w walker) inline(node ast.Node) token.Inline {
	switch n := node.(type) {
	case *ast.Text:
		return token.Text{Text: w.textValue(n)}
	case *ast.String:
		return token.Text{Text: string(n.Value)}
	case *ast.Emphasis:
		if n.Level >= 2 {
			return token.Strong{Text: w.plain(n), Tokens: w.inlines(n)}
		}
		return token.Em{Text: w.plain(n), Tokens: w.inlines(n)}
	case *east.Strikethrough:
		return token.Del{Text: w.plain(n), Tokens: w.inlines(n)}
	case *ast.CodeSpan:
		return token.Codespan{Text: w.codeSpan(n)}
	case *ast.Link:
		return token.Link{
			Href:  string(n.Destination),
			Title: string(n.Title),
			Text:  w.plain(n),
		}
	case *ast.AutoLink:
		label := string(n.Label(w.source))
		href := string(n.URL(w.source))
		if href == "" {
			href = label
		}
		return token.Link{Href: href, Text: label}
	case *east.TaskCheckBox:
		if n.IsChecked {
			return token.Text{Text: "[x]"}
		}
		return token.Text{Text: "[ ]"}
	case *ast.Image:
		return token.UnknownInline{Name: "image", Text: w.plain(n)}
	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			segment := n.Segments.At(i)
			buf.Write(segment.Value(w.source))
		}
		return token.UnknownInline{Name: "html", Text: buf.String()}
	default:
		return token.UnknownInline{Name: strings.ToLower(node.Kind().String()), Text: w.plain(node)}
	}
}

func (w walker) textValue(n *ast.Text) string {
	value := n.Segment.Value(w.source)
	if !n.IsRaw() {
		value = util.UnescapePunctuations(value)
		value = util.ResolveNumericReferences(value)
		value = util.ResolveEntityNames(value)
	}
	if n.SoftLineBreak() || n.HardLineBreak() {
		return string(value) + "\n"
	}
	return string(value)
}

func (w walker) codeSpan(n *ast.CodeSpan) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(w.source))
		case *ast.String:
			buf.Write(c.Value)
		}
	}
	return strings.ReplaceAll(buf.String(), "\n", " ")
}

// plain flattens the inline text below node, dropping formatting.
func (w walker) plain(node ast.Node) string {
	var buf strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			buf.WriteString(w.textValue(c))
		case *ast.String:
			buf.Write(c.Value)
		case *ast.CodeSpan:
			buf.WriteString(w.codeSpan(c))
		case *ast.AutoLink:
			buf.Write(c.Label(w.source))
		default:
			buf.WriteString(w.plain(c))
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (w walker) lines(node ast.Node) string {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(w.source))
	}
	return buf.String()
}

func (w walker) codeLines(node ast.Node) string {
	return strings.TrimRight(w.lines(node), "\n")
}
