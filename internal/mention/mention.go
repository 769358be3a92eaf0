// Package mention splices @[id:name] references into converted documents.
// It runs as a second pass over the finished tree so code blocks and inline
// code keep their literal text.
package mention

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-adf/pkg/document"
)

// Pattern matches a mention reference. The id is a run of lowercase letters,
// digits and hyphens, which covers hex account ids. The display name is any
// run of characters other than "]". The Markdown detector uses the same
// expression so both agree on what a mention is.
var Pattern = regexp.MustCompile(`@\[([a-z0-9-]+):([^\]]+)\]`)

// Reference is one match of Pattern. Start and End are byte offsets into the
// scanned text; text[Start:End] is the literal matched span.
type Reference struct {
	ID    string
	Name  string
	Start int
	End   int
}

// Find returns every non-overlapping reference in text, left to right.
func Find(text string) []Reference {
	if !strings.Contains(text, "@[") {
		return nil
	}
	matches := Pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]Reference, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, Reference{
			ID:    text[m[2]:m[3]],
			Name:  text[m[4]:m[5]],
			Start: m[0],
			End:   m[1],
		})
	}
	return refs
}

// Contains reports whether text holds at least one reference.
func Contains(text string) bool {
	return strings.Contains(text, "@[") && Pattern.MatchString(text)
}

// Processor rewrites text leaves into text and mention siblings.
type Processor struct {
	// UserType is stamped on every mention. Empty means document.DefaultUserType.
	UserType string
}

// Process applies the default processor to doc.
func Process(doc *document.Doc) *document.Doc {
	return Processor{}.Process(doc)
}

// Process returns a copy of doc with mentions spliced in. Text leaves without
// references are carried over unchanged.
func (p Processor) Process(doc *document.Doc) *document.Doc {
	if doc == nil {
		return document.New()
	}
	return document.New(p.blocks(doc.Content)...)
}

func (p Processor) blocks(nodes []document.Block) []document.Block {
	out := make([]document.Block, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, p.block(node))
	}
	return out
}

func (p Processor) block(node document.Block) document.Block {
	switch n := node.(type) {
	case document.CodeBlock:
		return n
	case document.Paragraph:
		return document.Paragraph{Content: p.inlines(n.Content)}
	case document.Heading:
		return document.Heading{Level: n.Level, Content: p.inlines(n.Content)}
	case document.Blockquote:
		return document.Blockquote{Content: p.blocks(n.Content)}
	case document.List:
		return document.List{Ordered: n.Ordered, Content: p.items(n.Content)}
	case document.ListItem:
		return p.item(n)
	case document.Table:
		rows := make([]document.TableRow, 0, len(n.Content))
		for _, row := range n.Content {
			cells := make([]document.TableCell, 0, len(row.Content))
			for _, cell := range row.Content {
				cells = append(cells, document.TableCell{Header: cell.Header, Content: p.blocks(cell.Content)})
			}
			rows = append(rows, document.TableRow{Content: cells})
		}
		return document.Table{Content: rows}
	default:
		return node
	}
}

func (p Processor) items(items []document.ListItem) []document.ListItem {
	out := make([]document.ListItem, 0, len(items))
	for _, item := range items {
		out = append(out, p.item(item))
	}
	return out
}

func (p Processor) item(item document.ListItem) document.ListItem {
	return document.ListItem{Content: p.blocks(item.Content)}
}

// inlines flattens split leaves into the parent content in place.
func (p Processor) inlines(leaves []document.Inline) []document.Inline {
	out := make([]document.Inline, 0, len(leaves))
	for _, leaf := range leaves {
		text, ok := leaf.(document.Text)
		if !ok {
			out = append(out, leaf)
			continue
		}
		out = append(out, p.Split(text)...)
	}
	return out
}

// Split breaks a text leaf around its references. Gap text keeps the leaf's
// marks and empty gaps are omitted. A code-marked leaf, or one without
// references, comes back as the single original leaf.
func (p Processor) Split(leaf document.Text) []document.Inline {
	if leaf.HasMark(document.MarkCode) {
		return []document.Inline{leaf}
	}
	refs := Find(leaf.Text)
	if len(refs) == 0 {
		return []document.Inline{leaf}
	}

	userType := p.UserType
	if userType == "" {
		userType = document.DefaultUserType
	}

	out := make([]document.Inline, 0, len(refs)*2+1)
	last := 0
	for _, ref := range refs {
		if ref.Start > last {
			out = append(out, gap(leaf, leaf.Text[last:ref.Start]))
		}
		out = append(out, document.Mention{
			ID:       ref.ID,
			Text:     "@" + ref.Name,
			UserType: userType,
		})
		last = ref.End
	}
	if last < len(leaf.Text) {
		out = append(out, gap(leaf, leaf.Text[last:]))
	}
	return out
}

func gap(leaf document.Text, text string) document.Text {
	node := document.Text{Text: text}
	if len(leaf.Marks) > 0 {
		node.Marks = append([]document.Mark(nil), leaf.Marks...)
	}
	return node
}

// Count returns the number of mention nodes in doc.
func Count(doc *document.Doc) int {
	count := 0
	document.Walk(doc, func(node document.Node) bool {
		if _, ok := node.(document.Mention); ok {
			count++
		}
		return true
	})
	return count
}

// Literal renders a leaf back to source text, using the reference syntax for
// mentions. Concatenating Literal over the output of Split reproduces the
// original leaf text.
func Literal(leaf document.Inline) string {
	switch n := leaf.(type) {
	case document.Text:
		return n.Text
	case document.Mention:
		return "@[" + n.ID + ":" + strings.TrimPrefix(n.Text, "@") + "]"
	default:
		return ""
	}
}
