// Package token defines the lexer output consumed by the tree converter. Block
// and inline tokens are closed sum types: each variant carries only the fields
// that belong to its kind.
package token

// Kind names a token variant. Values match the conventional Markdown lexer
// vocabulary so log lines stay familiar.
type Kind string

const (
	KindParagraph  Kind = "paragraph"
	KindHeading    Kind = "heading"
	KindBlockquote Kind = "blockquote"
	KindList       Kind = "list"
	KindListItem   Kind = "list_item"
	KindCode       Kind = "code"
	KindTable      Kind = "table"
	KindHR         Kind = "hr"
	KindSpace      Kind = "space"

	KindText     Kind = "text"
	KindStrong   Kind = "strong"
	KindEm       Kind = "em"
	KindDel      Kind = "del"
	KindCodespan Kind = "codespan"
	KindLink     Kind = "link"
)

// Block is a structural token.
type Block interface {
	Kind() Kind
	isBlock()
}

// Inline is a text-level token. Children returns nested inline tokens; a
// token without children is a leaf.
type Inline interface {
	Kind() Kind
	Children() []Inline
	isInline()
}

// Paragraph carries inline Tokens, or only flat Text when the lexer did not
// tokenize its content.
type Paragraph struct {
	Text   string
	Tokens []Inline
}

func (Paragraph) Kind() Kind { return KindParagraph }
func (Paragraph) isBlock()   {}

// Heading is a paragraph with a Depth of 1 through 6. Zero means unknown.
type Heading struct {
	Depth  int
	Text   string
	Tokens []Inline
}

func (Heading) Kind() Kind { return KindHeading }
func (Heading) isBlock()   {}

type Blockquote struct {
	Tokens []Block
}

func (Blockquote) Kind() Kind { return KindBlockquote }
func (Blockquote) isBlock()   {}

type List struct {
	Ordered bool
	Start   int
	Items   []ListItem
}

func (List) Kind() Kind { return KindList }
func (List) isBlock()   {}

// ListItem holds block tokens; items may nest paragraphs, lists and code.
type ListItem struct {
	Tokens []Block
}

func (ListItem) Kind() Kind { return KindListItem }
func (ListItem) isBlock()   {}

// Code is a fenced or indented code block. Lang is empty when undeclared.
type Code struct {
	Lang string
	Text string
}

func (Code) Kind() Kind { return KindCode }
func (Code) isBlock()   {}

// Table holds header cell text and one slice per data row. A nil Header or
// Cells marks incomplete table data.
type Table struct {
	Header []string
	Cells  [][]string
}

func (Table) Kind() Kind { return KindTable }
func (Table) isBlock()   {}

type HR struct{}

func (HR) Kind() Kind { return KindHR }
func (HR) isBlock()   {}

// Space is inter-block whitespace. It never produces output.
type Space struct{}

func (Space) Kind() Kind { return KindSpace }
func (Space) isBlock()   {}

// UnknownBlock stands in for lexer block kinds the converter does not map,
// such as raw HTML. Text is the literal content, possibly empty.
type UnknownBlock struct {
	Name string
	Text string
}

func (u UnknownBlock) Kind() Kind { return Kind(u.Name) }
func (UnknownBlock) isBlock()     {}

type Text struct {
	Text   string
	Tokens []Inline
}

func (Text) Kind() Kind           { return KindText }
func (t Text) Children() []Inline { return t.Tokens }
func (Text) isInline()            {}

type Strong struct {
	Text   string
	Tokens []Inline
}

func (Strong) Kind() Kind           { return KindStrong }
func (s Strong) Children() []Inline { return s.Tokens }
func (Strong) isInline()            {}

type Em struct {
	Text   string
	Tokens []Inline
}

func (Em) Kind() Kind           { return KindEm }
func (e Em) Children() []Inline { return e.Tokens }
func (Em) isInline()            {}

// Del is strikethrough text.
type Del struct {
	Text   string
	Tokens []Inline
}

func (Del) Kind() Kind           { return KindDel }
func (d Del) Children() []Inline { return d.Tokens }
func (Del) isInline()            {}

// Codespan is inline code. It never has children.
type Codespan struct {
	Text string
}

func (Codespan) Kind() Kind         { return KindCodespan }
func (Codespan) Children() []Inline { return nil }
func (Codespan) isInline()          {}

type Link struct {
	Href   string
	Title  string
	Text   string
	Tokens []Inline
}

func (Link) Kind() Kind           { return KindLink }
func (l Link) Children() []Inline { return l.Tokens }
func (Link) isInline()            {}

// UnknownInline stands in for inline kinds without a mapping, such as images
// or raw HTML.
type UnknownInline struct {
	Name   string
	Text   string
	Tokens []Inline
}

func (u UnknownInline) Kind() Kind         { return Kind(u.Name) }
func (u UnknownInline) Children() []Inline { return u.Tokens }
func (UnknownInline) isInline()            {}
