// Package document models the Atlassian Document Format (ADF) tree produced by
// the Markdown converter. Every node kind is its own Go type; the Block and
// Inline interfaces close the set so consumers can switch exhaustively.
package document

// Version is the only document version the converter emits.
const Version = 1

// DefaultUserType is the userType attribute stamped on mention nodes.
const DefaultUserType = "APP"

// DefaultCodeLanguage is used when a code block declares no language.
const DefaultCodeLanguage = "text"

// NodeType is the literal "type" value written for a node.
type NodeType string

const (
	TypeDoc         NodeType = "doc"
	TypeParagraph   NodeType = "paragraph"
	TypeHeading     NodeType = "heading"
	TypeBlockquote  NodeType = "blockquote"
	TypeBulletList  NodeType = "bulletList"
	TypeOrderedList NodeType = "orderedList"
	TypeListItem    NodeType = "listItem"
	TypeCodeBlock   NodeType = "codeBlock"
	TypeTable       NodeType = "table"
	TypeTableRow    NodeType = "tableRow"
	TypeTableHeader NodeType = "tableHeader"
	TypeTableCell   NodeType = "tableCell"
	TypeRule        NodeType = "rule"
	TypeText        NodeType = "text"
	TypeMention     NodeType = "mention"
)

// Node is implemented by every value that can appear in a document tree.
type Node interface {
	NodeType() NodeType
}

// Block is a node allowed in the content of doc, blockquote, listItem and
// table cells.
type Block interface {
	Node
	isBlock()
}

// Inline is a leaf allowed in paragraph and heading content.
type Inline interface {
	Node
	isInline()
}

// Doc is the document root. Content is never nil once built through New.
type Doc struct {
	Content []Block
}

// New returns a root document holding the supplied blocks.
func New(content ...Block) *Doc {
	if content == nil {
		content = []Block{}
	}
	return &Doc{Content: content}
}

// Plain wraps text verbatim in a single unmarked paragraph.
func Plain(text string) *Doc {
	return New(Paragraph{Content: []Inline{Text{Text: text}}})
}

func (Doc) NodeType() NodeType { return TypeDoc }

// Paragraph holds inline content.
type Paragraph struct {
	Content []Inline
}

func (Paragraph) NodeType() NodeType { return TypeParagraph }
func (Paragraph) isBlock()           {}

// Heading holds inline content at Level 1 through 6.
type Heading struct {
	Level   int
	Content []Inline
}

func (Heading) NodeType() NodeType { return TypeHeading }
func (Heading) isBlock()           {}

// Blockquote wraps nested blocks.
type Blockquote struct {
	Content []Block
}

func (Blockquote) NodeType() NodeType { return TypeBlockquote }
func (Blockquote) isBlock()           {}

// List renders as bulletList or orderedList depending on Ordered.
type List struct {
	Ordered bool
	Content []ListItem
}

func (l List) NodeType() NodeType {
	if l.Ordered {
		return TypeOrderedList
	}
	return TypeBulletList
}
func (List) isBlock() {}

// ListItem wraps nested blocks, including further lists. It satisfies Block
// so a stray item token still converts, although lists are its normal parent.
type ListItem struct {
	Content []Block
}

func (ListItem) NodeType() NodeType { return TypeListItem }
func (ListItem) isBlock()           {}

// CodeBlock carries literal code. Its content is always exactly one unmarked
// text leaf holding Text; marks and mentions are never applied to it.
type CodeBlock struct {
	Language string
	Text     string
}

func (CodeBlock) NodeType() NodeType { return TypeCodeBlock }
func (CodeBlock) isBlock()           {}

// Table is a header row followed by data rows.
type Table struct {
	Content []TableRow
}

func (Table) NodeType() NodeType { return TypeTable }
func (Table) isBlock()           {}

// TableRow is an ordered sequence of cells.
type TableRow struct {
	Content []TableCell
}

func (TableRow) NodeType() NodeType { return TypeTableRow }

// TableCell renders as tableHeader when Header is set, tableCell otherwise.
type TableCell struct {
	Header  bool
	Content []Block
}

func (c TableCell) NodeType() NodeType {
	if c.Header {
		return TypeTableHeader
	}
	return TypeTableCell
}

// Rule is a horizontal rule.
type Rule struct{}

func (Rule) NodeType() NodeType { return TypeRule }
func (Rule) isBlock()           {}

// Text is a string leaf with an ordered mark list.
type Text struct {
	Text  string
	Marks []Mark
}

func (Text) NodeType() NodeType { return TypeText }
func (Text) isInline()          {}

// HasMark reports whether a mark of the given type is present.
func (t Text) HasMark(kind MarkType) bool {
	for _, mark := range t.Marks {
		if mark != nil && mark.MarkType() == kind {
			return true
		}
	}
	return false
}

// WithMark returns a copy of t with mark appended after the existing marks.
// The receiver's mark slice is never shared with the result.
func (t Text) WithMark(mark Mark) Text {
	marks := make([]Mark, 0, len(t.Marks)+1)
	marks = append(marks, t.Marks...)
	marks = append(marks, mark)
	return Text{Text: t.Text, Marks: marks}
}

// Mention references an entity by ID. Text is the display value, already
// prefixed with "@".
type Mention struct {
	ID       string
	Text     string
	UserType string
}

func (Mention) NodeType() NodeType { return TypeMention }
func (Mention) isInline()          {}
