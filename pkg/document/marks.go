package document

// MarkType is the literal "type" value written for a mark.
type MarkType string

const (
	MarkStrong MarkType = "strong"
	MarkEm     MarkType = "em"
	MarkStrike MarkType = "strike"
	MarkCode   MarkType = "code"
	MarkLink   MarkType = "link"
)

// Mark is a formatting annotation on a Text leaf.
type Mark interface {
	MarkType() MarkType
}

type Strong struct{}

func (Strong) MarkType() MarkType { return MarkStrong }

type Em struct{}

func (Em) MarkType() MarkType { return MarkEm }

type Strike struct{}

func (Strike) MarkType() MarkType { return MarkStrike }

// Code marks inline code spans. Text carrying it is exempt from mention
// detection.
type Code struct{}

func (Code) MarkType() MarkType { return MarkCode }

// Link carries the target and optional title of a hyperlink.
type Link struct {
	Href  string
	Title string
}

func (Link) MarkType() MarkType { return MarkLink }
