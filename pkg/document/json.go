package document

import "encoding/json"

// The wire structs fix key order and keep "attrs" and "marks" out of the
// payload for node kinds that do not carry them.

type containerWire[T any] struct {
	Type    NodeType `json:"type"`
	Attrs   any      `json:"attrs,omitempty"`
	Content []T      `json:"content"`
}

type textWire struct {
	Type  NodeType `json:"type"`
	Text  string   `json:"text"`
	Marks []Mark   `json:"marks,omitempty"`
}

type headingAttrs struct {
	Level int `json:"level"`
}

type codeBlockAttrs struct {
	Language string `json:"language"`
}

type mentionAttrs struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	UserType string `json:"userType"`
}

type markWire struct {
	Type  MarkType `json:"type"`
	Attrs any      `json:"attrs,omitempty"`
}

type linkAttrs struct {
	Href  string `json:"href"`
	Title string `json:"title"`
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// MarshalJSON writes {"version":1,"type":"doc","content":[...]}.
func (d Doc) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Version int      `json:"version"`
		Type    NodeType `json:"type"`
		Content []Block  `json:"content"`
	}{
		Version: Version,
		Type:    TypeDoc,
		Content: orEmpty(d.Content),
	})
}

func (p Paragraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(containerWire[Inline]{Type: TypeParagraph, Content: orEmpty(p.Content)})
}

func (h Heading) MarshalJSON() ([]byte, error) {
	return json.Marshal(containerWire[Inline]{
		Type:    TypeHeading,
		Attrs:   headingAttrs{Level: h.Level},
		Content: orEmpty(h.Content),
	})
}

func (b Blockquote) MarshalJSON() ([]byte, error) {
	return json.Marshal(containerWire[Block]{Type: TypeBlockquote, Content: orEmpty(b.Content)})
}

func (l List) MarshalJSON() ([]byte, error) {
	return json.Marshal(containerWire[ListItem]{Type: l.NodeType(), Content: orEmpty(l.Content)})
}

func (i ListItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(containerWire[Block]{Type: TypeListItem, Content: orEmpty(i.Content)})
}

func (c CodeBlock) MarshalJSON() ([]byte, error) {
	language := c.Language
	if language == "" {
		language = DefaultCodeLanguage
	}
	return json.Marshal(containerWire[textWire]{
		Type:    TypeCodeBlock,
		Attrs:   codeBlockAttrs{Language: language},
		Content: []textWire{{Type: TypeText, Text: c.Text}},
	})
}

func (t Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(containerWire[TableRow]{Type: TypeTable, Content: orEmpty(t.Content)})
}

func (r TableRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(containerWire[TableCell]{Type: TypeTableRow, Content: orEmpty(r.Content)})
}

func (c TableCell) MarshalJSON() ([]byte, error) {
	return json.Marshal(containerWire[Block]{Type: c.NodeType(), Content: orEmpty(c.Content)})
}

func (Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type NodeType `json:"type"`
	}{Type: TypeRule})
}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(textWire{Type: TypeText, Text: t.Text, Marks: t.Marks})
}

func (m Mention) MarshalJSON() ([]byte, error) {
	userType := m.UserType
	if userType == "" {
		userType = DefaultUserType
	}
	return json.Marshal(struct {
		Type  NodeType     `json:"type"`
		Attrs mentionAttrs `json:"attrs"`
	}{
		Type:  TypeMention,
		Attrs: mentionAttrs{ID: m.ID, Text: m.Text, UserType: userType},
	})
}

func (Strong) MarshalJSON() ([]byte, error) { return json.Marshal(markWire{Type: MarkStrong}) }
func (Em) MarshalJSON() ([]byte, error)     { return json.Marshal(markWire{Type: MarkEm}) }
func (Strike) MarshalJSON() ([]byte, error) { return json.Marshal(markWire{Type: MarkStrike}) }
func (Code) MarshalJSON() ([]byte, error)   { return json.Marshal(markWire{Type: MarkCode}) }

func (l Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(markWire{Type: MarkLink, Attrs: linkAttrs{Href: l.Href, Title: l.Title}})
}

// ToMap round-trips the document through JSON, producing the generic payload
// shape HTTP clients expect.
func ToMap(doc *Doc) (map[string]any, error) {
	if doc == nil {
		doc = New()
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}
