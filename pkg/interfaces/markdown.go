package interfaces

import "github.com/goliatone/go-adf/pkg/document"

// MarkdownConverter turns Markdown text into an ADF document. Implementations
// must be total: Convert never fails and degrades unparseable input to a
// single literal paragraph.
type MarkdownConverter interface {
	Convert(markdown string) *document.Doc
}

// MarkdownDetector decides whether text should go through the converter or be
// wrapped as a literal paragraph.
type MarkdownDetector interface {
	LooksLikeMarkdown(text string) bool
}

// ParseOptions customises the lexer front end. Extension names are matched
// case-insensitively; unknown names are ignored by the lexer and rejected by
// configuration validation.
type ParseOptions struct {
	Extensions []string
}
