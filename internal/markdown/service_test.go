package markdown_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-adf/internal/markdown"
	"github.com/goliatone/go-adf/internal/mention"
	"github.com/goliatone/go-adf/internal/token"
	"github.com/goliatone/go-adf/pkg/document"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

type stubLexer struct {
	tokens []token.Block
	err    error
	panic  any
}

func (s stubLexer) Lex([]byte) ([]token.Block, error) {
	if s.panic != nil {
		panic(s.panic)
	}
	return s.tokens, s.err
}

type warnLogger struct {
	warnings []string
}

var _ interfaces.Logger = (*warnLogger)(nil)

func (l *warnLogger) Debug(string, ...any) {}
func (l *warnLogger) Info(string, ...any)  {}
func (l *warnLogger) Warn(msg string, _ ...any) {
	l.warnings = append(l.warnings, msg)
}
func (l *warnLogger) Error(string, ...any) {}

func (l *warnLogger) WithFields(map[string]any) interfaces.Logger { return l }

func (l *warnLogger) WithContext(context.Context) interfaces.Logger { return l }

func assertLiteral(t *testing.T, doc *document.Doc, want string) {
	t.Helper()
	if len(doc.Content) != 1 {
		t.Fatalf("expected one block, got %d", len(doc.Content))
	}
	para, ok := doc.Content[0].(document.Paragraph)
	if !ok || len(para.Content) != 1 {
		t.Fatalf("expected single-leaf paragraph, got %#v", doc.Content[0])
	}
	text := para.Content[0].(document.Text)
	if text.Text != want || len(text.Marks) != 0 {
		t.Fatalf("expected literal %q, got %#v", want, text)
	}
}

func TestServiceFallsBackOnLexerError(t *testing.T) {
	logger := &warnLogger{}
	svc := markdown.NewService(markdown.Config{},
		markdown.WithLexer(stubLexer{err: errors.New("tokenizer exploded")}),
		markdown.WithLogger(logger),
	)

	input := "# @[abc:Ann] **x**"
	doc, report := svc.ConvertWithReport(input)
	assertLiteral(t, doc, input)
	if !report.Fallback || !errors.Is(report.Err, markdown.ErrConversionFailed) {
		t.Fatalf("expected fallback report, got %+v", report)
	}
	if len(logger.warnings) != 1 || logger.warnings[0] != "markdown.convert.fallback" {
		t.Fatalf("expected one fallback warning, got %v", logger.warnings)
	}
}

func TestServiceFallsBackOnPanic(t *testing.T) {
	svc := markdown.NewService(markdown.Config{}, markdown.WithLexer(stubLexer{panic: "boom"}))
	assertLiteral(t, svc.Convert("*x*"), "*x*")
}

func TestServiceUsesInjectedTokens(t *testing.T) {
	svc := markdown.NewService(markdown.Config{}, markdown.WithLexer(stubLexer{tokens: []token.Block{
		token.Heading{Text: "no depth"},
		token.Space{},
		token.Code{Text: "@[abc:Ann]"},
	}}))

	doc := svc.Convert("ignored")
	if len(doc.Content) != 2 {
		t.Fatalf("expected heading and code block, got %#v", doc.Content)
	}
	if heading := doc.Content[0].(document.Heading); heading.Level != 1 {
		t.Fatalf("expected level 1, got %d", heading.Level)
	}
	code := doc.Content[1].(document.CodeBlock)
	if code.Language != "text" || code.Text != "@[abc:Ann]" {
		t.Fatalf("unexpected code block %#v", code)
	}
}

func TestServiceEmptyInputSkipsLexer(t *testing.T) {
	svc := markdown.NewService(markdown.Config{}, markdown.WithLexer(stubLexer{panic: "should not lex"}))
	doc, report := svc.ConvertWithReport(" \n ")
	if !report.Empty || report.Fallback {
		t.Fatalf("unexpected report %+v", report)
	}
	if doc.Content == nil || len(doc.Content) != 0 {
		t.Fatalf("expected empty non-nil content, got %#v", doc.Content)
	}
}

func TestServiceReportCountsMentions(t *testing.T) {
	svc := markdown.NewService(markdown.Config{})
	_, report := svc.ConvertWithReport("@[a:Ann] and @[b:Bob]\n\n- @[c:Cy]")
	if report.Mentions != 3 || report.Blocks != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	if !report.Detected {
		t.Fatal("expected input to be detected as markdown")
	}
}

func TestServiceDisableMentions(t *testing.T) {
	svc := markdown.NewService(markdown.Config{DisableMentions: true})
	doc := svc.Convert("Hi @[abc:Ann]")
	if mention.Count(doc) != 0 {
		t.Fatal("expected mentions to stay literal")
	}
}

func TestServiceMentionUserType(t *testing.T) {
	svc := markdown.NewService(markdown.Config{MentionUserType: "DEFAULT"})
	doc := svc.Convert("@[abc:Ann]")
	m := doc.Content[0].(document.Paragraph).Content[0].(document.Mention)
	if m.UserType != "DEFAULT" {
		t.Fatalf("expected DEFAULT, got %q", m.UserType)
	}
}

func TestServiceConvertFileStripsFrontMatter(t *testing.T) {
	svc := markdown.NewService(markdown.Config{StripFrontMatter: true})
	doc, meta, err := svc.ConvertFile(context.Background(), filepath.Join("testdata", "release-notes.md"))
	if err != nil {
		t.Fatalf("convert file: %v", err)
	}
	if meta["title"] != "Release notes" {
		t.Fatalf("unexpected metadata %v", meta)
	}
	if len(doc.Content) != 3 {
		t.Fatalf("expected heading, paragraph and code block, got %d blocks", len(doc.Content))
	}
	if heading, ok := doc.Content[0].(document.Heading); !ok || heading.Content[0].(document.Text).Text != "Release 1.4" {
		t.Fatalf("expected front matter to be removed, got %#v", doc.Content[0])
	}
	if mention.Count(doc) != 1 {
		t.Fatalf("expected one mention, got %d", mention.Count(doc))
	}
	if code := doc.Content[2].(document.CodeBlock); code.Language != "sh" || code.Text != "make release" {
		t.Fatalf("unexpected code block %#v", code)
	}
}

func TestServiceConvertFileKeepsFrontMatterWhenDisabled(t *testing.T) {
	svc := markdown.NewService(markdown.Config{})
	doc, meta, err := svc.ConvertFile(context.Background(), filepath.Join("testdata", "release-notes.md"))
	if err != nil {
		t.Fatalf("convert file: %v", err)
	}
	if len(meta) != 0 {
		t.Fatalf("expected no metadata, got %v", meta)
	}
	if _, ok := doc.Content[0].(document.Rule); !ok {
		t.Fatalf("expected leading --- to become a rule, got %T", doc.Content[0])
	}
}

func TestServiceConvertFileErrors(t *testing.T) {
	svc := markdown.NewService(markdown.Config{})
	if _, _, err := svc.ConvertFile(context.Background(), filepath.Join("testdata", "missing.md")); err == nil {
		t.Fatal("expected error for missing file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := svc.ConvertFile(ctx, filepath.Join("testdata", "plain.md")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStripFrontMatterWithoutMetadata(t *testing.T) {
	meta, body, err := markdown.StripFrontMatter([]byte("Just text\n"))
	if err != nil {
		t.Fatalf("strip: %v", err)
	}
	if len(meta) != 0 || string(body) != "Just text\n" {
		t.Fatalf("unexpected result meta=%v body=%q", meta, body)
	}
}
