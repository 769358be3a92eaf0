package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-adf/internal/token"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

func lex(t *testing.T, source string) []token.Block {
	t.Helper()
	tokens, err := NewGoldmarkLexer(interfaces.ParseOptions{}).Lex([]byte(source))
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	return tokens
}

func TestLexTightListItemsBecomeParagraphs(t *testing.T) {
	tokens := lex(t, "- one\n- two")
	if len(tokens) != 1 {
		t.Fatalf("expected one list token, got %d", len(tokens))
	}
	list, ok := tokens[0].(token.List)
	if !ok || list.Ordered || len(list.Items) != 2 {
		t.Fatalf("unexpected list token %#v", tokens[0])
	}
	para, ok := list.Items[0].Tokens[0].(token.Paragraph)
	if !ok {
		t.Fatalf("expected paragraph inside item, got %T", list.Items[0].Tokens[0])
	}
	if para.Text != "one" {
		t.Fatalf("unexpected item text %q", para.Text)
	}
}

func TestLexMergesTextAroundBrackets(t *testing.T) {
	tokens := lex(t, "Hi @[abc123:Jane Doe], welcome")
	para := tokens[0].(token.Paragraph)
	if len(para.Tokens) != 1 {
		t.Fatalf("expected a single merged text token, got %#v", para.Tokens)
	}
	if text := para.Tokens[0].(token.Text).Text; text != "Hi @[abc123:Jane Doe], welcome" {
		t.Fatalf("unexpected merged text %q", text)
	}
}

func TestLexSoftBreakKeepsNewline(t *testing.T) {
	tokens := lex(t, "line one\nline two")
	para := tokens[0].(token.Paragraph)
	text := para.Tokens[0].(token.Text).Text
	if text != "line one\nline two" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestLexFencedAndIndentedCode(t *testing.T) {
	tokens := lex(t, "```ts\nconst a = 1;\n```\n\n    indented")
	if len(tokens) != 2 {
		t.Fatalf("expected two code tokens, got %d", len(tokens))
	}
	fenced := tokens[0].(token.Code)
	if fenced.Lang != "ts" || fenced.Text != "const a = 1;" {
		t.Fatalf("unexpected fenced token %#v", fenced)
	}
	indented := tokens[1].(token.Code)
	if indented.Lang != "" || indented.Text != "indented" {
		t.Fatalf("unexpected indented token %#v", indented)
	}
}

func TestLexInlineFormatting(t *testing.T) {
	tokens := lex(t, "~~gone~~ `x` [site](https://example.com)")
	para := tokens[0].(token.Paragraph)

	del, ok := para.Tokens[0].(token.Del)
	if !ok || del.Text != "gone" {
		t.Fatalf("expected strike token, got %#v", para.Tokens[0])
	}
	var code token.Codespan
	var link token.Link
	for _, tok := range para.Tokens {
		switch v := tok.(type) {
		case token.Codespan:
			code = v
		case token.Link:
			link = v
		}
	}
	if code.Text != "x" {
		t.Fatalf("unexpected codespan %#v", code)
	}
	if link.Href != "https://example.com" || link.Text != "site" || len(link.Tokens) != 0 {
		t.Fatalf("expected link leaf, got %#v", link)
	}
}

func TestLexAutolinks(t *testing.T) {
	tokens := lex(t, "<https://example.com/a>")
	para := tokens[0].(token.Paragraph)
	link, ok := para.Tokens[0].(token.Link)
	if !ok {
		t.Fatalf("expected link token, got %#v", para.Tokens)
	}
	if link.Href != "https://example.com/a" || link.Text != "https://example.com/a" {
		t.Fatalf("unexpected autolink %#v", link)
	}
}

func TestLexTaskCheckbox(t *testing.T) {
	tokens := lex(t, "- [x] done")
	list := tokens[0].(token.List)
	para := list.Items[0].Tokens[0].(token.Paragraph)
	text := para.Tokens[0].(token.Text).Text
	if !strings.HasPrefix(text, "[x]") || !strings.Contains(text, "done") {
		t.Fatalf("expected checkbox marker to be kept, got %q", text)
	}
}

func TestLexTable(t *testing.T) {
	tokens := lex(t, "| a | **b** |\n|---|---|\n| 1 | 2 |\n| 3 | 4 |")
	table, ok := tokens[0].(token.Table)
	if !ok {
		t.Fatalf("expected table token, got %T", tokens[0])
	}
	if strings.Join(table.Header, ",") != "a,b" {
		t.Fatalf("unexpected header %v", table.Header)
	}
	if len(table.Cells) != 2 || strings.Join(table.Cells[1], ",") != "3,4" {
		t.Fatalf("unexpected cells %v", table.Cells)
	}
}

func TestLexHTMLBlockIsUnknown(t *testing.T) {
	tokens := lex(t, "<div>\nhello\n</div>")
	unknown, ok := tokens[0].(token.UnknownBlock)
	if !ok || unknown.Name != "html" {
		t.Fatalf("expected html block, got %#v", tokens[0])
	}
	if !strings.Contains(unknown.Text, "hello") {
		t.Fatalf("expected html text to be kept, got %q", unknown.Text)
	}
}

func TestLexWithoutTableExtension(t *testing.T) {
	lexer := NewGoldmarkLexer(interfaces.ParseOptions{Extensions: []string{"strikethrough"}})
	tokens, err := lexer.Lex([]byte("| a | b |\n|---|---|\n| 1 | 2 |"))
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	if _, ok := tokens[0].(token.Table); ok {
		t.Fatal("expected table syntax to stay a paragraph without the table extension")
	}
}

func TestKnownExtension(t *testing.T) {
	for _, name := range []string{"gfm", " Table ", "LINKIFY", "tasklist", "autolink"} {
		if !KnownExtension(name) {
			t.Fatalf("expected %q to be known", name)
		}
	}
	if KnownExtension("footnote") {
		t.Fatal("expected footnote to be unknown")
	}
}

func TestNilLexerReportsError(t *testing.T) {
	var lexer *GoldmarkLexer
	if _, err := lexer.Lex([]byte("x")); err == nil {
		t.Fatal("expected error from unconfigured lexer")
	}
}
