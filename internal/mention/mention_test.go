package mention_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-adf/internal/mention"
	"github.com/goliatone/go-adf/pkg/document"
)

func TestFind(t *testing.T) {
	text := "ping @[5b10ac8d82e05b22cc7d4ef5:Ann Lee] and @[bob-1:Bob]"
	refs := mention.Find(text)
	if len(refs) != 2 {
		t.Fatalf("expected two references, got %d", len(refs))
	}
	if refs[0].ID != "5b10ac8d82e05b22cc7d4ef5" || refs[0].Name != "Ann Lee" {
		t.Fatalf("unexpected first reference %+v", refs[0])
	}
	if text[refs[1].Start:refs[1].End] != "@[bob-1:Bob]" {
		t.Fatalf("unexpected span %q", text[refs[1].Start:refs[1].End])
	}
}

func TestFindRejectsMalformed(t *testing.T) {
	for _, text := range []string{
		"",
		"no refs",
		"@[ABC:Upper]",
		"@[abc:]",
		"@[:Name]",
		"@[abc Name]",
		"[abc:Name]",
	} {
		if refs := mention.Find(text); len(refs) != 0 {
			t.Fatalf("expected no references in %q, got %+v", text, refs)
		}
		if mention.Contains(text) {
			t.Fatalf("expected Contains(%q) to be false", text)
		}
	}
}

func TestLowercaseLetterIDsAreMentions(t *testing.T) {
	refs := mention.Find("@[xyz:Name]")
	if len(refs) != 1 || refs[0].ID != "xyz" || refs[0].Name != "Name" {
		t.Fatalf("expected lowercase id reference, got %+v", refs)
	}

	out := (mention.Processor{}).Split(document.Text{Text: "@[xyz:Name]"})
	if len(out) != 1 {
		t.Fatalf("expected a single mention, got %+v", out)
	}
	node, ok := out[0].(document.Mention)
	if !ok {
		t.Fatalf("expected mention node, got %T", out[0])
	}
	if node.ID != "xyz" || node.Text != "@Name" {
		t.Fatalf("unexpected mention %+v", node)
	}
}

func TestSplitKeepsMarksOnGaps(t *testing.T) {
	leaf := document.Text{Text: "hi @[abc:Ann]!", Marks: []document.Mark{document.Strong{}}}
	out := (mention.Processor{}).Split(leaf)
	if len(out) != 3 {
		t.Fatalf("expected three leaves, got %d", len(out))
	}

	head := out[0].(document.Text)
	if head.Text != "hi " || !head.HasMark(document.MarkStrong) {
		t.Fatalf("unexpected head %+v", head)
	}
	node := out[1].(document.Mention)
	if node.ID != "abc" || node.Text != "@Ann" || node.UserType != document.DefaultUserType {
		t.Fatalf("unexpected mention %+v", node)
	}
	tail := out[2].(document.Text)
	if tail.Text != "!" || !tail.HasMark(document.MarkStrong) {
		t.Fatalf("unexpected tail %+v", tail)
	}
}

func TestSplitOmitsEmptyGaps(t *testing.T) {
	out := (mention.Processor{}).Split(document.Text{Text: "@[a:A]@[b:B]"})
	if len(out) != 2 {
		t.Fatalf("expected two adjacent mentions, got %d", len(out))
	}
	for _, leaf := range out {
		if _, ok := leaf.(document.Mention); !ok {
			t.Fatalf("expected only mentions, got %T", leaf)
		}
	}
}

func TestSplitLeavesCodeAlone(t *testing.T) {
	leaf := document.Text{Text: "@[abc:Ann]", Marks: []document.Mark{document.Code{}}}
	out := (mention.Processor{}).Split(leaf)
	if len(out) != 1 || out[0].(document.Text).Text != "@[abc:Ann]" {
		t.Fatalf("expected code leaf untouched, got %+v", out)
	}
}

func TestLiteralRoundTrip(t *testing.T) {
	inputs := []string{
		"plain",
		"@[abc:Ann]",
		"a @[abc:Ann] b @[def-9:Zed Q] c",
		"@[x:y] trailing",
	}
	for _, input := range inputs {
		var b strings.Builder
		for _, leaf := range (mention.Processor{}).Split(document.Text{Text: input}) {
			b.WriteString(mention.Literal(leaf))
		}
		if b.String() != input {
			t.Fatalf("expected %q to round-trip, got %q", input, b.String())
		}
	}
}

func TestProcessWalksContainers(t *testing.T) {
	para := func(text string) document.Paragraph {
		return document.Paragraph{Content: []document.Inline{document.Text{Text: text}}}
	}
	doc := document.New(
		document.Heading{Level: 2, Content: []document.Inline{document.Text{Text: "@[h:Head]"}}},
		document.CodeBlock{Language: "text", Text: "@[c:Code]"},
		document.Blockquote{Content: []document.Block{para("@[q:Quote]")}},
		document.List{Content: []document.ListItem{{Content: []document.Block{para("@[l:List]")}}}},
		document.Table{Content: []document.TableRow{{Content: []document.TableCell{
			{Header: true, Content: []document.Block{para("@[t:Table]")}},
		}}}},
	)

	out := (mention.Processor{UserType: "DEFAULT"}).Process(doc)
	if got := mention.Count(out); got != 4 {
		t.Fatalf("expected four mentions, got %d", got)
	}
	if code := out.Content[1].(document.CodeBlock); code.Text != "@[c:Code]" {
		t.Fatalf("expected code block untouched, got %q", code.Text)
	}
	if mention.Count(doc) != 0 {
		t.Fatalf("expected input document unchanged")
	}

	document.Walk(out, func(node document.Node) bool {
		if m, ok := node.(document.Mention); ok && m.UserType != "DEFAULT" {
			t.Fatalf("expected custom user type, got %q", m.UserType)
		}
		return true
	})

	cell := out.Content[4].(document.Table).Content[0].Content[0]
	if !cell.Header {
		t.Fatalf("expected header flag preserved")
	}
}

func TestProcessNil(t *testing.T) {
	out := mention.Process(nil)
	if out == nil || len(out.Content) != 0 {
		t.Fatalf("expected empty document, got %+v", out)
	}
}
