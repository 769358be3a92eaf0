// Package detect answers whether a string looks like Markdown. The check is
// permissive: any single structural hint is enough, and false positives only
// cost an unnecessary conversion.
package detect

import (
	"regexp"

	"github.com/goliatone/go-adf/internal/mention"
)

// Rule is one named structural hint.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// Rules are evaluated in order; the first match wins.
var Rules = []Rule{
	{Name: "heading", Pattern: regexp.MustCompile(`(?m)^#{1,6}\s+`)},
	{Name: "bold", Pattern: regexp.MustCompile(`\*\*.*?\*\*`)},
	{Name: "italic", Pattern: regexp.MustCompile(`\*.*?\*`)},
	{Name: "inline_code", Pattern: regexp.MustCompile("`.*?`")},
	{Name: "fenced_code", Pattern: regexp.MustCompile("(?s)```.*?```")},
	{Name: "unordered_list", Pattern: regexp.MustCompile(`(?m)^\s*[-*+]\s+`)},
	{Name: "ordered_list", Pattern: regexp.MustCompile(`(?m)^\s*\d+\.\s+`)},
	{Name: "blockquote", Pattern: regexp.MustCompile(`(?m)^\s*>\s+`)},
	{Name: "link", Pattern: regexp.MustCompile(`\[.*?\]\(.*?\)`)},
	{Name: "table", Pattern: regexp.MustCompile(`(?m)^\s*\|.*\|.*\|`)},
	{Name: "rule", Pattern: regexp.MustCompile(`(?m)^---+\r?$`)},
	{Name: "mention", Pattern: mention.Pattern},
}

// LooksLikeMarkdown reports whether any rule matches text. Empty text never
// matches.
func LooksLikeMarkdown(text string) bool {
	_, ok := Match(text)
	return ok
}

// Match returns the name of the first matching rule.
func Match(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, rule := range Rules {
		if rule.Pattern.MatchString(text) {
			return rule.Name, true
		}
	}
	return "", false
}

// Value applies LooksLikeMarkdown to arbitrary input. Anything other than a
// string, or a *string that is nil, is reported as not Markdown.
func Value(value any) bool {
	switch v := value.(type) {
	case string:
		return LooksLikeMarkdown(v)
	case *string:
		if v == nil {
			return false
		}
		return LooksLikeMarkdown(*v)
	default:
		return false
	}
}
