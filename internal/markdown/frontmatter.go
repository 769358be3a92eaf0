package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// StripFrontMatter separates YAML, TOML or JSON front matter from the Markdown
// body. Input without front matter is returned unchanged with an empty
// metadata map.
func StripFrontMatter(source []byte) (map[string]any, []byte, error) {
	meta := map[string]any{}

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, body, nil
}
