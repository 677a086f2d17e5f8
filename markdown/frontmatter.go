package markdown

import (
	"bytes"

	"github.com/adrg/frontmatter"
	"md2gdocs/debug"
)

// FrontMatter holds the publishing settings a source file may carry in a
// leading YAML (---) or TOML (+++) block.
type FrontMatter struct {
	Title      string `yaml:"title" toml:"title"`
	DocumentID string `yaml:"document_id" toml:"document_id"`
	Share      string `yaml:"share" toml:"share"`
}

// SplitFrontMatter separates front matter from the markdown body. Input
// without a complete, parseable front matter block is returned whole, so a
// document that opens with a horizontal rule is left alone.
func SplitFrontMatter(src []byte) (FrontMatter, []byte) {
	var meta FrontMatter
	if !hasFrontMatter(src) {
		return meta, src
	}

	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		debug.Log("front matter ignored: %v", err)
		return FrontMatter{}, src
	}
	return meta, body
}

func hasFrontMatter(src []byte) bool {
	first, rest, ok := bytes.Cut(src, []byte("\n"))
	if !ok {
		return false
	}
	delim := bytes.TrimSpace(first)
	if !bytes.Equal(delim, []byte("---")) && !bytes.Equal(delim, []byte("+++")) {
		return false
	}

	// Delimiters with only blank lines between them are two rules.
	content := false
	for _, line := range bytes.Split(rest, []byte("\n")) {
		trimmed := bytes.TrimSpace(line)
		if bytes.Equal(trimmed, delim) {
			return content
		}
		if len(trimmed) > 0 {
			content = true
		}
	}
	return false
}
