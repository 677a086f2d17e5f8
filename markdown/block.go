package markdown

import (
	"regexp"
	"strings"
)

type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockBullet
	BlockOrdered
	BlockQuote
	BlockHyperlink
	BlockRule
	BlockTableRow
	BlockBlank
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockBullet:
		return "bullet"
	case BlockOrdered:
		return "ordered"
	case BlockQuote:
		return "quote"
	case BlockHyperlink:
		return "hyperlink"
	case BlockRule:
		return "rule"
	case BlockTableRow:
		return "table_row"
	case BlockBlank:
		return "blank"
	default:
		return "paragraph"
	}
}

// Block is one classified line of input.
//
// Level is the heading level for headings and the nesting depth for block
// quotes. Text is the line content with its block prefix removed, inline
// markers still in place.
type Block struct {
	Kind  BlockKind
	Raw   string
	Text  string
	Level int
	URL   string
}

var (
	headingRe   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletRe    = regexp.MustCompile(`^-\s+(.+)$`)
	orderedRe   = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	quoteRe     = regexp.MustCompile(`^(>+)\s*(.+)$`)
	hyperlinkRe = regexp.MustCompile(`^\[(.+?)\]\((https?://.+?)\)`)
	ruleRe      = regexp.MustCompile(`^[-*_]{3,}$`)
	tableRowRe  = regexp.MustCompile(`^\|.+\|$`)
)

// SplitBlocks splits src on newline boundaries. Every block keeps its
// trailing newline; the last one has none when src does not end in one.
func SplitBlocks(src string) []string {
	if src == "" {
		return nil
	}
	blocks := strings.SplitAfter(src, "\n")
	if blocks[len(blocks)-1] == "" {
		blocks = blocks[:len(blocks)-1]
	}
	return blocks
}

// Classify determines the kind of a single line.
func Classify(raw string) Block {
	line := strings.TrimSpace(raw)
	b := Block{Raw: raw, Text: line}

	if line == "" {
		b.Kind = BlockBlank
		return b
	}

	if m := headingRe.FindStringSubmatch(line); m != nil {
		b.Kind = BlockHeading
		b.Level = len(m[1])
		b.Text = strings.TrimSpace(m[2])
		return b
	}
	if m := bulletRe.FindStringSubmatch(line); m != nil {
		b.Kind = BlockBullet
		b.Text = strings.TrimSpace(m[1])
		return b
	}
	if m := orderedRe.FindStringSubmatch(line); m != nil {
		b.Kind = BlockOrdered
		b.Text = strings.TrimSpace(m[1])
		return b
	}
	if m := quoteRe.FindStringSubmatch(line); m != nil {
		b.Kind = BlockQuote
		b.Level = len(m[1])
		b.Text = strings.TrimSpace(m[2])
		return b
	}
	if m := hyperlinkRe.FindStringSubmatch(line); m != nil {
		b.Kind = BlockHyperlink
		b.Text = m[1]
		b.URL = m[2]
		return b
	}
	if ruleRe.MatchString(line) {
		b.Kind = BlockRule
		b.Text = ""
		return b
	}
	if tableRowRe.MatchString(line) {
		b.Kind = BlockTableRow
		return b
	}

	b.Kind = BlockParagraph
	return b
}
