package markdown

import (
	"regexp"
	"strings"
)

type StyleKind string

const (
	StyleBold   StyleKind = "bold"
	StyleItalic StyleKind = "italic"
	StyleStrike StyleKind = "strike"
)

// Span is a style applied to the document range [Start, End).
type Span struct {
	Style StyleKind
	Start int64
	End   int64
}

// Resolution is a unit of text with its inline markers removed.
type Resolution struct {
	Text  string
	Spans []Span
}

var (
	boldItalicRe = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	boldRe       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe     = regexp.MustCompile(`_(.+?)_`)
	strikeRe     = regexp.MustCompile(`~(.+?)~`)
)

// Resolve strips inline emphasis markers from text and reports the styles
// they carried, positioned as if the cleaned text were inserted at start.
//
// Bold-italic, bold and italic are exclusive: only the first class that
// matches is applied. Strike is checked independently. Each class unwraps its
// first occurrence only; later marker pairs of the same class stay literal.
func Resolve(text string, start int64) Resolution {
	u := &unwrapper{text: text}

	switch {
	case u.unwrap(boldItalicRe, StyleBold, StyleItalic):
	case u.unwrap(boldRe, StyleBold):
	case u.unwrap(italicRe, StyleItalic):
	}
	u.unwrap(strikeRe, StyleStrike)

	return u.resolution(start)
}

type byteSpan struct {
	style      StyleKind
	start, end int
}

type unwrapper struct {
	text  string
	spans []byteSpan
}

func (u *unwrapper) unwrap(re *regexp.Regexp, styles ...StyleKind) bool {
	loc := re.FindStringSubmatchIndex(u.text)
	if loc == nil {
		return false
	}

	matchStart, matchEnd := loc[0], loc[1]
	inner := u.text[loc[2]:loc[3]]
	kept := strings.TrimSpace(inner)
	keptStart := loc[2] + strings.Index(inner, kept)
	keptEnd := keptStart + len(kept)

	// Shift spans recorded by earlier passes past the removed markers.
	head := keptStart - matchStart
	tail := matchEnd - keptEnd
	shift := func(off int) int {
		switch {
		case off <= matchStart:
			return off
		case off <= keptStart:
			return matchStart
		case off <= keptEnd:
			return off - head
		case off <= matchEnd:
			return keptEnd - head
		default:
			return off - head - tail
		}
	}
	for i := range u.spans {
		u.spans[i].start = shift(u.spans[i].start)
		u.spans[i].end = shift(u.spans[i].end)
	}

	u.text = u.text[:matchStart] + kept + u.text[matchEnd:]
	if kept == "" {
		return true
	}
	for _, style := range styles {
		u.spans = append(u.spans, byteSpan{style: style, start: matchStart, end: matchStart + len(kept)})
	}
	return true
}

func (u *unwrapper) resolution(start int64) Resolution {
	res := Resolution{Text: u.text}
	if len(u.spans) == 0 {
		return res
	}

	res.Spans = make([]Span, 0, len(u.spans))
	for _, s := range u.spans {
		res.Spans = append(res.Spans, Span{
			Style: s.style,
			Start: start + utf16Offset(u.text, s.start),
			End:   start + utf16Offset(u.text, s.end),
		})
	}
	return res
}
