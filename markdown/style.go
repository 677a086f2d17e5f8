package markdown

import (
	"fmt"

	"google.golang.org/api/docs/v1"
)

// StrikeStyle is the Docs text style field used for ~strike~ spans.
type StrikeStyle string

const (
	StrikeThrough   StrikeStyle = "strikethrough"
	StrikeUnderline StrikeStyle = "underline"
)

// StyleRequests turns resolved spans into UpdateTextStyle requests, in span
// order. Empty spans produce nothing.
func StyleRequests(spans []Span, strike StrikeStyle) ([]*docs.Request, error) {
	if len(spans) == 0 {
		return nil, nil
	}

	reqs := make([]*docs.Request, 0, len(spans))
	for _, s := range spans {
		if s.End <= s.Start {
			continue
		}

		textStyle := &docs.TextStyle{}
		fields := ""

		switch s.Style {
		case StyleBold:
			textStyle.Bold = true
			fields = "bold"
		case StyleItalic:
			textStyle.Italic = true
			fields = "italic"
		case StyleStrike:
			if strike == StrikeUnderline {
				textStyle.Underline = true
				fields = "underline"
			} else {
				textStyle.Strikethrough = true
				fields = "strikethrough"
			}
		default:
			return nil, fmt.Errorf("unsupported style: %q", s.Style)
		}

		reqs = append(reqs, textStyleRequest(s.Start, s.End, textStyle, fields))
	}

	return reqs, nil
}

func textStyleRequest(start, end int64, style *docs.TextStyle, fields string) *docs.Request {
	return &docs.Request{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     &docs.Range{StartIndex: start, EndIndex: end},
			TextStyle: style,
			Fields:    fields,
		},
	}
}
