package markdown

import (
	"fmt"

	"google.golang.org/api/docs/v1"
)

const (
	bulletPreset  = "BULLET_DISC_CIRCLE_SQUARE"
	orderedPreset = "NUMBERED_DECIMAL_NESTED"
)

func insertTextRequest(index int64, text string) *docs.Request {
	return &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: index},
			Text:     text,
		},
	}
}

func buildHeadingRequests(index int64, level int, text string) ([]*docs.Request, int64, error) {
	if level < 1 || level > 6 {
		return nil, index, inputError(ErrHeadingLevel, CodeHeadingLevel,
			fmt.Sprintf("heading level %d is outside 1..6", level))
	}

	insertText := text + "\n"
	newIndex := index + UTF16Len(insertText)

	reqs := []*docs.Request{
		insertTextRequest(index, insertText),
		{
			UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
				Range:          &docs.Range{StartIndex: index, EndIndex: newIndex},
				ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: fmt.Sprintf("HEADING_%d", level)},
				Fields:         "namedStyleType",
			},
		},
	}

	return reqs, newIndex, nil
}

func buildParagraphRequests(index int64, text string) ([]*docs.Request, int64) {
	insertText := text + "\n"
	return []*docs.Request{insertTextRequest(index, insertText)}, index + UTF16Len(insertText)
}

func buildQuoteRequests(index int64, depth int, text string, unitPt float64) ([]*docs.Request, int64) {
	insertText := text + "\n"
	newIndex := index + UTF16Len(insertText)

	reqs := []*docs.Request{
		insertTextRequest(index, insertText),
		{
			UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
				Range: &docs.Range{StartIndex: index, EndIndex: newIndex},
				ParagraphStyle: &docs.ParagraphStyle{
					IndentStart: &docs.Dimension{Magnitude: float64(depth) * unitPt, Unit: "PT"},
				},
				Fields: "indentStart",
			},
		},
	}

	return reqs, newIndex
}

// buildLinkRequests inserts the link text with no paragraph break.
func buildLinkRequests(index int64, text, url string) ([]*docs.Request, int64) {
	newIndex := index + UTF16Len(text)
	if newIndex == index {
		return nil, index
	}

	reqs := []*docs.Request{
		insertTextRequest(index, text),
		textStyleRequest(index, newIndex, &docs.TextStyle{Link: &docs.Link{Url: url}}, "link"),
	}
	return reqs, newIndex
}

func buildRuleRequests(index int64) ([]*docs.Request, int64) {
	newIndex := index + 1
	black := &docs.OptionalColor{
		Color: &docs.Color{RgbColor: &docs.RgbColor{}},
	}

	reqs := []*docs.Request{
		insertTextRequest(index, "\n"),
		{
			UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
				Range: &docs.Range{StartIndex: index, EndIndex: newIndex},
				ParagraphStyle: &docs.ParagraphStyle{
					BorderBottom: &docs.ParagraphBorder{
						Color:     black,
						Width:     &docs.Dimension{Magnitude: 1, Unit: "PT"},
						Padding:   &docs.Dimension{Magnitude: 1, Unit: "PT"},
						DashStyle: "SOLID",
					},
				},
				Fields: "borderBottom",
			},
		},
	}

	return reqs, newIndex
}

func bulletsRequest(start, end int64, kind BlockKind) *docs.Request {
	preset := bulletPreset
	if kind == BlockOrdered {
		preset = orderedPreset
	}
	return &docs.Request{
		CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
			Range:        &docs.Range{StartIndex: start, EndIndex: end},
			BulletPreset: preset,
		},
	}
}

func insertTableRequest(index int64, rows, cols int) *docs.Request {
	return &docs.Request{
		InsertTable: &docs.InsertTableRequest{
			Rows:     int64(rows),
			Columns:  int64(cols),
			Location: &docs.Location{Index: index},
		},
	}
}

// buildTableContent fills an empty table whose element starts at start.
// Each row and each cell opens with one structural index, and every empty
// cell already holds a paragraph break. It returns the cell inserts, the
// spans of styled cell text and the index just past the table.
func buildTableContent(t Table, start int64) ([]*docs.Request, []Span, int64) {
	var (
		inserts []*docs.Request
		spans   []Span
	)

	idx := start + 1
	for _, row := range t.Rows {
		idx++
		for _, cell := range row {
			idx++
			res := Resolve(cell, idx)
			if res.Text != "" {
				inserts = append(inserts, insertTextRequest(idx, res.Text))
				spans = append(spans, res.Spans...)
			}
			idx += UTF16Len(res.Text) + 1
		}
	}

	return inserts, spans, idx + 1
}
