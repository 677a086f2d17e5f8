package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_PlainTextPassesThrough(t *testing.T) {
	res := Resolve("nothing to see here", 5)

	assert.Equal(t, "nothing to see here", res.Text)
	assert.Empty(t, res.Spans)
}

func TestResolve_Bold(t *testing.T) {
	res := Resolve("**bold**", 3)

	assert.Equal(t, "bold", res.Text)
	assert.Equal(t, []Span{{Style: StyleBold, Start: 3, End: 7}}, res.Spans)
}

func TestResolve_BoldItalic(t *testing.T) {
	res := Resolve("***both***", 1)

	assert.Equal(t, "both", res.Text)
	assert.Equal(t, []Span{
		{Style: StyleBold, Start: 1, End: 5},
		{Style: StyleItalic, Start: 1, End: 5},
	}, res.Spans)
}

func TestResolve_SpanAnchoredAtUnwrappedText(t *testing.T) {
	res := Resolve("Some **bold** text.", 7)

	assert.Equal(t, "Some bold text.", res.Text)
	assert.Equal(t, []Span{{Style: StyleBold, Start: 12, End: 16}}, res.Spans)
}

func TestResolve_OnlyFirstOccurrence(t *testing.T) {
	res := Resolve("**a** and **b**", 0)

	assert.Equal(t, "a and **b**", res.Text)
	assert.Equal(t, []Span{{Style: StyleBold, Start: 0, End: 1}}, res.Spans)
}

func TestResolve_BoldWinsOverItalic(t *testing.T) {
	res := Resolve("**a** _b_", 0)

	assert.Equal(t, "a _b_", res.Text)
	assert.Len(t, res.Spans, 1)
	assert.Equal(t, StyleBold, res.Spans[0].Style)
}

func TestResolve_StrikeIsIndependent(t *testing.T) {
	res := Resolve("_it_ and ~gone~", 0)

	assert.Equal(t, "it and gone", res.Text)
	assert.Equal(t, []Span{
		{Style: StyleItalic, Start: 0, End: 2},
		{Style: StyleStrike, Start: 7, End: 11},
	}, res.Spans)
}

func TestResolve_StrikeBeforeBoldShiftsBoldSpan(t *testing.T) {
	res := Resolve("~x~ **y**", 10)

	assert.Equal(t, "x y", res.Text)
	assert.Equal(t, []Span{
		{Style: StyleBold, Start: 12, End: 13},
		{Style: StyleStrike, Start: 10, End: 11},
	}, res.Spans)
}

func TestResolve_StrikeInsideBold(t *testing.T) {
	res := Resolve("**a ~b~ c**", 0)

	assert.Equal(t, "a b c", res.Text)
	assert.Equal(t, []Span{
		{Style: StyleBold, Start: 0, End: 5},
		{Style: StyleStrike, Start: 2, End: 3},
	}, res.Spans)
}

func TestResolve_UnterminatedMarker(t *testing.T) {
	res := Resolve("**open ended", 1)

	assert.Equal(t, "**open ended", res.Text)
	assert.Empty(t, res.Spans)
}

func TestResolve_TrimsInnerWhitespace(t *testing.T) {
	res := Resolve("say ** x ** now", 0)

	assert.Equal(t, "say x now", res.Text)
	assert.Equal(t, []Span{{Style: StyleBold, Start: 4, End: 5}}, res.Spans)
}

func TestResolve_BlankInnerTextHasNoSpan(t *testing.T) {
	res := Resolve("a ** ** b", 0)

	assert.Equal(t, "a  b", res.Text)
	assert.Empty(t, res.Spans)
}

func TestResolve_UTF16Offsets(t *testing.T) {
	res := Resolve("é **ü😀**", 1)

	assert.Equal(t, "é ü😀", res.Text)
	assert.Equal(t, []Span{{Style: StyleBold, Start: 3, End: 6}}, res.Spans)
}

func TestStyleRequests_StrikeStyle(t *testing.T) {
	spans := []Span{{Style: StyleStrike, Start: 1, End: 4}}

	through, err := StyleRequests(spans, StrikeThrough)
	assert.NoError(t, err)
	assert.Equal(t, "strikethrough", through[0].UpdateTextStyle.Fields)
	assert.True(t, through[0].UpdateTextStyle.TextStyle.Strikethrough)

	under, err := StyleRequests(spans, StrikeUnderline)
	assert.NoError(t, err)
	assert.Equal(t, "underline", under[0].UpdateTextStyle.Fields)
	assert.True(t, under[0].UpdateTextStyle.TextStyle.Underline)
}

func TestStyleRequests_UnknownStyle(t *testing.T) {
	_, err := StyleRequests([]Span{{Style: "code", Start: 1, End: 2}}, StrikeThrough)
	assert.Error(t, err)
}
