package markdown

import "testing"

func TestBuildHeadingRequests(t *testing.T) {
	reqs, newIndex, err := buildHeadingRequests(1, 2, "Hi")
	if err != nil {
		t.Fatalf("buildHeadingRequests() error: %v", err)
	}
	if newIndex != 4 {
		t.Fatalf("newIndex=%d, want 4", newIndex)
	}
	if len(reqs) != 2 {
		t.Fatalf("len(reqs)=%d, want 2", len(reqs))
	}
	if reqs[0].InsertText == nil || reqs[0].InsertText.Location.Index != 1 || reqs[0].InsertText.Text != "Hi\n" {
		t.Fatalf("unexpected insertText request: %#v", reqs[0].InsertText)
	}
	if reqs[1].UpdateParagraphStyle == nil || reqs[1].UpdateParagraphStyle.ParagraphStyle.NamedStyleType != "HEADING_2" {
		t.Fatalf("unexpected paragraph style request: %#v", reqs[1].UpdateParagraphStyle)
	}
}

func TestBuildHeadingRequests_LevelOutOfRange(t *testing.T) {
	for _, level := range []int{0, 7} {
		if _, _, err := buildHeadingRequests(1, level, "x"); err == nil {
			t.Fatalf("level %d: expected error", level)
		}
	}
}

func TestBuildQuoteRequests_IndentByDepth(t *testing.T) {
	reqs, newIndex := buildQuoteRequests(10, 2, "q", 18)
	if newIndex != 12 {
		t.Fatalf("newIndex=%d, want 12", newIndex)
	}
	style := reqs[1].UpdateParagraphStyle
	if style == nil || style.Fields != "indentStart" {
		t.Fatalf("unexpected paragraph style request: %#v", style)
	}
	if got := style.ParagraphStyle.IndentStart.Magnitude; got != 36 {
		t.Fatalf("indent=%v, want 36", got)
	}
}

func TestBuildLinkRequests_NoTrailingNewline(t *testing.T) {
	reqs, newIndex := buildLinkRequests(1, "Go", "https://go.dev")
	if newIndex != 3 {
		t.Fatalf("newIndex=%d, want 3", newIndex)
	}
	if reqs[0].InsertText.Text != "Go" {
		t.Fatalf("inserted %q, want %q", reqs[0].InsertText.Text, "Go")
	}
	link := reqs[1].UpdateTextStyle
	if link == nil || link.TextStyle.Link == nil || link.TextStyle.Link.Url != "https://go.dev" {
		t.Fatalf("unexpected link request: %#v", link)
	}
	if link.Range.StartIndex != 1 || link.Range.EndIndex != 3 {
		t.Fatalf("unexpected link range: %#v", link.Range)
	}
}

func TestBuildRuleRequests(t *testing.T) {
	reqs, newIndex := buildRuleRequests(5)
	if newIndex != 6 {
		t.Fatalf("newIndex=%d, want 6", newIndex)
	}
	if reqs[0].InsertText.Text != "\n" {
		t.Fatalf("inserted %q, want newline", reqs[0].InsertText.Text)
	}
	style := reqs[1].UpdateParagraphStyle
	if style == nil || style.ParagraphStyle.BorderBottom == nil || style.Fields != "borderBottom" {
		t.Fatalf("unexpected border request: %#v", style)
	}
	if style.Range.StartIndex != 5 || style.Range.EndIndex != 6 {
		t.Fatalf("unexpected border range: %#v", style.Range)
	}
}

func TestBulletsRequest_Preset(t *testing.T) {
	if got := bulletsRequest(1, 5, BlockBullet).CreateParagraphBullets.BulletPreset; got != bulletPreset {
		t.Fatalf("bullet preset=%q", got)
	}
	if got := bulletsRequest(1, 5, BlockOrdered).CreateParagraphBullets.BulletPreset; got != orderedPreset {
		t.Fatalf("ordered preset=%q", got)
	}
}

func TestBuildTableContent_CellIndices(t *testing.T) {
	table := Table{Rows: [][]string{{"ab", ""}, {"c", "d"}}}

	inserts, spans, end := buildTableContent(table, 10)
	if len(spans) != 0 {
		t.Fatalf("unexpected spans: %#v", spans)
	}

	want := []struct {
		index int64
		text  string
	}{
		{13, "ab"},
		{20, "c"},
		{23, "d"},
	}
	if len(inserts) != len(want) {
		t.Fatalf("len(inserts)=%d, want %d", len(inserts), len(want))
	}
	for i, w := range want {
		got := inserts[i].InsertText
		if got.Location.Index != w.index || got.Text != w.text {
			t.Fatalf("insert %d = %d %q, want %d %q", i, got.Location.Index, got.Text, w.index, w.text)
		}
	}
	if end != 26 {
		t.Fatalf("end=%d, want 26", end)
	}
}
