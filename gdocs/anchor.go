package gdocs

import (
	"encoding/json"
	"sort"
	"strings"

	"md2gdocs/markdown"
)

func sortedOutline(outline []markdown.Heading) []markdown.Heading {
	out := make([]markdown.Heading, len(outline))
	copy(out, outline)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// sectionAt returns the last heading starting at or before index.
func sectionAt(index int64, outline []markdown.Heading) *markdown.Heading {
	i := sort.Search(len(outline), func(i int) bool { return outline[i].Index > index }) - 1
	if i < 0 {
		return nil
	}
	h := outline[i]
	return &h
}

// parseAnchorStartEnd reads a document range from a comment anchor. Anchors
// written by the Docs editor are opaque ids and yield ok=false.
func parseAnchorStartEnd(anchorJSON string) (start int64, end int64, ok bool) {
	if strings.TrimSpace(anchorJSON) == "" {
		return 0, 0, false
	}

	var v any
	dec := json.NewDecoder(strings.NewReader(anchorJSON))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return 0, 0, false
	}

	start, end, ok = findStartEndInJSON(v)
	if !ok {
		return 0, 0, false
	}
	if end < start {
		end = start
	}
	return start, end, true
}

func findStartEndInJSON(v any) (start int64, end int64, ok bool) {
	switch t := v.(type) {
	case map[string]any:
		if s, okS := jsonIntForKeys(t, "startIndex", "start", "s"); okS {
			if e, okE := jsonIntForKeys(t, "endIndex", "end", "e"); okE {
				return s, e, true
			}
		}
		for _, vv := range t {
			if s, e, ok := findStartEndInJSON(vv); ok {
				return s, e, ok
			}
		}
	case []any:
		for _, vv := range t {
			if s, e, ok := findStartEndInJSON(vv); ok {
				return s, e, ok
			}
		}
	}
	return 0, 0, false
}

func jsonIntForKeys(m map[string]any, keys ...string) (int64, bool) {
	for _, k := range keys {
		n, ok := m[k].(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	}
	return 0, false
}
