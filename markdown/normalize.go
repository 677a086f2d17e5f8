package markdown

import "strings"

// NormalizeOrderedLists rewrites blank-line runs that follow an ordered item
// so that list grouping in the document matches the visual grouping of the
// source. A single blank line between two ordered items is removed, joining
// them into one list. Any other run after an ordered item is collapsed to one
// blank line, which keeps the lists on either side apart.
func NormalizeOrderedLists(src string) string {
	if src == "" {
		return src
	}

	body, trailing := strings.CutSuffix(src, "\n")
	lines := strings.Split(body, "\n")

	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		out = append(out, lines[i])
		if !isOrderedLine(lines[i]) {
			continue
		}

		j := i + 1
		for j < len(lines) && isBlankLine(lines[j]) {
			j++
		}
		gap := j - (i + 1)
		if gap == 0 {
			continue
		}
		if gap > 1 || j >= len(lines) || !isOrderedLine(lines[j]) {
			out = append(out, "")
		}
		i = j - 1
	}

	result := strings.Join(out, "\n")
	if trailing {
		result += "\n"
	}
	return result
}

func isOrderedLine(line string) bool {
	return orderedRe.MatchString(strings.TrimSpace(line))
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
