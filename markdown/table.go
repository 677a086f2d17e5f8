package markdown

import (
	"fmt"
	"strings"
)

// Table is a grid of cell strings, rows outer.
type Table struct {
	Rows [][]string
}

func (t Table) NumRows() int { return len(t.Rows) }

func (t Table) NumCols() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// ParseTable parses a run of pipe-delimited lines. The second line is the
// header separator and is dropped. Every row must have as many cells as the
// header.
func ParseTable(lines []string) (Table, error) {
	var t Table
	for i, line := range lines {
		if i == 1 {
			continue
		}
		t.Rows = append(t.Rows, splitRow(line))
	}

	if len(t.Rows) == 0 {
		return Table{}, inputError(ErrMalformedTable, CodeMalformedTable, "table has no rows")
	}
	cols := t.NumCols()
	if cols == 0 {
		return Table{}, inputError(ErrMalformedTable, CodeMalformedTable, "table header has no cells")
	}
	for i, row := range t.Rows {
		if len(row) != cols {
			return Table{}, inputError(ErrMalformedTable, CodeMalformedTable,
				fmt.Sprintf("table row %d has %d cells, header has %d", i+1, len(row), cols))
		}
	}

	return t, nil
}

func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	parts := strings.Split(line, "|")
	if len(parts) < 2 {
		return nil
	}
	parts = parts[1 : len(parts)-1]

	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
