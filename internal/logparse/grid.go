package logparse

import "strings"

// Grid is a rectangular sheet of raw cell values addressed by zero-based
// row and column. Rows may be ragged; missing cells read as blank.
type Grid [][]string

// Cell returns the trimmed value at (row, col) and whether it is present.
// Blank cells, out-of-range cells and pandas-style "nan" placeholders are
// not present.
func (g Grid) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return "", false
	}
	v := strings.TrimSpace(g[row][col])
	if v == "" || strings.EqualFold(v, "nan") {
		return "", false
	}
	return v, true
}

// Text returns the trimmed value at (row, col), or "" when absent.
func (g Grid) Text(row, col int) string {
	v, _ := g.Cell(row, col)
	return v
}
