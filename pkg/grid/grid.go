// Package grid does the cell math for the desktop text console.
package grid

// GetGridCoords converts a linear cell index into column/row coordinates
// for a screen that is cols cells wide.
func GetGridCoords(index int, cols int) (x, y int) {
	return index % cols, index / cols
}

// WrapLine breaks a line into rows of at most cols runes. An empty line
// still occupies one row.
func WrapLine(line string, cols int) []string {
	if cols <= 0 {
		return []string{line}
	}
	runes := []rune(line)
	if len(runes) == 0 {
		return []string{""}
	}
	var rows []string
	for len(runes) > cols {
		rows = append(rows, string(runes[:cols]))
		runes = runes[cols:]
	}
	return append(rows, string(runes))
}
