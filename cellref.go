package xlbridge

import (
	"fmt"
	"strings"
)

// ColumnName converts a 1-based column index to its letter name.
// 1→"A", 26→"Z", 27→"AA".
func ColumnName(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// ColumnIndex converts a column letter name to its 1-based index.
// "A"→1, "Z"→26, "AA"→27.
func ColumnIndex(name string) (int, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	col := 0
	for _, ch := range name {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column name: %q", name)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col, nil
}
