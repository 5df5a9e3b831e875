package game

import (
	"strconv"
	"strings"
)

// String renders the board top row first with a column index footer.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.grid[row][col].String())
		}
		sb.WriteByte('\n')
	}
	for col := 0; col < Columns; col++ {
		if col > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(col))
	}
	sb.WriteByte('\n')
	return sb.String()
}
