package game

import (
	"fmt"
	"strings"
)

// Board is an immutable 8x8 grid, row 0 at the top. It is a plain array value,
// so every Board produced by Apply is independent of the one it came from and
// sibling positions can be explored from different goroutines.
type Board struct {
	grid [Rows][Columns]Cell
}

// NewBoard returns the empty board.
func NewBoard() Board {
	return Board{}
}

// ParseBoard builds a board from up to Rows strings, top row first, using
// '-' or '.' for empty, 'R' for red and 'B' for black. Missing top rows are
// empty. Pieces are taken as given: floating pieces are rejected.
func ParseBoard(rows ...string) (Board, error) {
	var b Board
	if len(rows) > Rows {
		return b, fmt.Errorf("board has %d rows, want at most %d", len(rows), Rows)
	}
	offset := Rows - len(rows)
	for i, line := range rows {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != Columns {
			return b, fmt.Errorf("row %d has %d cells, want %d", i, len(line), Columns)
		}
		for col, ch := range line {
			switch ch {
			case '-', '.':
				b.grid[offset+i][col] = Empty
			case 'R', 'r':
				b.grid[offset+i][col] = Red
			case 'B', 'b':
				b.grid[offset+i][col] = Black
			default:
				return b, fmt.Errorf("row %d: unknown cell %q", i, ch)
			}
		}
	}
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows-1; row++ {
			if b.grid[row][col] != Empty && b.grid[row+1][col] == Empty {
				return b, fmt.Errorf("floating piece at row %d column %d", row, col)
			}
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard for fixtures known to be valid.
func MustParseBoard(rows ...string) Board {
	b, err := ParseBoard(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

// At returns the cell at (row, col). Out of range coordinates read as Empty.
func (b Board) At(row, col int) Cell {
	if !inBounds(row, col) {
		return Empty
	}
	return b.grid[row][col]
}

// IsOpen reports whether a piece can still be dropped into col.
func (b Board) IsOpen(col int) bool {
	return col >= 0 && col < Columns && b.grid[0][col] == Empty
}

// LegalMoves returns the open columns in ascending order.
func (b Board) LegalMoves() []int {
	moves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.grid[0][col] == Empty {
			moves = append(moves, col)
		}
	}
	return moves
}

// Height returns how many pieces are stacked in col.
func (b Board) Height(col int) int {
	height := 0
	for row := Rows - 1; row >= 0 && b.grid[row][col] != Empty; row-- {
		height++
	}
	return height
}

// Count returns the number of occupied cells.
func (b Board) Count() int {
	n := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b.grid[row][col] != Empty {
				n++
			}
		}
	}
	return n
}

// IsFull reports whether every column is closed.
func (b Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if b.grid[0][col] == Empty {
			return false
		}
	}
	return true
}

// Apply drops color into col and returns the resulting board. The receiver
// is never modified.
func (b Board) Apply(col int, color Color) (Board, error) {
	if col < 0 || col >= Columns {
		return b, fmt.Errorf("%w: column %d out of range [0,%d)", ErrInvalidMove, col, Columns)
	}
	if !color.IsColor() {
		return b, fmt.Errorf("%w: %v", ErrInvalidColor, color)
	}
	height := b.Height(col)
	if height == Rows {
		return b, fmt.Errorf("%w: column %d", ErrColumnFull, col)
	}
	next := b
	next.grid[Rows-1-height][col] = color
	return next, nil
}

// Mirror returns the board with every red piece turned black and vice versa.
func (b Board) Mirror() Board {
	var m Board
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			m.grid[row][col] = b.grid[row][col].Opponent()
		}
	}
	return m
}

// Key encodes the board as Rows*Columns characters, row-major from the top.
func (b Board) Key() string {
	var sb strings.Builder
	sb.Grow(Rows * Columns)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			sb.WriteString(b.grid[row][col].String())
		}
	}
	return sb.String()
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}
