package game

import "fmt"

const (
	Rows    = 8
	Columns = 8
	ToWin   = 4
)

// NoMove is the column reported when no move was chosen (search leaves, full boards).
const NoMove = -1

// Cell is the content of one board square.
type Cell uint8

const (
	Empty Cell = iota
	Red
	Black
)

// Color is the cell a player drops. Only Red and Black are valid colors.
type Color = Cell

func (c Cell) String() string {
	switch c {
	case Empty:
		return "-"
	case Red:
		return "R"
	case Black:
		return "B"
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// Name is the long form used in logs and reports.
func (c Cell) Name() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "empty"
	}
}

// IsColor reports whether c can be placed on a board.
func (c Cell) IsColor() bool {
	return c == Red || c == Black
}

// Opponent returns the other color. Empty has no opponent and is returned unchanged.
func (c Cell) Opponent() Cell {
	switch c {
	case Red:
		return Black
	case Black:
		return Red
	default:
		return c
	}
}

// Error is a constant error kind so callers can match with errors.Is.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove  Error = "invalid move"
	ErrColumnFull   Error = "column is full"
	ErrNoLegalMove  Error = "no legal move"
	ErrInvalidColor Error = "invalid color"
)
