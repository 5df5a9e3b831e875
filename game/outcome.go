package game

// Outcome is the result of a board: still being played, won by one color, or drawn.
type Outcome int

const (
	Ongoing Outcome = iota
	RedWin
	BlackWin
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case RedWin:
		return "red wins"
	case BlackWin:
		return "black wins"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the game is over.
func (o Outcome) IsTerminal() bool {
	return o != Ongoing
}

// Winner returns the winning color, if any.
func (o Outcome) Winner() (Color, bool) {
	switch o {
	case RedWin:
		return Red, true
	case BlackWin:
		return Black, true
	default:
		return Empty, false
	}
}

// WinFor is the outcome in which color wins.
func WinFor(color Color) Outcome {
	if color == Black {
		return BlackWin
	}
	return RedWin
}

// Direction is a unit step across the grid.
type Direction struct {
	Name  string
	DRow  int
	DCol  int
	Index int
}

// Scan directions in the order wins are checked: vertical, horizontal,
// rising diagonal ("+") and falling diagonal ("-").
var (
	Vertical   = Direction{Name: "vertical", DRow: 1, DCol: 0, Index: 0}
	Horizontal = Direction{Name: "horizontal", DRow: 0, DCol: 1, Index: 1}
	Rising     = Direction{Name: "diagonal+", DRow: -1, DCol: 1, Index: 2}
	Falling    = Direction{Name: "diagonal-", DRow: 1, DCol: 1, Index: 3}

	Directions = [...]Direction{Vertical, Horizontal, Rising, Falling}
)

// Outcome reports a win if some color has ToWin pieces in a line, a draw if
// the board is full, and Ongoing otherwise. The win check runs first, so a
// full board holding a line is reported as a win.
func (b Board) Outcome() Outcome {
	for _, dir := range Directions {
		for row := 0; row < Rows; row++ {
			for col := 0; col < Columns; col++ {
				cell := b.grid[row][col]
				if cell == Empty {
					continue
				}
				if b.lineLength(row, col, dir, cell) >= ToWin {
					return WinFor(cell)
				}
			}
		}
	}
	if b.Count() == Rows*Columns {
		return Draw
	}
	return Ongoing
}

// lineLength counts consecutive cells equal to color starting at (row, col)
// and stepping along dir, stopping at ToWin.
func (b Board) lineLength(row, col int, dir Direction, color Cell) int {
	n := 0
	for n < ToWin && inBounds(row, col) && b.grid[row][col] == color {
		n++
		row += dir.DRow
		col += dir.DCol
	}
	return n
}
