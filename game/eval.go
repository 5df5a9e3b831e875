package game

import "fmt"

// Score is a heuristic utility. Positive values favor red, negative favor black.
type Score int

const (
	// MinRun and MaxRun bound the run lengths that earn points.
	MinRun = 2
	MaxRun = ToWin

	numDirections = len(Directions)
)

// ScoreTable holds the points for a run of exactly L same-colored cells,
// indexed by Direction.Index and L.
type ScoreTable struct {
	Name   string
	Points [numDirections][MaxRun + 1]Score
}

// PointsFor returns the points for an isolated run of length n along dir.
func (t ScoreTable) PointsFor(dir Direction, n int) Score {
	if n < MinRun || n > MaxRun {
		return 0
	}
	return t.Points[dir.Index][n]
}

func uniformTable(name string, two, three, four Score) ScoreTable {
	t := ScoreTable{Name: name}
	for d := range t.Points {
		t.Points[d][2] = two
		t.Points[d][3] = three
		t.Points[d][4] = four
	}
	return t
}

var (
	// StandardScores awards 10, 50 and 100 points for runs of two, three and
	// four in every direction.
	StandardScores = uniformTable("standard", 10, 50, 100)

	// LegacyScores is the older table where horizontal and vertical runs of
	// four earn 50 rather than 100. It only reproduces the older point
	// values: every run is still scanned once in each direction, so
	// horizontal threes are not counted twice and vertical threes score 50.
	LegacyScores = func() ScoreTable {
		t := uniformTable("legacy", 10, 50, 100)
		t.Points[Horizontal.Index][4] = 50
		t.Points[Vertical.Index][4] = 50
		return t
	}()
)

// ScoreTableByName resolves "standard" or "legacy".
func ScoreTableByName(name string) (ScoreTable, error) {
	switch name {
	case "", StandardScores.Name:
		return StandardScores, nil
	case LegacyScores.Name:
		return LegacyScores, nil
	}
	return ScoreTable{}, fmt.Errorf("unknown score table %q", name)
}

// Evaluate scores a board from red's point of view.
type Evaluate func(Board) Score

// EvaluateWith returns the Utility function for table.
func EvaluateWith(table ScoreTable) Evaluate {
	return func(b Board) Score {
		return Utility(b, table)
	}
}

// Utility is red's run score minus black's run score.
func Utility(b Board, table ScoreTable) Score {
	return ColorScore(b, Red, table) - ColorScore(b, Black, table)
}

// ColorScore slides a window of every scoring length along every direction
// and adds the table points for each window filled with color whose
// neighbors on both ends (when on the board) are not color. A run is thus
// scored once, at its exact length; runs longer than MaxRun score nothing.
func ColorScore(b Board, color Color, table ScoreTable) Score {
	var score Score
	for _, dir := range Directions {
		for n := MinRun; n <= MaxRun; n++ {
			points := table.Points[dir.Index][n]
			if points == 0 {
				continue
			}
			for row := 0; row < Rows; row++ {
				for col := 0; col < Columns; col++ {
					if b.isolatedRun(row, col, dir, n, color) {
						score += points
					}
				}
			}
		}
	}
	return score
}

// isolatedRun reports whether the n cells starting at (row, col) along dir
// all hold color and the cells just before and just after them do not.
func (b Board) isolatedRun(row, col int, dir Direction, n int, color Color) bool {
	endRow, endCol := row+(n-1)*dir.DRow, col+(n-1)*dir.DCol
	if !inBounds(row, col) || !inBounds(endRow, endCol) {
		return false
	}
	for i := 0; i < n; i++ {
		if b.grid[row+i*dir.DRow][col+i*dir.DCol] != color {
			return false
		}
	}
	beforeRow, beforeCol := row-dir.DRow, col-dir.DCol
	if inBounds(beforeRow, beforeCol) && b.grid[beforeRow][beforeCol] == color {
		return false
	}
	afterRow, afterCol := endRow+dir.DRow, endCol+dir.DCol
	if inBounds(afterRow, afterCol) && b.grid[afterRow][afterCol] == color {
		return false
	}
	return true
}
