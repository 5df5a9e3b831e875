// meta/meta.go
package meta

import "connectfour/game"

// MAX_TURNS bounds a game: every move fills one cell.
const MAX_TURNS = game.Rows * game.Columns

// PLY_DEPTH is the default search horizon in moves.
const PLY_DEPTH = 4

// GO_ROUTINES defines the number of goroutines used at the search root.
const GO_ROUTINES = 1

// GAMES is the default number of games per tournament matchup.
const GAMES = 50
