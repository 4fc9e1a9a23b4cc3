package entity

import (
	"fmt"
	"strings"

	"github.com/velhalabs/velha-bot/internal/apperror"
)

const (
	EmptyCell = ""

	PlayerX = "X"
	PlayerO = "O"

	// Outcome values reuse the player marks for a win; ResultTie and
	// ResultOngoing cover the other two cases.
	ResultTie     = "-"
	ResultOngoing = ""
)

// WinCombos are the 8 winning index triples: 3 rows, 3 columns, 2 diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is the 3x3 grid, row-major: index 0 is the top-left cell, 8 the
// bottom-right. The zero value is an empty board.
type Board [9]string

// LegalMoves returns every empty cell index in ascending order.
func (that *Board) LegalMoves() []int {
	moves := make([]int, 0, len(that))
	for cell, mark := range that {
		if mark == EmptyCell {
			moves = append(moves, cell)
		}
	}
	return moves
}

// OccupiedBy returns the indices currently holding the given mark.
func (that *Board) OccupiedBy(mark string) []int {
	cells := make([]int, 0, len(that))
	for cell, current := range that {
		if current == mark {
			cells = append(cells, cell)
		}
	}
	return cells
}

// Apply marks a cell for the given player. A cell is never overwritten:
// once set it stays set until a fresh board replaces this one.
func (that *Board) Apply(cell int, mark string) error {
	if cell < 0 || cell >= len(that) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that[cell] = mark

	return nil
}

// Outcome reports PlayerX or PlayerO on a win, ResultTie on a full board
// without a winner, ResultOngoing otherwise. X's lines are checked before
// O's; both winning at once is unreachable under alternating play.
func (that *Board) Outcome() string {
	if that.hasWon(PlayerX) {
		return PlayerX
	}

	if that.hasWon(PlayerO) {
		return PlayerO
	}

	if len(that.LegalMoves()) == 0 {
		return ResultTie
	}

	return ResultOngoing
}

func (that *Board) hasWon(mark string) bool {
	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}
	return false
}

// ToggleMark inverts the current mark: X becomes O and O becomes X.
func ToggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// String renders the grid for debug logs, underscores for empty cells.
func (that *Board) String() string {
	var builder strings.Builder
	for cell, mark := range that {
		if mark == EmptyCell {
			mark = "_"
		}
		builder.WriteString(mark)
		if cell%3 == 2 {
			builder.WriteByte('\n')
		} else {
			builder.WriteByte(' ')
		}
	}
	return builder.String()
}
