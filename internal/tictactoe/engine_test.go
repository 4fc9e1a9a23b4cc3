package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velhalabs/velha-bot/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func TestBestScore(t *testing.T) {
	// Given: a synthetic score map with a tie at the top
	scores := map[int]int{0: 5, 1: -3, 2: 5}

	t.Run("X always takes the maximum", func(t *testing.T) {
		require.Equal(t, 5, BestScore(scores, entity.PlayerX))
	})

	t.Run("O always takes the minimum", func(t *testing.T) {
		require.Equal(t, -3, BestScore(scores, entity.PlayerO))
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("Immediate win scores relative to depth", func(t *testing.T) {
		// Given: X threatens the top row
		board := entity.Board{x, x, e, o, o, e, e, e, e}

		// When: evaluating one ply for X
		scores := Evaluate(&board, entity.PlayerX, 0, 0)

		// Then: completing the row scores 10 - 0
		require.Contains(t, scores, 2)
		assert.Equal(t, 10, scores[2])
	})

	t.Run("Zero horizon leaves undecided moves unscored", func(t *testing.T) {
		// Given: an empty board, no immediate win anywhere
		board := entity.Board{}

		// When: evaluating with maxDepth 0
		scores := Evaluate(&board, entity.PlayerX, 0, 0)

		// Then: nothing is visible within the horizon
		require.Empty(t, scores)
	})

	t.Run("Draw moves are omitted from the result", func(t *testing.T) {
		// Given: one empty cell whose fill draws the game
		board := entity.Board{x, o, x, x, o, o, o, x, e}

		// When: evaluating for X (cell 8 completes no line for X)
		scores := Evaluate(&board, entity.PlayerX, 0, 9)

		// Then: the drawing move carries no score
		require.Empty(t, scores)
	})

	t.Run("The scratch board is restored after the search", func(t *testing.T) {
		// Given: a mid-game position
		board := entity.Board{x, x, e, e, o, e, e, e, e}
		before := board

		// When: running a full-depth evaluation
		Evaluate(&board, entity.PlayerO, 0, 9)

		// Then: every speculative move was undone
		require.Equal(t, before, board)
	})
}

func TestBestMoves(t *testing.T) {
	t.Run("O blocks X's immediate win", func(t *testing.T) {
		// Given: X has two in the top row, O holds the center
		board := entity.Board{x, x, e, e, o, e, e, e, e}

		// When: O searches two plies deep
		moves := BestMoves(board, entity.PlayerO, 2)

		// Then: blocking cell 2 is the only best move
		require.Equal(t, []int{2}, moves)
	})

	t.Run("X takes the win over blocking", func(t *testing.T) {
		// Given: both sides threaten a row, X to move
		board := entity.Board{x, x, e, o, o, e, e, e, e}

		// When: X searches the full tree
		moves := BestMoves(board, entity.PlayerX, 9)

		// Then: X completes its own row instead of blocking O
		require.Equal(t, []int{2}, moves)
	})

	t.Run("Ties at the best score are all reported in ascending order", func(t *testing.T) {
		// Given: X holds 0, 1 and 4, with three immediate wins open
		board := entity.Board{x, x, e, o, x, o, e, e, e}

		// When: X searches one ply
		moves := BestMoves(board, entity.PlayerX, 0)

		// Then: the row, column and diagonal completions all tie
		require.Equal(t, []int{2, 7, 8}, moves)
	})

	t.Run("Empty when nothing is decidable within the horizon", func(t *testing.T) {
		// Given: an empty board and no search budget
		moves := BestMoves(entity.Board{}, entity.PlayerX, 0)

		// Then: the caller must fall back to another policy
		require.Empty(t, moves)
	})
}
