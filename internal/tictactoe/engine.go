package tictactoe

import (
	"sort"

	"github.com/velhalabs/velha-bot/internal/entity"
)

// Win scores are taken relative to the search horizon: a win found at
// depth d is worth winScore-d, so faster wins and slower losses score
// better. This is a heuristic value, not a game-theoretic one.
const winScore = 10

// Evaluate scores one ply of play: every legal move for player on board
// maps to an integer, positive when the line favors X and negative when
// it favors O. Moves whose outcome stays undecided within maxDepth, and
// moves that end in a draw, are left out of the map.
//
// The board is used as a shared scratch space: each candidate move is
// applied, explored and undone before the next one, so the whole search
// allocates no per-node copies. The board is restored on return.
func Evaluate(board *entity.Board, player string, depth, maxDepth int) map[int]int {
	scores := make(map[int]int)

	for _, cell := range board.LegalMoves() {
		board[cell] = player

		switch outcome := board.Outcome(); {
		case outcome == entity.PlayerX:
			scores[cell] = winScore - depth
		case outcome == entity.PlayerO:
			scores[cell] = -(winScore - depth)
		case outcome == entity.ResultOngoing && depth < maxDepth:
			opponent := entity.ToggleMark(player)
			if nested := Evaluate(board, opponent, depth+1, maxDepth); len(nested) > 0 {
				scores[cell] = BestScore(nested, opponent)
			} else {
				// nothing decidable below this move either way
				scores[cell] = 0
			}
		}

		board[cell] = entity.EmptyCell
	}

	return scores
}

// BestScore reduces a score map to the value the player would pick: the
// maximum for X, the minimum for O. The map must be non-empty.
func BestScore(scores map[int]int, player string) int {
	var best int

	first := true
	for _, score := range scores {
		if first {
			best = score
			first = false
			continue
		}

		if player == entity.PlayerX && score > best {
			best = score
		}

		if player == entity.PlayerO && score < best {
			best = score
		}
	}

	return best
}

// BestMoves returns every cell tied at the player's best score, in
// ascending order. The result is empty when no move reaches a decided
// outcome within maxDepth; callers must fall back to another policy.
func BestMoves(board entity.Board, player string, maxDepth int) []int {
	scores := Evaluate(&board, player, 0, maxDepth)
	if len(scores) == 0 {
		return nil
	}

	best := BestScore(scores, player)

	moves := make([]int, 0, len(scores))
	for cell, score := range scores {
		if score == best {
			moves = append(moves, cell)
		}
	}
	sort.Ints(moves)

	return moves
}
