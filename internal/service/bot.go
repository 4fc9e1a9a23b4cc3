package service

import (
	"fmt"
	"math/rand"

	"github.com/velhalabs/velha-bot/internal/apperror"
	"github.com/velhalabs/velha-bot/internal/entity"
	"github.com/velhalabs/velha-bot/internal/tictactoe"
)

type BotService interface {
	MakeTurn(session *entity.Session) (int, error)
}

type botService struct {
	rng *rand.Rand
}

// NewBotService builds the computer player. The random source is
// injected so tests can seed it.
func NewBotService(rng *rand.Rand) BotService {
	return &botService{
		rng: rng,
	}
}

// MakeTurn picks a cell for the computer according to the session's
// difficulty, applies it and returns the chosen cell.
func (that *botService) MakeTurn(session *entity.Session) (int, error) {
	legalMoves := session.Board.LegalMoves()
	if len(legalMoves) == 0 {
		return 0, apperror.ErrNoLegalMoves
	}

	cell := that.pickCell(session, legalMoves)

	if err := session.Board.Apply(cell, session.ComputerMark); err != nil {
		return 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	session.Touch()

	return cell, nil
}

// pickCell implements the difficulty policy. The opening move of a game
// is always random, so the computer does not start every game in the
// center; easy stays random for the whole game. Medium and hard search
// the game tree 2 and 9 plies deep, breaking score ties at random.
func (that *botService) pickCell(session *entity.Session, legalMoves []int) int {
	if len(legalMoves) == len(session.Board) || session.Difficulty == entity.DifficultyEasy {
		return legalMoves[that.rng.Intn(len(legalMoves))]
	}

	bestMoves := tictactoe.BestMoves(session.Board, session.ComputerMark, session.Difficulty.MaxDepth())
	if len(bestMoves) == 0 {
		// nothing decidable within the horizon, play like easy does
		return legalMoves[that.rng.Intn(len(legalMoves))]
	}

	return bestMoves[that.rng.Intn(len(bestMoves))]
}
