package usecase

import (
	"context"

	"github.com/velhalabs/velha-bot/internal/entity"
)

// TokenRestart is honored in every stage and starts a brand-new game.
const TokenRestart = "recomecar"

// Menu identifies which inline keyboard a view carries.
type Menu string

const (
	MenuDifficulty Menu = "difficulty"
	MenuSymbol     Menu = "symbol"
	MenuBoard      Menu = "board"
)

// View is the content descriptor handed to the presentation layer: a
// status line plus the menu shape to draw under it.
type View struct {
	Text  string
	Menu  Menu
	Board entity.Board
}

// PlayerMessage is a plain chat message from a player.
type PlayerMessage struct {
	PlayerID int64
	ChatID   int64
}

// MenuChoice is a pressed inline button: a difficulty token, a mark, a
// cell digit "1".."9" or TokenRestart.
type MenuChoice struct {
	PlayerID int64
	ChatID   int64
	Token    string
}

// Presenter renders a session's current view, sending a new message the
// first time and editing it in place afterwards. Implementations must
// tolerate edit failures without surfacing them: the in-memory session
// is authoritative regardless of what the remote chat shows.
type Presenter interface {
	Render(ctx context.Context, session *entity.Session, view View) error
}
