package entity

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Stage is the lifecycle position of a session, from the difficulty menu
// through active play to the finished screen.
type Stage string

const (
	StageChoosingDifficulty Stage = "choosing_difficulty"
	StageChoosingSymbol     Stage = "choosing_symbol"
	StagePlaying            Stage = "playing"
	StageFinished           Stage = "finished"
)

// Difficulty carries the menu callback token directly; the UI speaks
// Portuguese, so do the tokens.
type Difficulty string

const (
	DifficultyNone   Difficulty = ""
	DifficultyEasy   Difficulty = "facil"
	DifficultyMedium Difficulty = "medio"
	DifficultyHard   Difficulty = "dificil"
)

// ParseDifficulty maps a menu token to a difficulty level.
func ParseDifficulty(token string) (Difficulty, bool) {
	switch difficulty := Difficulty(token); difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return difficulty, true
	default:
		return DifficultyNone, false
	}
}

// MaxDepth is the minimax search horizon for the level. Easy skips the
// search entirely, hard explores the full game tree.
func (that Difficulty) MaxDepth() int {
	switch that {
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 9
	default:
		return 0
	}
}

const (
	MsgGreeting     = "Olá!"
	MsgMoveAccepted = "OK"
	MsgCellOccupied = "Você já jogou nesta posição, escolha outra"
)

// Session is the complete per-player in-memory game state: the board,
// the stage machine position and the handle of the Telegram message
// being edited in place. One session exists per player at a time.
type Session struct {
	mu sync.Mutex

	PlayerID int64
	GameID   string

	Board        Board
	Stage        Stage
	Difficulty   Difficulty
	HumanMark    string
	ComputerMark string

	StatusMessage string
	LastActivity  time.Time

	// Presentation handle; MessageID 0 means nothing was sent yet.
	ChatID    int64
	MessageID int
}

func NewSession(playerID int64) *Session {
	return &Session{
		PlayerID:      playerID,
		GameID:        uuid.NewString(),
		Stage:         StageChoosingDifficulty,
		HumanMark:     PlayerX,
		ComputerMark:  PlayerO,
		StatusMessage: MsgGreeting,
		LastActivity:  time.Now(),
	}
}

// Lock serializes event handling on this session. Players send one event
// at a time in practice; the lock makes that assumption load-bearing.
func (that *Session) Lock() { that.mu.Lock() }

// TryLock is used by the idle sweep so it never blocks behind an
// in-flight event.
func (that *Session) TryLock() bool { return that.mu.TryLock() }

func (that *Session) Unlock() { that.mu.Unlock() }

// Touch records player activity for idle eviction.
func (that *Session) Touch() {
	that.LastActivity = time.Now()
}

// IdleFor reports how long the session has been without activity.
func (that *Session) IdleFor(now time.Time) time.Duration {
	return now.Sub(that.LastActivity)
}

// AssignMarks sets the human's mark and gives the computer the
// complementary one. X always moves first, whichever side holds it.
func (that *Session) AssignMarks(humanMark string) {
	that.HumanMark = humanMark
	that.ComputerMark = ToggleMark(humanMark)
}

// ApplyHumanMove plays the human's mark at the given cell. An occupied
// cell fails softly: the board is untouched and the status message asks
// for another position.
func (that *Session) ApplyHumanMove(cell int) bool {
	that.Touch()

	if err := that.Board.Apply(cell, that.HumanMark); err != nil {
		that.StatusMessage = MsgCellOccupied
		return false
	}

	that.StatusMessage = MsgMoveAccepted

	return true
}

// HasHandle reports whether a Telegram message was already sent for this
// session and can be edited in place.
func (that *Session) HasHandle() bool {
	return that.MessageID != 0
}
