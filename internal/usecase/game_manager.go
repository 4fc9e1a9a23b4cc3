package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/velhalabs/velha-bot/internal/entity"
)

const (
	msgChooseDifficulty = "Jogo da Velha - Escolha o nível de dificuldade"
	msgChooseSymbol     = "X sempre joga primeiro. Você quer jogar como X ou O?"
	msgDraw             = "Empate"
	msgWon              = "Você ganhou!"
	msgLost             = "Você perdeu!"

	noticeCellOccupied = "Escolha outra posição"
	noticeFinished     = "Partida terminada. Escolha recomeçar para jogar de novo"
	noticeUnsupported  = "Opção inválida nesta etapa"
)

type sessionRepo interface {
	GetOrCreate(playerID int64) *entity.Session
	Replace(playerID int64) *entity.Session
}

type botService interface {
	MakeTurn(session *entity.Session) (int, error)
}

// GameManager drives the per-player stage machine: menu navigation,
// human moves, the computer's replies and the outcome bookkeeping.
type GameManager struct {
	logger    *slog.Logger
	sessions  sessionRepo
	bot       botService
	presenter Presenter
}

func NewGameManager(logger *slog.Logger, sessions sessionRepo, bot botService, presenter Presenter) *GameManager {
	return &GameManager{
		logger:    logger,
		sessions:  sessions,
		bot:       bot,
		presenter: presenter,
	}
}

// HandleMessage answers any plain chat message with the menu or board
// for the session's current stage.
func (that *GameManager) HandleMessage(ctx context.Context, event PlayerMessage) error {
	session := that.sessions.GetOrCreate(event.PlayerID)
	session.Lock()
	defer session.Unlock()

	session.ChatID = event.ChatID
	session.Touch()

	return that.render(ctx, session)
}

// HandleChoice processes a pressed inline button. The returned notice,
// when non-empty, is shown to the player as a transient popup instead
// of an edit to the game message.
func (that *GameManager) HandleChoice(ctx context.Context, event MenuChoice) (string, error) {
	session := that.sessions.GetOrCreate(event.PlayerID)
	session.Lock()
	defer session.Unlock()

	if event.ChatID != 0 {
		session.ChatID = event.ChatID
	}
	session.Touch()

	if event.Token == TokenRestart {
		return "", that.restart(ctx, session)
	}

	switch session.Stage {
	case entity.StageChoosingDifficulty:
		return that.chooseDifficulty(ctx, session, event.Token)
	case entity.StageChoosingSymbol:
		return that.chooseSymbol(ctx, session, event.Token)
	case entity.StagePlaying:
		return that.playCell(ctx, session, event.Token)
	case entity.StageFinished:
		return noticeFinished, nil
	}

	return "", nil
}

// restart replaces the session wholesale, keeping only the presentation
// handle, and shows the difficulty menu again.
func (that *GameManager) restart(ctx context.Context, session *entity.Session) error {
	fresh := that.sessions.Replace(session.PlayerID)
	fresh.ChatID = session.ChatID

	that.logger.Debug("game restarted", "playerID", session.PlayerID, "gameID", fresh.GameID)

	return that.render(ctx, fresh)
}

func (that *GameManager) chooseDifficulty(ctx context.Context, session *entity.Session, token string) (string, error) {
	difficulty, ok := entity.ParseDifficulty(token)
	if !ok {
		return noticeUnsupported, nil
	}

	session.Difficulty = difficulty
	session.Stage = entity.StageChoosingSymbol

	return "", that.render(ctx, session)
}

func (that *GameManager) chooseSymbol(ctx context.Context, session *entity.Session, token string) (string, error) {
	if token != entity.PlayerX && token != entity.PlayerO {
		return noticeUnsupported, nil
	}

	session.AssignMarks(token)
	session.Stage = entity.StagePlaying

	// X opens, so a computer holding X moves before the board is shown.
	if session.ComputerMark == entity.PlayerX {
		if err := that.computerTurn(session); err != nil {
			return "", err
		}
	}

	return "", that.render(ctx, session)
}

func (that *GameManager) playCell(ctx context.Context, session *entity.Session, token string) (string, error) {
	cell, ok := parseCellToken(token)
	if !ok {
		return noticeUnsupported, nil
	}

	if !session.ApplyHumanMove(cell) {
		return noticeCellOccupied, nil
	}

	if err := that.resolveOutcome(session, false); err != nil {
		return "", err
	}

	return "", that.render(ctx, session)
}

// resolveOutcome runs after every move. While the game is ongoing a
// human move triggers the computer's reply; byComputer stops the
// computer from answering its own move. A decided game records the
// result from the human's perspective and finishes the session.
func (that *GameManager) resolveOutcome(session *entity.Session, byComputer bool) error {
	outcome := session.Board.Outcome()

	switch outcome {
	case entity.ResultOngoing:
		if !byComputer {
			return that.computerTurn(session)
		}
		return nil
	case entity.ResultTie:
		session.StatusMessage = msgDraw
	case session.HumanMark:
		session.StatusMessage = msgWon
	default:
		session.StatusMessage = msgLost
	}

	session.Stage = entity.StageFinished

	that.logger.Debug("game finished",
		"playerID", session.PlayerID,
		"gameID", session.GameID,
		"outcome", outcome,
		"board", session.Board.String(),
	)

	return nil
}

func (that *GameManager) computerTurn(session *entity.Session) error {
	cell, err := that.bot.MakeTurn(session)
	if err != nil {
		return fmt.Errorf("computer failed to move: %w", err)
	}

	that.logger.Debug("computer moved",
		"playerID", session.PlayerID,
		"gameID", session.GameID,
		"difficulty", session.Difficulty,
		"cell", cell,
	)

	return that.resolveOutcome(session, true)
}

func (that *GameManager) render(ctx context.Context, session *entity.Session) error {
	if err := that.presenter.Render(ctx, session, viewFor(session)); err != nil {
		return fmt.Errorf("failed to render session: %w", err)
	}

	return nil
}

func viewFor(session *entity.Session) View {
	switch session.Stage {
	case entity.StageChoosingDifficulty:
		return View{Text: msgChooseDifficulty, Menu: MenuDifficulty}
	case entity.StageChoosingSymbol:
		return View{Text: msgChooseSymbol, Menu: MenuSymbol}
	default:
		return View{Text: "Velha: " + session.StatusMessage, Menu: MenuBoard, Board: session.Board}
	}
}

// parseCellToken converts the 1-indexed button token to a board index.
func parseCellToken(token string) (int, bool) {
	if len(token) != 1 || token[0] < '1' || token[0] > '9' {
		return 0, false
	}
	return int(token[0] - '1'), true
}
