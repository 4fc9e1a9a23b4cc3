package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/velhalabs/velha-bot/internal/entity"
	"github.com/velhalabs/velha-bot/internal/usecase"
)

// Presenter draws the game as a single inline-keyboard message per
// player, edited in place as the state changes.
type Presenter struct {
	logger *slog.Logger
	bot    *tgbotapi.BotAPI
}

func NewPresenter(logger *slog.Logger, bot *tgbotapi.BotAPI) *Presenter {
	return &Presenter{
		logger: logger,
		bot:    bot,
	}
}

// Render sends the view to the player's chat. The first render sends a
// new message and stores its ID in the session; later renders edit that
// message. Edit failures are swallowed: the message may already show
// the expected state, and the in-memory session stays authoritative.
func (that *Presenter) Render(_ context.Context, session *entity.Session, view usecase.View) error {
	markup := markupFor(view)

	if !session.HasHandle() {
		message := tgbotapi.NewMessage(session.ChatID, view.Text)
		message.ReplyMarkup = markup

		sent, err := that.bot.Send(message)
		if err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
		session.MessageID = sent.MessageID

		return nil
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(session.ChatID, session.MessageID, view.Text, markup)
	if _, err := that.bot.Send(edit); err != nil {
		that.logger.Debug("failed to edit message", "chatID", session.ChatID, "messageID", session.MessageID, "error", err)
	}

	return nil
}

func markupFor(view usecase.View) tgbotapi.InlineKeyboardMarkup {
	switch view.Menu {
	case usecase.MenuDifficulty:
		return difficultyMenu()
	case usecase.MenuSymbol:
		return symbolMenu()
	default:
		return boardMenu(view.Board)
	}
}

func difficultyMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Fácil", string(entity.DifficultyEasy)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Médio", string(entity.DifficultyMedium)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Difícil", string(entity.DifficultyHard)),
		),
	)
}

func symbolMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(entity.PlayerX, entity.PlayerX),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(entity.PlayerO, entity.PlayerO),
		),
	)
}

// boardMenu lays the grid out as three rows of three cells plus a
// restart row. Cell buttons carry 1-indexed tokens "1".."9".
func boardMenu(board entity.Board) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, 4)

	for row := 0; row < 3; row++ {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, 3)
		for col := 0; col < 3; col++ {
			cell := row*3 + col

			label := board[cell]
			if label == entity.EmptyCell {
				label = " " // Telegram rejects empty button text
			}

			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(label, strconv.Itoa(cell+1)))
		}
		rows = append(rows, buttons)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Recomeçar", usecase.TokenRestart),
	))

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}
