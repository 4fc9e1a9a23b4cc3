package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/velhalabs/velha-bot/internal/usecase"
)

type gameManager interface {
	HandleMessage(ctx context.Context, event usecase.PlayerMessage) error
	HandleChoice(ctx context.Context, event usecase.MenuChoice) (string, error)
}

// Server long-polls the Telegram API and turns updates into game events.
type Server struct {
	logger *slog.Logger
	bot    *tgbotapi.BotAPI
	games  gameManager

	pollTimeout int
}

func NewServer(logger *slog.Logger, bot *tgbotapi.BotAPI, games gameManager, pollTimeout int) *Server {
	return &Server{
		logger: logger,
		bot:    bot,
		games:  games,

		pollTimeout: pollTimeout,
	}
}

// Start - receives updates until ctx is canceled.
func (that *Server) Start(ctx context.Context) error {
	log := that.logger.With("component", "telegram")

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = that.pollTimeout

	updates := that.bot.GetUpdatesChan(updateConfig)

	log.Info("listening for updates", "bot", that.bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			that.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			that.dispatch(ctx, update)
		}
	}
}

func (that *Server) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		that.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		that.handleMessage(ctx, update.Message)
	}
}

func (that *Server) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	log := that.logger.With("method", "handleMessage")

	event := usecase.PlayerMessage{
		PlayerID: message.From.ID,
		ChatID:   message.Chat.ID,
	}

	if err := that.games.HandleMessage(ctx, event); err != nil {
		log.Error("failed to handle message", "playerID", event.PlayerID, "error", err)
	}
}

func (that *Server) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	log := that.logger.With("method", "handleCallback")

	event := usecase.MenuChoice{
		PlayerID: query.From.ID,
		Token:    query.Data,
	}
	if query.Message != nil {
		event.ChatID = query.Message.Chat.ID
	}

	notice, err := that.games.HandleChoice(ctx, event)
	if err != nil {
		log.Error("failed to handle choice", "playerID", event.PlayerID, "token", event.Token, "error", err)
	}

	// always answer, an unanswered query leaves the client spinner on
	if _, err = that.bot.Request(tgbotapi.NewCallback(query.ID, notice)); err != nil {
		log.Debug("failed to answer callback query", "error", err)
	}
}
