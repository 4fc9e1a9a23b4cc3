package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/velhalabs/velha-bot/internal/config"
	"github.com/velhalabs/velha-bot/internal/repository"
	"github.com/velhalabs/velha-bot/internal/service"
	"github.com/velhalabs/velha-bot/internal/usecase"
	"github.com/velhalabs/velha-bot/transport/telegram"
)

var ErrTokenNotFound = errors.New("telegram bot token is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	if conf.Telegram.BotToken == "" {
		return ErrTokenNotFound
	}

	bot, err := tgbotapi.NewBotAPI(conf.Telegram.BotToken)
	if err != nil {
		return fmt.Errorf("could not connect to telegram: %w", err)
	}

	sessionRepo := repository.NewSessionRepository()
	botService := service.NewBotService(rand.New(rand.NewSource(time.Now().UnixNano()))) //nolint: gosec // game moves, not secrets
	presenter := telegram.NewPresenter(logger, bot)
	gameManager := usecase.NewGameManager(logger, sessionRepo, botService, presenter)

	go runSweeper(ctx, log, sessionRepo, conf.Session)

	server := telegram.NewServer(logger, bot, gameManager, conf.Telegram.PollTimeout)

	srvErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting Telegram server")
		if srvErr := server.Start(ctx); srvErr != nil {
			log.Error("Telegram server error", "error", srvErr)
			srvErrCh <- srvErr
		}
	}()

	select {
	case err = <-srvErrCh:
		return fmt.Errorf("telegram server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// runSweeper evicts idle sessions on a fixed cadence for the lifetime
// of the process.
func runSweeper(ctx context.Context, log *slog.Logger, sessions repository.SessionRepository, conf config.Session) {
	ticker := time.NewTicker(conf.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted := sessions.SweepIdle(conf.IdleTimeout)
			log.Info("session sweep", "active", sessions.Len(), "evicted", evicted)
		}
	}
}
