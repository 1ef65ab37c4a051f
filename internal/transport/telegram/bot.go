package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/memobot/internal/config"
	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/internal/service/session"
	"github.com/sandevgo/memobot/pkg/log"
	"github.com/sandevgo/memobot/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot     *tele.Bot
	sender  *sender
	manager *session.Manager
	router  core.CmdRouter
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	manager *session.Manager,
	router core.CmdRouter,
	retrier *retry.Retrier,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	// NewBot calls getMe, so a flaky network at boot is retried
	var b *tele.Bot
	err := retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		b, err = tele.NewBot(pref)
		if errors.Is(err, tele.ErrUnauthorized) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		sender:  newSender(b),
		manager: manager,
		router:  router,
		ownerID: cfg.OwnerID,
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Only the owner may talk to the bot
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || c.Sender().ID != bot.ownerID {
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	cmds := b.router.ListCommands()
	menu := make([]tele.Command, len(cmds))
	for i, cmd := range cmds {
		menu[i] = tele.Command{Text: cmd.Name(), Description: cmd.Description()}
	}
	if err := b.bot.SetCommands(menu); err != nil {
		logger.Warn().Err(err).Msg("failed to register telegram commands")
	}

	logger.Info().Str("username", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	sessionID := fmt.Sprintf("telegram-%d", c.Chat().ID)
	logger := log.FromCtx(ctx).With().Str("session_id", sessionID).Logger()
	ctx = logger.WithContext(ctx)

	text := strings.TrimSpace(c.Text())
	if text == "" {
		return nil
	}

	if res, ok := b.router.Execute(ctx, sessionID, text); ok {
		return b.sender.sendMarkdown(ctx, c.Chat(), res)
	}

	_ = c.Notify(tele.Typing)

	s := b.manager.Get(sessionID, &chatPresenter{sender: b.sender, chat: c.Chat()})
	_, err := s.Submit(ctx, text)
	switch {
	case errors.Is(err, core.ErrBusy):
		logger.Debug().Msg("dropped message while busy")
	case err != nil:
		logger.Error().Err(err).Msg("submit failed")
	}
	return nil
}
