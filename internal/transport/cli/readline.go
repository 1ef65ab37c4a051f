package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/sandevgo/memobot/internal/config"
	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/internal/service/session"
	"github.com/sandevgo/memobot/internal/service/ui"
	"github.com/sandevgo/memobot/pkg/log"
)

type submitter interface {
	ID() string
	Submit(ctx context.Context, query string) (string, error)
}

type ReadLine struct {
	router  core.CmdRouter
	session submitter
	rl      *readline.Instance
	out     io.Writer
}

func NewReadLine(
	manager *session.Manager,
	router core.CmdRouter,
	cfg *config.AppConfig,
) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     cfg.GetInputHistoryPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init readline: %w", err)
	}

	out := rl.Stdout()
	sessionID := "cli-" + uuid.NewString()

	return &ReadLine{
		router:  router,
		session: manager.Get(sessionID, NewPrinter(out)),
		rl:      rl,
		out:     out,
	}, nil
}

// Foreground makes the process exit when the user leaves the chat.
func (r *ReadLine) Foreground() {}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx).With().Str("session_id", r.session.ID()).Logger()
	ctx = logger.WithContext(ctx)
	logger.Info().Msg("chat started, type 'exit' to quit")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if quit := r.handleLine(ctx, line); quit {
			return nil
		}
	}
}

// handleLine processes one line of input and reports whether the user asked to quit.
func (r *ReadLine) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return false
	case line == "exit":
		return true
	}

	if res, ok := r.router.Execute(ctx, r.session.ID(), line); ok {
		fmt.Fprintln(r.out, res)
		return false
	}

	fmt.Fprintln(r.out, ui.ThinkingStyle.Render("Bot is thinking..."))

	_, err := r.session.Submit(ctx, line)
	switch {
	case errors.Is(err, core.ErrBusy):
		log.FromCtx(ctx).Debug().Msg("dropped input while busy")
	case err != nil:
		log.FromCtx(ctx).Error().Err(err).Msg("submit failed")
	}
	return false
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
