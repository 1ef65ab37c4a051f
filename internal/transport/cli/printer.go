package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/internal/service/ui"
)

const timeLayout = "15:04:05"

// Printer renders session turns as labelled lines.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Present(ctx context.Context, sessionID string, turn core.Turn) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := fmt.Fprintf(p.out, "%s %s\n", label(turn), turn.Text)
	return err
}

func label(turn core.Turn) string {
	ts := turn.Timestamp.Local().Format(timeLayout)
	if turn.Sender == core.SenderUser {
		return ui.UserLabelStyle.Render(fmt.Sprintf("[USER] %s", ts))
	}
	return ui.BotLabelStyle.Render(fmt.Sprintf("[BOT] %s", ts))
}
