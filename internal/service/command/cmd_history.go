package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/memobot/internal/core"
)

type HistoryCommand struct {
	turns     core.TurnsRepository
	limit     int
	formatter *ResponseFormatter
}

func NewHistoryCommand(turns core.TurnsRepository, limit int) *HistoryCommand {
	return &HistoryCommand{
		turns:     turns,
		limit:     limit,
		formatter: NewResponseFormatter(),
	}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Show recent conversation turns"
}

func (c *HistoryCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	turns, err := c.turns.GetTurns(ctx, sessionID, c.limit)
	if err != nil {
		return "", fmt.Errorf("failed to load history: %w", err)
	}

	if len(turns) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("History"),
			"Nothing said yet.",
		), nil
	}

	items := make([]string, len(turns))
	for i, t := range turns {
		items[i] = fmt.Sprintf("`%s` **%s**: %s", t.Timestamp.Local().Format("15:04:05"), strings.ToUpper(string(t.Sender)), t.Text)
	}

	return c.formatter.Combine(
		c.formatter.Info("History"),
		c.formatter.List(items),
	), nil
}
