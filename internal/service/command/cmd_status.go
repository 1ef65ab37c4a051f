package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/memobot/internal/core"
)

type StatusCommand struct {
	store     core.MemoryStore
	backend   string
	formatter *ResponseFormatter
}

func NewStatusCommand(store core.MemoryStore, backend string) *StatusCommand {
	return &StatusCommand{
		store:     store,
		backend:   backend,
		formatter: NewResponseFormatter(),
	}
}

func (c *StatusCommand) Name() string {
	return "status"
}

func (c *StatusCommand) Description() string {
	return "Show storage backend and memory count"
}

func (c *StatusCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	return c.formatter.Combine(
		c.formatter.Info("Status"),
		c.formatter.Label("Status", "running"),
		c.formatter.Label("Backend", c.backend),
		c.formatter.Label("Memories", fmt.Sprintf("%d", c.store.Count())),
		c.formatter.Label("Version", core.BotVersion),
	), nil
}
