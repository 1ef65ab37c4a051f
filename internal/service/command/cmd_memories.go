package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/memobot/internal/core"
)

type MemoriesCommand struct {
	store     core.MemoryStore
	formatter *ResponseFormatter
}

func NewMemoriesCommand(store core.MemoryStore) *MemoriesCommand {
	return &MemoriesCommand{
		store:     store,
		formatter: NewResponseFormatter(),
	}
}

func (c *MemoriesCommand) Name() string {
	return "memories"
}

func (c *MemoriesCommand) Description() string {
	return "List stored memories"
}

func (c *MemoriesCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	memories, err := c.store.All(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list memories: %w", err)
	}

	if len(memories) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Memories"),
			c.formatter.Label("Total", "0"),
			c.formatter.Tip("add one with /remember <text>"),
		), nil
	}

	return c.formatter.Combine(
		c.formatter.Info("Memories"),
		c.formatter.Label("Total", fmt.Sprintf("%d", len(memories))),
		c.formatter.List(numbered(memories, 0)),
	), nil
}

func numbered(memories []core.Memory, offset int) []string {
	items := make([]string, len(memories))
	for i, m := range memories {
		items[i] = fmt.Sprintf("%d. %s _(%s)_", offset+i+1, m.Text, m.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return items
}
