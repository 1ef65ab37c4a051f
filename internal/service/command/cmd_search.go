package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/internal/service/memory"
)

type SearchCommand struct {
	store     core.MemoryStore
	formatter *ResponseFormatter
}

func NewSearchCommand(store core.MemoryStore) *SearchCommand {
	return &SearchCommand{
		store:     store,
		formatter: NewResponseFormatter(),
	}
}

func (c *SearchCommand) Name() string {
	return "search"
}

func (c *SearchCommand) Description() string {
	return "Find memories containing any of the given words"
}

func (c *SearchCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Usage("/search [words]"),
			c.formatter.Examples([]string{"/search hiking", "/search cat coffee"}),
		), nil
	}

	all, err := c.store.All(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to search memories: %w", err)
	}

	query := strings.Join(args, " ")
	found, total := memory.Search(query, all, memory.DefaultSearchLimit)
	if total == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Search"),
			c.formatter.Label("Query", query),
			"No memories found.",
		), nil
	}

	return c.formatter.Combine(
		c.formatter.Info("Search"),
		c.formatter.Label("Query", query),
		c.formatter.Label("Found", fmt.Sprintf("%d (showing %d)", total, len(found))),
		c.formatter.List(numbered(found, 0)),
	), nil
}
