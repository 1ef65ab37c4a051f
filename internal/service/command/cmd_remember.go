package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/memobot/internal/core"
)

const (
	statusAdded = "Memory added successfully! (Total: %d)"
	statusEmpty = "Please enter a memory before adding."
)

type RememberCommand struct {
	store core.MemoryStore
}

func NewRememberCommand(store core.MemoryStore) *RememberCommand {
	return &RememberCommand{store: store}
}

func (c *RememberCommand) Name() string {
	return "remember"
}

func (c *RememberCommand) Description() string {
	return "Store a new memory"
}

func (c *RememberCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	_, total, err := c.store.Add(ctx, strings.Join(args, " "))
	if errors.Is(err, core.ErrEmptyInput) {
		return statusEmpty, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to add memory: %w", err)
	}
	return fmt.Sprintf(statusAdded, total), nil
}
