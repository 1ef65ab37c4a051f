package command

import (
	"github.com/sandevgo/memobot/internal/core"
)

func NewCommands(
	store core.MemoryStore,
	turns core.TurnsRepository,
	backend string,
	historyLimit int,
) []core.Command {
	return []core.Command{
		NewRememberCommand(store),
		NewMemoriesCommand(store),
		NewSearchCommand(store),
		NewStatusCommand(store, backend),
		NewHistoryCommand(turns, historyLimit),
	}
}
