package core

import (
	"context"
)

// MemoryRepository persists the ordered memory list.
type MemoryRepository interface {
	Load(ctx context.Context) ([]Memory, error)
	Save(ctx context.Context, memories []Memory) error
}

type TurnsRepository interface {
	AddTurn(ctx context.Context, sessionID string, turn Turn) error
	GetTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error)
}
