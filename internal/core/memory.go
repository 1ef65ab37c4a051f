package core

import (
	"context"
)

type MemoryStore interface {
	// Add returns the new memory and the collection size right after it was appended.
	Add(ctx context.Context, text string) (Memory, int, error)
	All(ctx context.Context) ([]Memory, error)
	Count() int
}

// Presenter receives every turn a session emits, in order.
type Presenter interface {
	Present(ctx context.Context, sessionID string, turn Turn) error
}
