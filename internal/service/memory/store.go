package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/log"
)

// Store is the ordered, append-only memory collection. Every Add is written
// through to the repository; reads are served from memory.
type Store struct {
	repo core.MemoryRepository
	now  func() time.Time

	mu     sync.RWMutex
	items  []core.Memory
	lastID int64
}

// NewStore loads the existing memories from repo.
func NewStore(ctx context.Context, repo core.MemoryRepository) (*Store, error) {
	loaded, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load memories: %w", err)
	}

	s := &Store{
		repo: repo,
		now:  time.Now,
	}

	seen := make(map[int64]struct{}, len(loaded))
	for _, m := range loaded {
		if _, dup := seen[m.ID]; dup {
			log.FromCtx(ctx).Warn().Int64("id", m.ID).Msg("skipping duplicate memory id")
			continue
		}
		seen[m.ID] = struct{}{}
		s.items = append(s.items, m)
		s.lastID = max(s.lastID, m.ID)
	}

	log.FromCtx(ctx).Info().Int("count", len(s.items)).Msg("loaded memories from storage")
	return s, nil
}

// Add trims text, assigns the next ID and persists the new list. On a
// persistence failure the memory is not kept. The returned total is the
// collection size including the new memory.
func (s *Store) Add(ctx context.Context, text string) (core.Memory, int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return core.Memory{}, 0, core.ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := s.now()
	m := core.Memory{
		ID:        s.nextID(createdAt),
		Text:      text,
		CreatedAt: createdAt,
	}

	items := append(s.items[:len(s.items):len(s.items)], m)
	if err := s.repo.Save(ctx, items); err != nil {
		return core.Memory{}, 0, fmt.Errorf("failed to save memory: %w", err)
	}

	s.items = items
	s.lastID = m.ID

	log.FromCtx(ctx).Debug().Int64("id", m.ID).Int("total", len(items)).Msg("memory added")
	return m, len(items), nil
}

// nextID derives an ID from the creation time, bumped past the last one
// so IDs stay strictly increasing when the clock stalls or goes back.
func (s *Store) nextID(t time.Time) int64 {
	id := t.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	return id
}

// All returns a copy of the memories in insertion order.
func (s *Store) All(ctx context.Context) ([]core.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Memory, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
