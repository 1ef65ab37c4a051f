package session

import (
	"sync"

	"github.com/sandevgo/memobot/internal/core"
)

// Manager hands out one Session per conversation ID. All sessions share
// the same memories and composer.
type Manager struct {
	memories   MemorySource
	composer   Composer
	clock      Clock
	delay      Delay
	presenters []core.Presenter

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(
	memories MemorySource,
	composer Composer,
	clock Clock,
	delay Delay,
	presenters ...core.Presenter,
) *Manager {
	return &Manager{
		memories:   memories,
		composer:   composer,
		clock:      clock,
		delay:      delay,
		presenters: presenters,
		sessions:   make(map[string]*Session),
	}
}

// Get returns the session for id, creating it on first use. Extra presenters
// are attached only when the session is created.
func (m *Manager) Get(id string, extra ...core.Presenter) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}

	presenters := append(append([]core.Presenter{}, m.presenters...), extra...)
	s := NewSession(id, m.memories, m.composer, m.clock, m.delay, presenters...)
	m.sessions[id] = s
	return s
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
