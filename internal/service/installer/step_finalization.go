package installer

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/memobot/internal/config"
)

// FinalizationStep drops values collected for options that ended up disabled
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func finalize(state *InstallState) {
	if !state.App.EnableTelegram {
		state.Telegram = config.TelegramConfig{}
	}
	if state.App.MemoryBackend != config.BackendRedis {
		state.Redis = config.RedisConfig{}
	}
}
