package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/memobot/internal/config"
)

// BackendStep selects where memories are persisted
type BackendStep struct {
	list choiceList
}

func NewBackendStep() Step {
	return &BackendStep{
		list: choiceList{
			title:   "Where should memories be stored?",
			choices: []string{config.BackendSQLite, config.BackendJSON, config.BackendRedis},
		},
	}
}

func (s *BackendStep) Init() tea.Cmd {
	return nil
}

func (s *BackendStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.list.update(msg) {
		return s, nil
	}
	state.App.MemoryBackend = s.list.choices[s.list.cursor]
	return nil, nil
}

func (s *BackendStep) View(state *InstallState) string {
	return s.list.view()
}

// RedisURLStep collects the Redis connection URL
type RedisURLStep struct {
	input textinput.Model
}

func NewRedisURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "redis://localhost:6379/0"

	return &RedisURLStep{
		input: ti,
	}
}

func (s *RedisURLStep) Skip(state *InstallState) bool {
	return state.App.MemoryBackend != config.BackendRedis
}

func (s *RedisURLStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *RedisURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		// empty keeps the default URL
		state.Redis.URL = s.input.Value()
		return nil, nil
	}
	return s, cmd
}

func (s *RedisURLStep) View(state *InstallState) string {
	return "Enter your Redis URL (leave empty for default):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
