package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

const (
	channelCLI      = "Terminal only"
	channelTelegram = "Telegram only"
	channelBoth     = "Terminal + Telegram"
)

// ChannelStep allows selection of the chat channels to enable
type ChannelStep struct {
	list choiceList
}

func NewChannelStep() Step {
	return &ChannelStep{
		list: choiceList{
			title:   "Where do you want to chat?",
			choices: []string{channelCLI, channelTelegram, channelBoth},
		},
	}
}

func (s *ChannelStep) Init() tea.Cmd {
	return nil
}

func (s *ChannelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.list.update(msg) {
		return s, nil
	}

	choice := s.list.choices[s.list.cursor]
	state.App.EnableCLI = choice != channelTelegram
	state.App.EnableTelegram = choice != channelCLI
	return nil, nil
}

func (s *ChannelStep) View(state *InstallState) string {
	return s.list.view()
}
