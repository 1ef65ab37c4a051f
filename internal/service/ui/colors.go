package ui

import "github.com/charmbracelet/lipgloss"

// Basic ANSI colors only, so output looks the same on every terminal theme.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle is dimmed so descriptions sit behind command names.
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	UserLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)

	BotLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)

	ThinkingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)
