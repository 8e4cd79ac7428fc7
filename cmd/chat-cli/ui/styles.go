package ui

import "github.com/charmbracelet/lipgloss"

var (
	Primary = lipgloss.Color("62")
	Success = lipgloss.Color("42")
	Danger  = lipgloss.Color("196")
	Muted   = lipgloss.Color("241")

	TitleStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	LabelStyle = lipgloss.NewStyle().Foreground(Muted)
	ErrorStyle = lipgloss.NewStyle().Foreground(Danger)
	InfoStyle  = lipgloss.NewStyle().Foreground(Muted)

	InputStyle        = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(Muted).Padding(0, 1)
	FocusedInputStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(Primary).Padding(0, 1)

	UserBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	ModelBubbleStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Success).
				Padding(0, 1)

	ErrorBubbleStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Danger).
				Padding(0, 1)

	TopicBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(Primary).
			Padding(0, 1)
)
