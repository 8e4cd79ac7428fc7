package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"linguachat/pkg/apiclient"
	"linguachat/pkg/speech"
)

type View int

const (
	AuthView View = iota
	ChatView
)

// Model is the root bubbletea model routing between auth and chat.
type Model struct {
	currentView View
	auth        *AuthModel
	chat        *ChatModel
	speaker     *speech.Speaker
	userEmail   string
	width       int
	height      int
}

func NewModel(client *apiclient.Client, speaker *speech.Speaker, settings speech.Settings, settingsPath string) Model {
	return Model{
		currentView: AuthView,
		auth:        NewAuthModel(client),
		chat:        NewChatModel(client, speaker, settings, settingsPath),
		speaker:     speaker,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authSuccessMsg:
		m.userEmail = msg.email
		m.currentView = ChatView
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.speaker.Stop()
			return m, tea.Quit
		}
	}

	switch m.currentView {
	case AuthView:
		auth, cmd := m.auth.Update(msg)
		m.auth = auth
		return m, cmd
	case ChatView:
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	switch m.currentView {
	case ChatView:
		header := lipgloss.NewStyle().Foreground(Success).Render(m.userEmail)
		return lipgloss.JoinVertical(lipgloss.Left, header, "", m.chat.View())
	default:
		return m.auth.View()
	}
}
