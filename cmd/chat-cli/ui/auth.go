package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"linguachat/pkg/apiclient"
)

type authSuccessMsg struct {
	email string
}

type authErrorMsg struct {
	err error
}

// AuthModel handles the login and register screens.
type AuthModel struct {
	client *apiclient.Client

	registering   bool
	emailInput    string
	passwordInput string
	focusedInput  int
	loading       bool
	err           error
}

func NewAuthModel(client *apiclient.Client) *AuthModel {
	return &AuthModel{client: client}
}

func authCmd(client *apiclient.Client, register bool, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		var err error
		if register {
			err = client.Register(ctx, email, password)
		} else {
			err = client.Login(ctx, email, password)
		}
		if err != nil {
			return authErrorMsg{err: err}
		}
		return authSuccessMsg{email: email}
	}
}

func (m *AuthModel) Update(msg tea.Msg) (*AuthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab":
			m.focusedInput = (m.focusedInput + 1) % 2
		case "ctrl+s":
			m.registering = !m.registering
			m.err = nil
		case "enter":
			if m.emailInput == "" || m.passwordInput == "" {
				m.err = fmt.Errorf("email and password are required")
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, authCmd(m.client, m.registering, m.emailInput, m.passwordInput)
		case "backspace":
			if m.focusedInput == 0 && len(m.emailInput) > 0 {
				m.emailInput = m.emailInput[:len(m.emailInput)-1]
			} else if m.focusedInput == 1 && len(m.passwordInput) > 0 {
				m.passwordInput = m.passwordInput[:len(m.passwordInput)-1]
			}
		default:
			if len(msg.String()) == 1 {
				if m.focusedInput == 0 {
					m.emailInput += msg.String()
				} else {
					m.passwordInput += msg.String()
				}
			}
		}
	}
	return m, nil
}

func (m *AuthModel) View() string {
	var b strings.Builder

	title := "Sign in"
	if m.registering {
		title = "Create account"
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	emailStyle, passwordStyle := InputStyle, InputStyle
	if m.focusedInput == 0 {
		emailStyle = FocusedInputStyle
	} else {
		passwordStyle = FocusedInputStyle
	}
	b.WriteString(LabelStyle.Render("Email"))
	b.WriteString("\n")
	b.WriteString(emailStyle.Width(40).Render(m.emailInput))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Password"))
	b.WriteString("\n")
	b.WriteString(passwordStyle.Width(40).Render(strings.Repeat("*", len(m.passwordInput))))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(InfoStyle.Render("Signing in..."))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("tab switch field | enter submit | ctrl+s toggle register | ctrl+c quit"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 3).
		Render(b.String())
}
