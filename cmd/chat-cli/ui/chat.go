package ui

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"linguachat/pkg/apiclient"
	"linguachat/pkg/domain"
	"linguachat/pkg/speech"
)

type replyMsg struct {
	text string
}

type chatErrorMsg struct {
	err error
}

type bubble struct {
	role domain.Role
	text string
	err  bool
}

// ChatModel is the conversation screen. While a reply is pending the input
// is disabled so turns stay strictly alternating.
type ChatModel struct {
	client  *apiclient.Client
	speaker *speech.Speaker

	settings     speech.Settings
	settingsPath string

	topics     []domain.Topic
	topicIndex int

	input     string
	bubbles   []bubble
	waiting   bool
	lastReply string
}

func NewChatModel(client *apiclient.Client, speaker *speech.Speaker, settings speech.Settings, settingsPath string) *ChatModel {
	return &ChatModel{
		client:       client,
		speaker:      speaker,
		settings:     settings,
		settingsPath: settingsPath,
		topics:       []domain.Topic{domain.TopicDefault, domain.TopicSchool, domain.TopicWork, domain.TopicDaily},
	}
}

func sendCmd(client *apiclient.Client, message string, topic domain.Topic) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		reply, err := client.SendMessage(ctx, message, string(topic))
		if err != nil {
			return chatErrorMsg{err: err}
		}
		return replyMsg{text: reply}
	}
}

func (m *ChatModel) topic() domain.Topic {
	return m.topics[m.topicIndex]
}

func (m *ChatModel) Update(msg tea.Msg) (*ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		m.waiting = false
		m.lastReply = msg.text
		m.bubbles = append(m.bubbles, bubble{role: domain.RoleModel, text: msg.text})
		if m.settings.AutoPlay {
			m.speaker.Speak(msg.text, m.settings)
		}
		return m, nil

	case chatErrorMsg:
		m.waiting = false
		m.bubbles = append(m.bubbles, bubble{role: domain.RoleModel, text: msg.err.Error(), err: true})
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+t":
			m.topicIndex = (m.topicIndex + 1) % len(m.topics)
			return m, nil
		case "ctrl+r":
			if m.lastReply != "" {
				m.speaker.Speak(m.lastReply, m.settings)
			}
			return m, nil
		case "ctrl+p":
			m.settings.AutoPlay = !m.settings.AutoPlay
			m.saveSettings()
			return m, nil
		case "ctrl+up":
			m.settings.Speed = m.settings.Speed + 0.1
			m.settings = m.settings.Clamp()
			m.saveSettings()
			return m, nil
		case "ctrl+down":
			m.settings.Speed = m.settings.Speed - 0.1
			m.settings = m.settings.Clamp()
			m.saveSettings()
			return m, nil
		}
		if m.waiting {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.input)
			if text == "" {
				return m, nil
			}
			m.input = ""
			m.waiting = true
			m.bubbles = append(m.bubbles, bubble{role: domain.RoleUser, text: text})
			return m, sendCmd(m.client, text, m.topic())
		case "backspace":
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
		default:
			if len(msg.String()) == 1 {
				m.input += msg.String()
			}
		}
	}
	return m, nil
}

func (m *ChatModel) saveSettings() {
	if m.settingsPath == "" {
		return
	}
	// Settings persistence is best effort; a failed write never blocks chat.
	_ = speech.SaveSettings(m.settingsPath, m.settings)
}

func (m *ChatModel) View() string {
	var b strings.Builder

	badge := TopicBadgeStyle.Render("topic: " + string(m.topic()))
	autoplay := "off"
	if m.settings.AutoPlay {
		autoplay = "on"
	}
	status := InfoStyle.Render(lipgloss.JoinHorizontal(lipgloss.Left,
		"  autoplay ", autoplay, "  speed ", formatSpeed(m.settings.Speed)))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, badge, status))
	b.WriteString("\n\n")

	start := 0
	if len(m.bubbles) > 12 {
		start = len(m.bubbles) - 12
	}
	for _, bub := range m.bubbles[start:] {
		style := ModelBubbleStyle
		prefix := "tutor"
		if bub.role == domain.RoleUser {
			style = UserBubbleStyle
			prefix = "you"
		}
		if bub.err {
			style = ErrorBubbleStyle
			prefix = "error"
		}
		b.WriteString(LabelStyle.Render(prefix))
		b.WriteString("\n")
		b.WriteString(style.Width(60).Render(bub.text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.waiting {
		b.WriteString(InfoStyle.Render("Waiting for reply..."))
	} else {
		b.WriteString(FocusedInputStyle.Width(60).Render(m.input))
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("enter send | ctrl+t topic | ctrl+r replay | ctrl+p autoplay | ctrl+up/down speed | ctrl+c quit"))
	return b.String()
}

func formatSpeed(speed float64) string {
	return strconv.FormatFloat(speed, 'f', 1, 64) + "x"
}
