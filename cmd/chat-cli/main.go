package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"linguachat/cmd/chat-cli/ui"
	"linguachat/pkg/apiclient"
	"linguachat/pkg/speech"
)

var defaultVoices = []speech.Voice{
	{Name: "English (America)", Locale: "en-US"},
	{Name: "English (Great Britain)", Locale: "en-GB"},
}

func main() {
	serverURL := os.Getenv("LINGUACHAT_SERVER")
	if serverURL == "" {
		serverURL = "http://localhost:5000"
	}
	client := apiclient.New(serverURL)

	engine, err := speech.NewCommandEngine("espeak-ng", defaultVoices)
	var speaker *speech.Speaker
	if err != nil {
		speaker = speech.NewSpeaker(speech.Unsupported())
	} else {
		speaker = speech.NewSpeaker(engine)
	}

	settings := speech.DefaultSettings()
	settingsPath, err := speech.SettingsPath()
	if err == nil {
		settings = speech.LoadSettings(settingsPath)
	} else {
		settingsPath = ""
	}

	p := tea.NewProgram(
		ui.NewModel(client, speaker, settings, settingsPath),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	speaker.Stop()
}
