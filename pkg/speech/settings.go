package speech

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings controls how replies are spoken aloud.
type Settings struct {
	Speed       float64 `json:"speed"`
	Repeat      int     `json:"repeat"`
	Volume      float64 `json:"volume"`
	Pitch       float64 `json:"pitch"`
	AutoPlay    bool    `json:"autoPlay"`
	VoiceLocale string  `json:"currentVoice"`
}

// DefaultSettings returns the initial playback settings.
func DefaultSettings() Settings {
	return Settings{
		Speed:       0.9,
		Repeat:      1,
		Volume:      1,
		Pitch:       1,
		AutoPlay:    false,
		VoiceLocale: "en-US",
	}
}

// Clamp forces every field into its allowed range.
func (s Settings) Clamp() Settings {
	s.Speed = clampFloat(s.Speed, 0.1, 2.0)
	s.Pitch = clampFloat(s.Pitch, 0, 2)
	s.Volume = clampFloat(s.Volume, 0, 1)
	if s.Repeat < 1 {
		s.Repeat = 1
	}
	if s.Repeat > 5 {
		s.Repeat = 5
	}
	if s.VoiceLocale == "" {
		s.VoiceLocale = DefaultSettings().VoiceLocale
	}
	return s
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SettingsPath returns the per-user settings file location.
func SettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "linguachat", "speech.json"), nil
}

// LoadSettings reads settings from path. A missing or malformed file yields
// the defaults so a broken settings file never blocks the client.
func LoadSettings(path string) Settings {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettings()
	}
	s := DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings()
	}
	return s.Clamp()
}

// SaveSettings writes settings to path, creating parent directories.
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := json.MarshalIndent(s.Clamp(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
