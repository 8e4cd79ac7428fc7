package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// ErrUnsupported is returned when no speech backend is available on the host.
var ErrUnsupported = errors.New("speech not supported on this platform")

// Voice identifies an installed synthesis voice.
type Voice struct {
	Name   string
	Locale string
}

// Utterance is a single piece of text to synthesize with playback parameters
// already clamped.
type Utterance struct {
	Text   string
	Voice  Voice
	Speed  float64
	Pitch  float64
	Volume float64
}

// Engine synthesizes speech. Voices is queried once at startup; Speak blocks
// until playback finishes or ctx is cancelled.
type Engine interface {
	Voices() ([]Voice, error)
	Speak(ctx context.Context, u Utterance) error
}

// Unsupported returns an engine whose every call fails with ErrUnsupported.
func Unsupported() Engine {
	return unsupportedEngine{}
}

type unsupportedEngine struct{}

func (unsupportedEngine) Voices() ([]Voice, error) {
	return nil, ErrUnsupported
}

func (unsupportedEngine) Speak(context.Context, Utterance) error {
	return ErrUnsupported
}

// CommandEngine speaks by shelling out to an external synthesizer such as
// espeak-ng. The voice list is fixed at construction.
type CommandEngine struct {
	binary string
	voices []Voice
}

// NewCommandEngine builds an engine around the named binary. It fails when
// the binary is not on PATH.
func NewCommandEngine(binary string, voices []Voice) (*CommandEngine, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found", ErrUnsupported, binary)
	}
	return &CommandEngine{binary: path, voices: voices}, nil
}

// Voices lists the voices configured at construction.
func (e *CommandEngine) Voices() ([]Voice, error) {
	out := make([]Voice, len(e.voices))
	copy(out, e.voices)
	return out, nil
}

// Speak runs the synthesizer and waits for it to exit.
func (e *CommandEngine) Speak(ctx context.Context, u Utterance) error {
	args := []string{
		"-v", u.Voice.Locale,
		// espeak-ng speed is words per minute around a 175 wpm base.
		"-s", strconv.Itoa(int(u.Speed * 175)),
		"-p", strconv.Itoa(int(u.Pitch * 50)),
		"-a", strconv.Itoa(int(u.Volume * 100)),
		u.Text,
	}
	cmd := exec.CommandContext(ctx, e.binary, args...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("speech command: %w", err)
	}
	return nil
}
