package speech

import (
	"context"
	"strings"
	"sync"
	"time"
)

const repeatDelay = 500 * time.Millisecond

// Speaker plays replies through an Engine according to the user's settings.
// Starting a new playback cancels any playback still in progress.
type Speaker struct {
	engine Engine
	voices []Voice

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSpeaker queries the engine's voice list once and returns the speaker.
// An engine that cannot list voices still works with its default voice.
func NewSpeaker(engine Engine) *Speaker {
	voices, err := engine.Voices()
	if err != nil {
		voices = nil
	}
	return &Speaker{engine: engine, voices: voices}
}

// Voices returns the voices discovered at construction.
func (s *Speaker) Voices() []Voice {
	out := make([]Voice, len(s.voices))
	copy(out, s.voices)
	return out
}

// Speak plays text according to settings, repeating as configured with a
// short pause between repeats. It returns once playback has been started;
// the playback itself runs in the background until done or superseded.
func (s *Speaker) Speak(text string, settings Settings) {
	settings = settings.Clamp()
	voice := s.pickVoice(settings.VoiceLocale)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()
		s.play(ctx, text, voice, settings)
	}()
}

// Stop cancels any playback in progress and waits for it to wind down.
func (s *Speaker) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Speaker) play(ctx context.Context, text string, voice Voice, settings Settings) {
	u := Utterance{
		Text:   text,
		Voice:  voice,
		Speed:  settings.Speed,
		Pitch:  settings.Pitch,
		Volume: settings.Volume,
	}
	for i := 0; i < settings.Repeat; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(repeatDelay):
			}
		}
		if err := s.engine.Speak(ctx, u); err != nil {
			// Remaining repeats are pointless once the engine fails.
			return
		}
	}
}

// pickVoice matches the preferred locale by prefix, falling back to the
// engine's first voice, then to a bare locale the engine resolves itself.
func (s *Speaker) pickVoice(locale string) Voice {
	for _, v := range s.voices {
		if strings.HasPrefix(v.Locale, locale) {
			return v
		}
	}
	if len(s.voices) > 0 {
		return s.voices[0]
	}
	return Voice{Locale: locale}
}
