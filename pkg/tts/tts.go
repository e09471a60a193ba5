// Package tts speaks text out loud through the platform speech command
// and estimates how long an utterance takes, so callers can animate a
// talking face for roughly the right duration.
//
// Example usage:
//
//	engine, _ := tts.NewExecEngine()
//	speaker := tts.NewSpeaker(engine, nil)
//	speaker.Say(ctx, "hello there")
//	for speaker.Speaking() { ... animate mouth ... }
package tts

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoEngine is returned when no speech command exists on this system.
var ErrNoEngine = errors.New("tts: no speech engine available")

// Engine converts one utterance to audible speech. Speak blocks until
// playback finishes or ctx is cancelled.
type Engine interface {
	Speak(ctx context.Context, text string) error
}

// EstimateDuration guesses playback time for text: a tenth of a second
// per character plus a second of padding.
func EstimateDuration(text string) time.Duration {
	return time.Duration(len(text))*100*time.Millisecond + time.Second
}

// Speaker runs an Engine asynchronously and tracks whether speech is
// believed to still be playing, based on the duration estimate. Safe for
// concurrent use.
type Speaker struct {
	engine Engine
	logf   func(format string, args ...any)

	mu    sync.Mutex
	until time.Time
	last  string
}

// NewSpeaker wraps an engine. logf may be nil.
func NewSpeaker(engine Engine, logf func(string, ...any)) *Speaker {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Speaker{engine: engine, logf: logf}
}

// Say starts speaking text in the background and returns immediately.
// The speaking window is extended by the estimate for this utterance.
func (s *Speaker) Say(ctx context.Context, text string) {
	if text == "" {
		return
	}

	s.mu.Lock()
	s.until = time.Now().Add(EstimateDuration(text))
	s.last = text
	s.mu.Unlock()

	go func() {
		if err := s.engine.Speak(ctx, text); err != nil {
			s.logf("tts: speak failed: %v", err)
		}
	}()
}

// Speaking reports whether the last utterance is estimated to still be
// playing.
func (s *Speaker) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Now().Before(s.until)
}

// Last returns the most recently spoken text.
func (s *Speaker) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
