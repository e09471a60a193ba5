// Package audio provides microphone capture for the voice listener.
//
// The Device interface is the narrow surface the listener depends on:
// calibrate against ambient noise, then block capturing one utterance at a
// time. The portaudio-backed implementation lives in mic.go; tests use the
// fake in the listener package.
package audio

import (
	"context"
	"errors"
	"time"
)

// Common errors returned by capture devices.
var (
	// ErrNoSpeech means the listen timeout elapsed before anything was
	// heard. Expected during normal operation, not a failure.
	ErrNoSpeech = errors.New("audio: no speech detected")

	// ErrClosed means the device has been closed.
	ErrClosed = errors.New("audio: device closed")
)

// Capture holds one recorded utterance as 16-bit mono PCM.
type Capture struct {
	Samples    []int16
	SampleRate int
}

// Duration returns the length of the capture.
func (c *Capture) Duration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}

// Device is a microphone capture device.
//
// Calibrate measures ambient noise for the given duration and sets the
// speech-detection threshold. Listen blocks until one utterance has been
// captured, the configured timeout elapses with no speech (ErrNoSpeech),
// or the context is canceled. Exactly one goroutine may use a Device at a
// time; the listener owns it exclusively.
type Device interface {
	Calibrate(ctx context.Context, d time.Duration) error
	Listen(ctx context.Context) (*Capture, error)
	Close() error
}

// ListenConfig tunes utterance capture.
type ListenConfig struct {
	// Timeout is how long Listen waits for speech to begin.
	Timeout time.Duration
	// MaxPhrase caps the length of a single utterance.
	MaxPhrase time.Duration
	// QuietTime is how much trailing silence ends an utterance.
	QuietTime time.Duration
	// SampleRate in Hz. Defaults to 16000.
	SampleRate int
}

// DefaultListenConfig returns capture settings matching the demos.
func DefaultListenConfig() ListenConfig {
	return ListenConfig{
		Timeout:    4 * time.Second,
		MaxPhrase:  7 * time.Second,
		QuietTime:  500 * time.Millisecond,
		SampleRate: 16000,
	}
}
