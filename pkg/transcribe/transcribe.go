// Package transcribe converts captured audio to text via a remote
// speech-to-text service.
//
// The Transcriber interface separates the two failure modes the listener
// cares about: the service heard the audio but could not make sense of it
// (ErrNotUnderstood), and the service could not be reached at all
// (ErrUnavailable). Both are recoverable; the listener reports them and
// keeps going.
package transcribe

import (
	"context"
	"errors"

	"voicedesk/pkg/audio"
)

// Common errors returned by transcribers.
var (
	// ErrNotUnderstood means the service processed the audio but produced
	// no transcript.
	ErrNotUnderstood = errors.New("transcribe: could not understand audio")

	// ErrUnavailable means the service could not be reached or refused
	// the request.
	ErrUnavailable = errors.New("transcribe: service unavailable")

	// ErrMissingCredential means no API key or token was configured.
	ErrMissingCredential = errors.New("transcribe: missing Google credential")
)

// Transcriber converts one captured utterance to text.
type Transcriber interface {
	Transcribe(ctx context.Context, cap *audio.Capture) (string, error)
}
