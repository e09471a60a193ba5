// Package listener runs the background voice-recognition goroutine.
//
// A Listener owns the microphone and the transcriber exclusively and talks
// to the rest of the program only through its message queue: status lines,
// recognized text, and errors all travel as msgq messages, and nothing else
// about the listener is observable from outside. The composing application
// holds the Listener as an explicit resource with Start/Stop/Join; there is
// no package-level singleton.
package listener

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"voicedesk/internal/log"
	"voicedesk/pkg/audio"
	"voicedesk/pkg/msgq"
	"voicedesk/pkg/transcribe"
)

// State identifies where the listener loop currently is.
type State int

const (
	StateStarting State = iota
	StateCalibrating
	StateListening
	StateRecognizing
	StateRecalibrating
	StateStopped
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateCalibrating:
		return "calibrating"
	case StateListening:
		return "listening"
	case StateRecognizing:
		return "recognizing"
	case StateRecalibrating:
		return "recalibrating"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// RecalibratePolicy controls what happens when the post-error
// recalibration attempt itself fails. The original demos disagree on
// this, so it is a configuration choice.
type RecalibratePolicy int

const (
	// DegradeAfterFailure posts FATAL_ERROR and stops the listener after
	// the first failed recalibration.
	DegradeAfterFailure RecalibratePolicy = iota

	// RetryForever keeps reporting the error and retrying recalibration
	// every RetryDelay until it succeeds or the listener is stopped.
	RetryForever
)

// Config tunes the listener loop.
type Config struct {
	// CalibrateDuration is how long the ambient-noise calibration runs.
	CalibrateDuration time.Duration

	// RetryDelay is the pause before a recalibration attempt.
	RetryDelay time.Duration

	// Recalibrate selects the behavior after a failed recalibration.
	Recalibrate RecalibratePolicy

	// Hint, when set, is posted as a COMMAND message after calibration
	// so the UI can show what to say.
	Hint string
}

// DefaultConfig returns the settings the demos use.
func DefaultConfig() Config {
	return Config{
		CalibrateDuration: 2 * time.Second,
		RetryDelay:        time.Second,
		Recalibrate:       DegradeAfterFailure,
	}
}

// Listener captures utterances and posts tagged messages to its queue.
type Listener struct {
	mic audio.Device
	stt transcribe.Transcriber
	out *msgq.Queue
	cfg Config

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

// New creates a listener. The caller retains ownership of the queue;
// the listener takes exclusive ownership of the device and transcriber
// until Join returns.
func New(mic audio.Device, stt transcribe.Transcriber, out *msgq.Queue, cfg Config) *Listener {
	if cfg.CalibrateDuration == 0 {
		cfg.CalibrateDuration = DefaultConfig().CalibrateDuration
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = DefaultConfig().RetryDelay
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Listener{
		mic:    mic,
		stt:    stt,
		out:    out,
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Start launches the listener goroutine. Safe to call once.
func (l *Listener) Start() {
	l.startOnce.Do(func() {
		go l.run()
	})
}

// Stop signals the goroutine to exit. The in-flight listen call is not
// interrupted beyond its own timeout, so stop latency is bounded by one
// listen-timeout interval. Safe to call multiple times.
func (l *Listener) Stop() {
	l.stopOnce.Do(l.cancel)
}

// Join blocks until the goroutine has exited.
func (l *Listener) Join() {
	<-l.done
}

func (l *Listener) run() {
	defer close(l.done)
	defer l.out.Push(msgq.NewStatus(msgq.EventStopped, "Listener stopped."))

	l.out.Push(msgq.NewStatus(msgq.EventCalibrating,
		"Calibrating microphone for ambient noise... Please be silent."))

	if err := l.mic.Calibrate(l.ctx, l.cfg.CalibrateDuration); err != nil {
		if l.stopped() {
			return
		}
		l.out.PushText(msgq.KindFatal,
			fmt.Sprintf("Voice listener failed to start: %v. Ensure microphone is available and working.", err))
		return
	}

	l.out.Push(msgq.NewStatus(msgq.EventReady, "Calibration complete. Ready for commands!"))
	if l.cfg.Hint != "" {
		l.out.PushText(msgq.KindCommand, l.cfg.Hint)
	}

	for !l.stopped() {
		l.out.Push(msgq.NewStatus(msgq.EventListening, "Listening for command..."))

		cap, err := l.mic.Listen(l.ctx)
		switch {
		case err == nil:
			l.recognize(cap)
		case errors.Is(err, audio.ErrNoSpeech):
			// Expected. Quietly go around again.
			l.out.Push(msgq.NewStatus(msgq.EventListening, "No speech detected. Listening again..."))
		case l.stopped():
			return
		default:
			if !l.recover(err) {
				return
			}
		}

		// Brief pause so a failing device cannot spin the loop.
		if !l.sleep(100 * time.Millisecond) {
			return
		}
	}
}

// recognize transcribes one capture and posts the result.
func (l *Listener) recognize(cap *audio.Capture) {
	l.out.Push(msgq.NewStatus(msgq.EventRecognizing, "Recognizing speech..."))

	text, err := l.stt.Transcribe(l.ctx, cap)
	switch {
	case err == nil:
		l.out.PushText(msgq.KindRecognized, strings.ToLower(text))
	case errors.Is(err, transcribe.ErrNotUnderstood):
		l.out.PushText(msgq.KindError,
			"Speech recognition could not understand audio. Please speak more clearly.")
	case l.stopped():
		// Canceled mid-transcription; the deferred stop status covers it.
	default:
		l.out.PushText(msgq.KindError,
			fmt.Sprintf("Could not reach the speech recognition service: %v. Check internet connection.", err))
	}
}

// recover handles an unexpected device error with a recalibration
// attempt. It returns false when the listener should terminate.
func (l *Listener) recover(devErr error) bool {
	l.out.PushText(msgq.KindError,
		fmt.Sprintf("An unexpected audio error occurred: %v. Attempting to recalibrate.", devErr))

	for {
		if !l.sleep(l.cfg.RetryDelay) {
			return false
		}

		l.out.Push(msgq.NewStatus(msgq.EventRecalibrating,
			"Attempting to recalibrate microphone after error..."))

		err := l.mic.Calibrate(l.ctx, l.cfg.CalibrateDuration)
		if err == nil {
			l.out.Push(msgq.NewStatus(msgq.EventReady, "Recalibration successful."))
			return true
		}
		if l.stopped() {
			return false
		}

		if l.cfg.Recalibrate == DegradeAfterFailure {
			l.out.PushText(msgq.KindFatal,
				fmt.Sprintf("Recalibration failed: %v. Please restart the program.", err))
			return false
		}

		log.Warn("recalibration failed, retrying", "error", err)
		l.out.PushText(msgq.KindError,
			fmt.Sprintf("Recalibration failed: %v. Retrying.", err))
	}
}

// sleep waits for d or until the listener is stopped, reporting whether
// it should keep running.
func (l *Listener) sleep(d time.Duration) bool {
	select {
	case <-l.ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func (l *Listener) stopped() bool {
	return l.ctx.Err() != nil
}
