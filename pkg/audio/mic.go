package audio

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	framesPerBuffer = 1024

	// gateFactor scales the calibrated ambient level into the
	// speech-detection threshold.
	gateFactor = 1.75

	// minThreshold keeps the gate sane in dead-silent rooms.
	minThreshold = 120.0

	// preRollFrames of audio before the gate opened are kept so the
	// first syllable is not clipped.
	preRollFrames = 4
)

// Mic captures utterances from the default input device via portaudio.
type Mic struct {
	cfg ListenConfig

	mu        sync.Mutex
	stream    *portaudio.Stream
	buf       []int16
	threshold float64
	closed    bool
}

// NewMic opens the default capture device.
// Call Close to release portaudio when done.
func NewMic(cfg ListenConfig) (*Mic, error) {
	if cfg.SampleRate == 0 {
		cfg = DefaultListenConfig()
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}

	m := &Mic{
		cfg:       cfg,
		buf:       make([]int16, framesPerBuffer),
		threshold: minThreshold,
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(cfg.SampleRate), framesPerBuffer, m.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open capture stream: %w", err)
	}
	m.stream = stream

	return m, nil
}

// Calibrate measures ambient noise for d and derives the speech gate.
func (m *Mic) Calibrate(ctx context.Context, d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	if err := m.stream.Start(); err != nil {
		return fmt.Errorf("start capture stream: %w", err)
	}
	defer m.stream.Stop()

	var (
		sum    float64
		frames int
	)
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.stream.Read(); err != nil {
			return fmt.Errorf("read capture stream: %w", err)
		}
		sum += rms(m.buf)
		frames++
	}

	ambient := 0.0
	if frames > 0 {
		ambient = sum / float64(frames)
	}
	m.threshold = math.Max(ambient*gateFactor, minThreshold)
	return nil
}

// Listen blocks until one utterance is captured. It returns ErrNoSpeech
// when the timeout elapses before the gate opens.
func (m *Mic) Listen(ctx context.Context) (*Capture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}

	if err := m.stream.Start(); err != nil {
		return nil, fmt.Errorf("start capture stream: %w", err)
	}
	defer m.stream.Stop()

	var (
		samples    []int16
		preRoll    [][]int16
		speech     bool
		speechAt   time.Time
		quietSince time.Time
	)
	deadline := time.Now().Add(m.cfg.Timeout)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := m.stream.Read(); err != nil {
			return nil, fmt.Errorf("read capture stream: %w", err)
		}

		level := rms(m.buf)

		if !speech {
			// Keep a short pre-roll so the first syllable survives.
			frame := make([]int16, len(m.buf))
			copy(frame, m.buf)
			preRoll = append(preRoll, frame)
			if len(preRoll) > preRollFrames {
				preRoll = preRoll[1:]
			}

			if level >= m.threshold {
				speech = true
				speechAt = time.Now()
				for _, f := range preRoll {
					samples = append(samples, f...)
				}
				continue
			}
			if time.Now().After(deadline) {
				return nil, ErrNoSpeech
			}
			continue
		}

		samples = append(samples, m.buf...)

		if level < m.threshold {
			if quietSince.IsZero() {
				quietSince = time.Now()
			} else if time.Since(quietSince) >= m.cfg.QuietTime {
				break
			}
		} else {
			quietSince = time.Time{}
		}

		if time.Since(speechAt) >= m.cfg.MaxPhrase {
			break
		}
	}

	return &Capture{Samples: samples, SampleRate: m.cfg.SampleRate}, nil
}

// Close stops the stream and releases portaudio.
func (m *Mic) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true

	err := m.stream.Close()
	portaudio.Terminate()
	return err
}

// rms computes the root-mean-square level of a frame.
func rms(frame []int16) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		f := float64(s)
		sum += f * f
	}
	return math.Sqrt(sum / float64(len(frame)))
}

var _ Device = (*Mic)(nil)
