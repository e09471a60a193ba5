package tts

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		text string
		want time.Duration
	}{
		{"", time.Second},
		{"hi", 1200 * time.Millisecond},
		{"hello world", 2100 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := EstimateDuration(tt.text); got != tt.want {
			t.Errorf("EstimateDuration(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestMoodOf(t *testing.T) {
	tests := []struct {
		text string
		want Mood
	}{
		{"hello there", MoodGreeting},
		{"hey!", MoodGreeting},
		{"i am so happy today", MoodHappy},
		{"that makes me sad", MoodSad},
		{"i am really mad", MoodAngry},
		{"i love this", MoodLove},
		{"the weather is fine", MoodNeutral},
		{"", MoodNeutral},
		// Keyword must be a whole word, not a substring.
		{"thinking", MoodNeutral},
	}
	for _, tt := range tests {
		if got := MoodOf(tt.text); got != tt.want {
			t.Errorf("MoodOf(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestSpeaker_SayIsAsync(t *testing.T) {
	slow := &blockingEngine{release: make(chan struct{})}
	speaker := NewSpeaker(slow, nil)

	done := make(chan struct{})
	go func() {
		speaker.Say(context.Background(), "hello")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Say blocked on a slow engine")
	}
	close(slow.release)
}

func TestSpeaker_SpeakingWindow(t *testing.T) {
	engine := &MockEngine{}
	speaker := NewSpeaker(engine, nil)

	if speaker.Speaking() {
		t.Error("new speaker should be silent")
	}

	speaker.Say(context.Background(), "this is a longer sentence")
	if !speaker.Speaking() {
		t.Error("expected Speaking() right after Say")
	}
	if got := speaker.Last(); got != "this is a longer sentence" {
		t.Errorf("Last() = %q", got)
	}
}

func TestSpeaker_EngineErrorIsLoggedNotFatal(t *testing.T) {
	logged := make(chan string, 1)
	engine := &MockEngine{Err: errors.New("device busy")}
	speaker := NewSpeaker(engine, func(format string, args ...any) {
		select {
		case logged <- format:
		default:
		}
	})

	speaker.Say(context.Background(), "hello")

	select {
	case <-logged:
	case <-time.After(time.Second):
		t.Fatal("engine error was not logged")
	}
}

func TestEngineForOS(t *testing.T) {
	for goos, program := range map[string]string{
		"darwin":  "say",
		"linux":   "espeak",
		"windows": "powershell",
	} {
		e, err := engineForOS(goos)
		if err != nil {
			t.Fatalf("%s: %v", goos, err)
		}
		if e.program != program {
			t.Errorf("%s: program = %q, want %q", goos, e.program, program)
		}
	}

	if _, err := engineForOS("plan9"); !errors.Is(err, ErrNoEngine) {
		t.Errorf("plan9: err = %v, want ErrNoEngine", err)
	}
}

func TestPSQuote(t *testing.T) {
	if got := psQuote("it's"); got != "'it''s'" {
		t.Errorf("psQuote = %q", got)
	}
}

type blockingEngine struct{ release chan struct{} }

func (b *blockingEngine) Speak(ctx context.Context, _ string) error {
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return nil
}
