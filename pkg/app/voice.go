package app

import (
	"context"
	"fmt"

	"voicedesk/internal/config"
	"voicedesk/pkg/audio"
	"voicedesk/pkg/listener"
	"voicedesk/pkg/msgq"
	"voicedesk/pkg/transcribe"
)

// NewVoiceListener builds the microphone and transcription stack from
// environment configuration and returns a listener producing into queue.
// The returned cleanup releases the audio device; call it after Join.
func NewVoiceListener(ctx context.Context, queue *msgq.Queue, hint string) (*listener.Listener, func(), error) {
	listenCfg := audio.DefaultListenConfig()
	listenCfg.Timeout = config.ListenTimeout()
	listenCfg.MaxPhrase = config.MaxPhrase()

	mic, err := audio.NewMic(listenCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open microphone: %w", err)
	}

	stt, err := transcribe.NewGoogle(ctx, transcribe.GoogleConfig{
		APIKey:      config.GoogleAPIKey(),
		AccessToken: config.GoogleAccessToken(),
	})
	if err != nil {
		mic.Close()
		return nil, nil, fmt.Errorf("speech client: %w", err)
	}

	cfg := listener.DefaultConfig()
	cfg.CalibrateDuration = config.CalibrateDuration()
	cfg.Hint = hint
	if config.RecalibrateForever() {
		cfg.Recalibrate = listener.RetryForever
	}

	l := listener.New(mic, stt, queue, cfg)
	cleanup := func() { mic.Close() }
	return l, cleanup, nil
}
