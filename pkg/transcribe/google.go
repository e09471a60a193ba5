package transcribe

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	speech "google.golang.org/api/speech/v1"

	"voicedesk/pkg/audio"
)

// GoogleConfig configures the Google Speech-to-Text client.
type GoogleConfig struct {
	// APIKey is a Google Cloud API key. Either this or AccessToken is required.
	APIKey string

	// AccessToken is an OAuth2 access token used instead of an API key.
	AccessToken string

	// Language is the recognition language hint (default "en-US").
	Language string
}

// Google transcribes audio with the Google Cloud Speech-to-Text API.
type Google struct {
	svc      *speech.Service
	language string
}

// NewGoogle creates a Google transcriber.
func NewGoogle(ctx context.Context, cfg GoogleConfig) (*Google, error) {
	var opts []option.ClientOption
	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.AccessToken != "":
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
		opts = append(opts, option.WithTokenSource(src))
	default:
		return nil, ErrMissingCredential
	}

	svc, err := speech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create speech service: %w", err)
	}

	language := cfg.Language
	if language == "" {
		language = "en-US"
	}

	return &Google{svc: svc, language: language}, nil
}

// Transcribe sends one utterance to the recognize endpoint and returns the
// top transcript. Recognized-but-empty responses map to ErrNotUnderstood;
// transport and server-side failures map to ErrUnavailable.
func (g *Google) Transcribe(ctx context.Context, cap *audio.Capture) (string, error) {
	req := &speech.RecognizeRequest{
		Config: &speech.RecognitionConfig{
			Encoding:        "LINEAR16",
			SampleRateHertz: int64(cap.SampleRate),
			LanguageCode:    g.language,
		},
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(pcmBytes(cap.Samples)),
		},
	}

	resp, err := g.svc.Speech.Recognize(req).Context(ctx).Do()
	if err != nil {
		return "", classifyGoogleError(err)
	}

	var sb strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(result.Alternatives[0].Transcript)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrNotUnderstood
	}
	return text, nil
}

// classifyGoogleError folds API errors into the package sentinels so the
// listener can tell "speak more clearly" from "check your internet".
func classifyGoogleError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		// 4xx means the request itself was rejected (bad audio, bad
		// encoding); everything else is the service's problem.
		if apiErr.Code >= 400 && apiErr.Code < 500 {
			return fmt.Errorf("%w: %v", ErrNotUnderstood, err)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// pcmBytes serializes samples as little-endian 16-bit PCM, the LINEAR16
// wire format expected by the API.
func pcmBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

var _ Transcriber = (*Google)(nil)
