// Package config provides configuration helpers for voicedesk commands.
// All knobs are environment variables with defaults, so demos run with
// zero setup when a Google credential is present.
package config

import (
	"fmt"
	"os"
	"time"
)

// Defaults shared by the demo binaries.
const (
	DefaultDashPort     = "8080"
	DefaultWebDriverURL = "http://localhost:4444"
	DefaultTickRate     = 30 // ticks per second

	DefaultCalibrateDuration = 2 * time.Second
	DefaultListenTimeout     = 4 * time.Second
	DefaultMaxPhrase         = 7 * time.Second
)

// GoogleAPIKey returns the Google Cloud API key from GOOGLE_API_KEY.
// May be empty when GoogleAccessToken is set instead.
func GoogleAPIKey() string {
	return os.Getenv("GOOGLE_API_KEY")
}

// GoogleAccessToken returns an OAuth2 access token from GOOGLE_ACCESS_TOKEN.
func GoogleAccessToken() string {
	return os.Getenv("GOOGLE_ACCESS_TOKEN")
}

// RequireGoogleCredential exits with a usage hint when neither a Google API
// key nor an access token is configured.
func RequireGoogleCredential() {
	if GoogleAPIKey() == "" && GoogleAccessToken() == "" {
		fmt.Fprintln(os.Stderr, "Error: GOOGLE_API_KEY or GOOGLE_ACCESS_TOKEN is required for speech recognition")
		fmt.Fprintln(os.Stderr, "Usage: GOOGLE_API_KEY=... go run ./cmd/...")
		os.Exit(1)
	}
}

// DashPort returns the dashboard port from DASH_PORT or the default.
func DashPort() string {
	if port := os.Getenv("DASH_PORT"); port != "" {
		return port
	}
	return DefaultDashPort
}

// WebDriverURL returns the WebDriver endpoint from WEBDRIVER_URL or the default.
func WebDriverURL() string {
	if url := os.Getenv("WEBDRIVER_URL"); url != "" {
		return url
	}
	return DefaultWebDriverURL
}

// CalibrateDuration returns the ambient-noise calibration duration
// from CALIBRATE_DURATION (Go duration syntax) or the default.
func CalibrateDuration() time.Duration {
	return envDuration("CALIBRATE_DURATION", DefaultCalibrateDuration)
}

// ListenTimeout returns the per-utterance listen timeout from LISTEN_TIMEOUT.
func ListenTimeout() time.Duration {
	return envDuration("LISTEN_TIMEOUT", DefaultListenTimeout)
}

// MaxPhrase returns the maximum phrase length from MAX_PHRASE.
func MaxPhrase() time.Duration {
	return envDuration("MAX_PHRASE", DefaultMaxPhrase)
}

// RecalibrateForever reports whether the listener should keep retrying
// recalibration after a device error instead of degrading permanently.
// Set RECALIBRATE=forever to opt in; the default is one attempt.
func RecalibrateForever() bool {
	return os.Getenv("RECALIBRATE") == "forever"
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid %s=%q, using %s\n", key, raw, fallback)
		return fallback
	}
	return d
}
