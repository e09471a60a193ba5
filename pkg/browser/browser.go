// Package browser opens web pages for voice commands, either through the
// operating system's default browser or through a WebDriver-automated
// session (chrome, firefox, edge).
package browser

import (
	"github.com/pkg/browser"
)

// Opener opens a URL in some browser.
type Opener interface {
	Open(url string) error
}

// SystemOpener opens URLs in the OS default browser.
type SystemOpener struct{}

// Open launches the default browser on url.
func (SystemOpener) Open(url string) error {
	return browser.OpenURL(url)
}

// Well-known destinations for the launcher demos.
const (
	GoogleURL    = "https://www.google.com"
	YouTubeURL   = "https://www.youtube.com"
	WikipediaURL = "https://www.wikipedia.org"
	GitHubURL    = "https://github.com"
)
