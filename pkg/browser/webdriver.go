package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"voicedesk/internal/httpc"
)

// ErrNoSession means a navigation was attempted without an open session.
var ErrNoSession = errors.New("browser: no active session")

// Driver talks to a local WebDriver endpoint (chromedriver, geckodriver,
// or a Selenium grid) over its JSON-over-HTTP wire protocol.
type Driver struct {
	baseURL string
	client  *http.Client
}

// NewDriver creates a driver client for the given endpoint, e.g.
// "http://localhost:4444".
func NewDriver(baseURL string) *Driver {
	return &Driver{baseURL: baseURL, client: httpc.Client}
}

// Session is one automated browser window.
type Session struct {
	driver  *Driver
	id      string
	Browser string
}

type wdValue struct {
	SessionID string `json:"sessionId"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}

type wdResponse struct {
	Value wdValue `json:"value"`
}

// NewSession starts a browser of the given name ("chrome", "firefox",
// "MicrosoftEdge") and returns the session handle.
func (d *Driver) NewSession(ctx context.Context, browserName string) (*Session, error) {
	body := map[string]any{
		"capabilities": map[string]any{
			"alwaysMatch": map[string]any{
				"browserName": browserName,
			},
		},
	}

	var resp wdResponse
	if err := d.do(ctx, http.MethodPost, "/session", body, &resp); err != nil {
		return nil, fmt.Errorf("create %s session: %w", browserName, err)
	}
	if resp.Value.SessionID == "" {
		return nil, fmt.Errorf("create %s session: empty session id", browserName)
	}

	return &Session{driver: d, id: resp.Value.SessionID, Browser: browserName}, nil
}

// Navigate points the session at a URL.
func (s *Session) Navigate(ctx context.Context, url string) error {
	path := "/session/" + s.id + "/url"
	if err := s.driver.do(ctx, http.MethodPost, path, map[string]any{"url": url}, nil); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// Close ends the session, closing the browser window.
func (s *Session) Close(ctx context.Context) error {
	if err := s.driver.do(ctx, http.MethodDelete, "/session/"+s.id, nil, nil); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}

// do performs one wire-protocol call and decodes the response envelope.
func (d *Driver) do(ctx context.Context, method, path string, body any, out *wdResponse) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var envelope wdResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil && resp.StatusCode < 300 {
		return err
	}
	if resp.StatusCode >= 300 || envelope.Value.Error != "" {
		if envelope.Value.Message != "" {
			return fmt.Errorf("webdriver: %s: %s", envelope.Value.Error, envelope.Value.Message)
		}
		return fmt.Errorf("webdriver: status %d", resp.StatusCode)
	}
	if out != nil {
		*out = envelope
	}
	return nil
}
