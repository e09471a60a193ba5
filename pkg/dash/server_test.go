package dash

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voicedesk/pkg/protocol"
)

func TestServer_UpdateStateAndStatusEndpoint(t *testing.T) {
	s := NewServer("test", "0")
	s.UpdateState(func(st *protocol.StatusData) {
		st.App = "test"
		st.Alive = true
		st.Stage = "LISTENING"
	})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var status protocol.StatusData
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.App != "test" || !status.Alive || status.Stage != "LISTENING" {
		t.Errorf("status = %+v", status)
	}
}

func TestServer_LogBufferCapped(t *testing.T) {
	s := NewServer("test", "0")
	for i := 0; i < maxLogEntries+10; i++ {
		s.AddLog("INFO", "line")
	}
	if got := len(s.Logs()); got != maxLogEntries {
		t.Errorf("log buffer = %d entries, want %d", got, maxLogEntries)
	}
}

func TestServer_SayEndpoint(t *testing.T) {
	s := NewServer("test", "0")
	var heard string
	s.OnSay = func(text string) { heard = text }

	body := strings.NewReader(`{"text":"open google"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/say", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if heard != "open google" {
		t.Errorf("OnSay got %q", heard)
	}
}

func TestServer_SayRequiresText(t *testing.T) {
	s := NewServer("test", "0")
	s.OnSay = func(string) {}

	req := httptest.NewRequest(http.MethodPost, "/api/say", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServer_FeedbackWithoutCallback(t *testing.T) {
	s := NewServer("test", "0")

	body := strings.NewReader(`{"verdict":"correct"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/feedback", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", resp.StatusCode)
	}
}

func TestServer_ControlMessageRouting(t *testing.T) {
	s := NewServer("test", "0")
	var gotVerdict, gotAction, gotSay string
	nexts := 0
	s.OnSay = func(text string) { gotSay = text }
	s.OnFeedback = func(verdict, action string) { gotVerdict, gotAction = verdict, action }
	s.OnNext = func() { nexts++ }

	say, _ := protocol.NewSayMessage("hello")
	raw, _ := say.Bytes()
	s.handleControl(raw)

	fb, _ := protocol.NewFeedbackMessage("incorrect", "ignore_object")
	raw, _ = fb.Bytes()
	s.handleControl(raw)

	next, _ := protocol.NewMessage(protocol.TypeNext, nil)
	raw, _ = next.Bytes()
	s.handleControl(raw)

	if gotSay != "hello" {
		t.Errorf("say = %q", gotSay)
	}
	if gotVerdict != "incorrect" || gotAction != "ignore_object" {
		t.Errorf("feedback = %q/%q", gotVerdict, gotAction)
	}
	if nexts != 1 {
		t.Errorf("next fired %d times", nexts)
	}

	// Garbage must be ignored, not panic.
	s.handleControl([]byte("not json"))
}

func TestServer_IndexServesHTML(t *testing.T) {
	s := NewServer("test", "0")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
}
