package protocol

import (
	"encoding/json"
	"testing"
)

func TestMessage_RoundTrip(t *testing.T) {
	msg, err := NewStatusMessage(StatusData{
		RunID:      "run-1",
		App:        "voicebrowser",
		Calibrated: true,
		Alive:      true,
		Stage:      "LISTENING",
		LastHeard:  "open google",
	})
	if err != nil {
		t.Fatalf("new message: %v", err)
	}
	if msg.Type != TypeStatus {
		t.Errorf("type = %q", msg.Type)
	}
	if msg.Timestamp == 0 {
		t.Error("timestamp not set")
	}

	raw, err := msg.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}

	parsed, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var status StatusData
	if err := parsed.ParseData(&status); err != nil {
		t.Fatalf("parse data: %v", err)
	}
	if status.RunID != "run-1" || !status.Calibrated || status.Stage != "LISTENING" {
		t.Errorf("status round trip: %+v", status)
	}
}

func TestMessage_NilDataIsOmitted(t *testing.T) {
	msg, err := NewPongMessage()
	if err != nil {
		t.Fatalf("new pong: %v", err)
	}
	raw, _ := msg.Bytes()

	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := generic["data"]; ok {
		t.Error("nil data should be omitted from the wire form")
	}
}

func TestMessage_ParseDataOnNilIsNoOp(t *testing.T) {
	msg := &Message{Type: TypePing}
	var status StatusData
	if err := msg.ParseData(&status); err != nil {
		t.Errorf("ParseData on nil data: %v", err)
	}
}

func TestParseMessage_Invalid(t *testing.T) {
	if _, err := ParseMessage([]byte("not json")); err == nil {
		t.Error("expected parse error")
	}
}

func TestNewLogMessage(t *testing.T) {
	msg, err := NewLogMessage("RECOGNIZED", "YOU SAID: OPEN GOOGLE")
	if err != nil {
		t.Fatalf("new log: %v", err)
	}
	var entry LogData
	if err := msg.ParseData(&entry); err != nil {
		t.Fatalf("parse data: %v", err)
	}
	if entry.Kind != "RECOGNIZED" || entry.Text != "YOU SAID: OPEN GOOGLE" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestNewFeedbackMessage(t *testing.T) {
	msg, err := NewFeedbackMessage("incorrect", "ignore_object")
	if err != nil {
		t.Fatalf("new feedback: %v", err)
	}
	var fb FeedbackData
	if err := msg.ParseData(&fb); err != nil {
		t.Fatalf("parse data: %v", err)
	}
	if fb.Verdict != "incorrect" || fb.Action != "ignore_object" {
		t.Errorf("feedback = %+v", fb)
	}
}
