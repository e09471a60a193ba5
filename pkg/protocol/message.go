// Package protocol defines the WebSocket message types exchanged between
// a voicedesk application and its dashboard clients (the browser page and
// the watch CLI).
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// App → Dashboard messages
	TypeStatus MessageType = "status" // Full application status snapshot
	TypeLog    MessageType = "log"    // One scrolling-log line

	// Dashboard → App messages
	TypeSay      MessageType = "say"      // Inject text as if it were recognized speech
	TypeFeedback MessageType = "feedback" // Teaching-toy correct/incorrect verdict
	TypeNext     MessageType = "next"     // Teaching-toy advance to next round

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// =============================================================================
// App → Dashboard Message Types
// =============================================================================

// StatusData is the full status snapshot broadcast every time something
// changes. Fields not used by a given demo are zero and omitted.
type StatusData struct {
	RunID      string `json:"run_id"`
	App        string `json:"app"`
	Calibrated bool   `json:"calibrated"`
	Alive      bool   `json:"alive"`
	Stage      string `json:"stage"`

	LastHeard   string `json:"last_heard,omitempty"`
	LastCommand string `json:"last_command,omitempty"`

	// Face/expression for the echo and speech demos.
	Face     string `json:"face,omitempty"`
	Speaking bool   `json:"speaking,omitempty"`

	// Game demo state.
	GameState string `json:"game_state,omitempty"`
	Score     int    `json:"score,omitempty"`
	Health    int    `json:"health,omitempty"`
	Level     int    `json:"level,omitempty"`

	// Teaching-toy state.
	Round    int        `json:"round,omitempty"`
	Rounds   int        `json:"rounds,omitempty"`
	Accuracy float64    `json:"accuracy,omitempty"`
	Decision string     `json:"decision,omitempty"`
	Scenario string     `json:"scenario,omitempty"`
	Waiting  bool       `json:"waiting,omitempty"`
	Rules    []RuleData `json:"rules,omitempty"`
}

// RuleData is one teaching-toy rule as shown in the brain panel.
type RuleData struct {
	Condition string `json:"condition"`
	Action    string `json:"action"`
}

// LogData is one line of the scrolling on-screen log.
type LogData struct {
	Kind string `json:"kind"` // STATUS, RECOGNIZED, ERROR, FATAL_ERROR, INFO, COMMAND
	Text string `json:"text"`
}

// =============================================================================
// Dashboard → App Message Types
// =============================================================================

// SayData carries typed text to treat as recognized speech.
type SayData struct {
	Text string `json:"text"`
}

// FeedbackData carries a teaching-toy verdict. Action is required when
// the verdict is "incorrect".
type FeedbackData struct {
	Verdict string `json:"verdict"` // "correct" or "incorrect"
	Action  string `json:"action,omitempty"`
}
