package protocol

// =============================================================================
// Helper functions for creating messages
// =============================================================================

// NewStatusMessage creates a status snapshot message
func NewStatusMessage(status StatusData) (*Message, error) {
	return NewMessage(TypeStatus, status)
}

// NewLogMessage creates a log-line message
func NewLogMessage(kind, text string) (*Message, error) {
	return NewMessage(TypeLog, LogData{Kind: kind, Text: text})
}

// NewSayMessage creates a typed-speech injection message
func NewSayMessage(text string) (*Message, error) {
	return NewMessage(TypeSay, SayData{Text: text})
}

// NewFeedbackMessage creates a teaching-toy feedback message
func NewFeedbackMessage(verdict, action string) (*Message, error) {
	return NewMessage(TypeFeedback, FeedbackData{Verdict: verdict, Action: action})
}

// NewPongMessage creates a pong response
func NewPongMessage() (*Message, error) {
	return NewMessage(TypePong, nil)
}
