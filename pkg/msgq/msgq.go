// Package msgq implements the tagged message channel between the voice
// listener goroutine and the UI tick loop.
//
// The queue is the only communication path out of the listener: status,
// recognized text, and errors all travel as tagged messages, and the UI
// side reconstructs listener state from them. It is an unbounded FIFO
// meant for exactly one producer and one consumer; Push never blocks and
// Drain removes everything currently queued without blocking.
package msgq

import (
	"sync"
	"time"
)

// Kind tags a message with its meaning.
type Kind string

const (
	// KindStatus reports listener progress (calibrating, listening, ...).
	KindStatus Kind = "STATUS"
	// KindRecognized carries a lowercased transcript of an utterance.
	KindRecognized Kind = "RECOGNIZED"
	// KindError reports a recoverable failure; the listener keeps running.
	KindError Kind = "ERROR"
	// KindFatal reports an unrecoverable failure; the listener has stopped.
	KindFatal Kind = "FATAL_ERROR"
	// KindInfo carries informational text for the log.
	KindInfo Kind = "INFO"
	// KindCommand carries a usage hint shown to the user.
	KindCommand Kind = "COMMAND"
)

// Event refines KindStatus messages so consumers can mirror listener state
// without parsing free text.
type Event string

const (
	EventNone          Event = ""
	EventCalibrating   Event = "calibrating"
	EventReady         Event = "ready"
	EventListening     Event = "listening"
	EventRecognizing   Event = "recognizing"
	EventRecalibrating Event = "recalibrating"
	EventStopped       Event = "stopped"
)

// Message is one tagged string. It is produced by the listener and
// consumed exactly once by the dispatcher.
type Message struct {
	Kind  Kind
	Event Event
	Text  string
	Time  time.Time
}

// New creates a message with the current timestamp.
func New(kind Kind, text string) Message {
	return Message{Kind: kind, Text: text, Time: time.Now()}
}

// NewStatus creates a STATUS message carrying an event marker.
func NewStatus(event Event, text string) Message {
	return Message{Kind: KindStatus, Event: event, Text: text, Time: time.Now()}
}

// Queue is an unbounded FIFO of messages, safe for concurrent use by a
// single producer and a single consumer.
type Queue struct {
	mu    sync.Mutex
	items []Message
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a message. It never blocks.
func (q *Queue) Push(m Message) {
	q.mu.Lock()
	q.items = append(q.items, m)
	q.mu.Unlock()
}

// PushText is shorthand for Push(New(kind, text)).
func (q *Queue) PushText(kind Kind, text string) {
	q.Push(New(kind, text))
}

// Drain removes and returns all currently queued messages in FIFO order.
// It never blocks; an empty queue yields nil.
func (q *Queue) Drain() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	items := q.items
	q.items = nil
	return items
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
