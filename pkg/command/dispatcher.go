package command

import (
	"strings"

	"voicedesk/pkg/msgq"
)

// ListenerStatus is the dispatcher's local mirror of listener state,
// reconstructed purely from queue messages. No listener field is ever
// read directly.
type ListenerStatus struct {
	Calibrated bool
	Alive      bool
	Stage      msgq.Event
	Last       string
}

// LogFunc receives every message the dispatcher consumes plus its own
// annotations (unrecognized commands, exits). Typically wired to the
// dashboard log.
type LogFunc func(kind msgq.Kind, text string)

// Dispatcher consumes drained queue messages once per tick: it mirrors
// listener status, logs everything, and runs command actions for
// RECOGNIZED messages.
type Dispatcher struct {
	table       *Table
	exitPhrases []string
	onExit      func()
	logf        LogFunc

	status         ListenerStatus
	lastRecognized string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithExitPhrases sets the phrases that terminate the application. An
// utterance containing one fires only the exit, never a table action.
func WithExitPhrases(phrases ...string) Option {
	return func(d *Dispatcher) { d.exitPhrases = phrases }
}

// WithLog sets the log sink.
func WithLog(logf LogFunc) Option {
	return func(d *Dispatcher) { d.logf = logf }
}

// NewDispatcher creates a dispatcher over a command table. onExit is
// called when an exit phrase is heard or may be nil.
func NewDispatcher(table *Table, onExit func(), opts ...Option) *Dispatcher {
	d := &Dispatcher{
		table:  table,
		onExit: onExit,
		logf:   func(msgq.Kind, string) {},
		status: ListenerStatus{Alive: true},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch processes one tick's worth of drained messages in order.
func (d *Dispatcher) Dispatch(msgs []msgq.Message) {
	for _, m := range msgs {
		d.dispatch(m)
	}
}

func (d *Dispatcher) dispatch(m msgq.Message) {
	switch m.Kind {
	case msgq.KindRecognized:
		d.logf(m.Kind, "YOU SAID: "+strings.ToUpper(m.Text))
		d.lastRecognized = m.Text
		d.execute(m.Text)

	case msgq.KindStatus:
		d.status.Last = m.Text
		if m.Event != msgq.EventNone {
			d.status.Stage = m.Event
		}
		switch m.Event {
		case msgq.EventReady:
			d.status.Calibrated = true
		case msgq.EventRecalibrating:
			d.status.Calibrated = false
		case msgq.EventStopped:
			d.status.Alive = false
		}
		d.logf(m.Kind, m.Text)

	case msgq.KindFatal:
		d.status.Alive = false
		d.status.Last = m.Text
		d.logf(m.Kind, m.Text)

	default:
		d.logf(m.Kind, m.Text)
	}
}

// execute runs the command bound to an utterance. Exit phrases win over
// everything and suppress all other side effects from the same message.
func (d *Dispatcher) execute(text string) {
	for _, phrase := range d.exitPhrases {
		if strings.Contains(text, phrase) {
			d.logf(msgq.KindInfo, "ACTION: Exiting application. Goodbye!")
			if d.onExit != nil {
				d.onExit()
			}
			return
		}
	}

	cleaned, target := ExtractTarget(text)
	rule, ok := d.table.Resolve(cleaned)
	if !ok {
		d.logf(msgq.KindInfo, "Command '"+text+"' not recognized.")
		return
	}

	rule.Action(Invocation{Text: cleaned, Phrase: rule.Phrase, Target: target})
}

// Status returns the current listener mirror.
func (d *Dispatcher) Status() ListenerStatus {
	return d.status
}

// LastRecognized returns the most recent recognized utterance.
func (d *Dispatcher) LastRecognized() string {
	return d.lastRecognized
}
