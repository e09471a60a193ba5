// Package app is the shared application shell for the voicedesk demos:
// it owns the listener, the message queue, the dispatcher and the
// dashboard, and drives them from a fixed-rate tick loop.
package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/google/uuid"

	"voicedesk/internal/log"
	"voicedesk/pkg/command"
	"voicedesk/pkg/dash"
	"voicedesk/pkg/listener"
	"voicedesk/pkg/msgq"
	"voicedesk/pkg/protocol"
)

// DefaultTickRate is the UI loop frequency in ticks per second.
const DefaultTickRate = 30

// App wires one demo together. The tick loop is the single consumer of
// the queue; everything UI-side happens on it.
type App struct {
	name       string
	runID      string
	tick       time.Duration
	queue      *msgq.Queue
	dispatcher *command.Dispatcher
	dash       *dash.Server
	listener   *listener.Listener

	onTick     func()
	onShutdown []func(context.Context)

	quit     chan struct{}
	quitOnce sync.Once
}

// Option configures an App.
type Option func(*App)

// WithListener attaches a voice listener; the app starts and stops it.
func WithListener(l *listener.Listener) Option {
	return func(a *App) { a.listener = l }
}

// WithTickRate overrides the loop frequency in ticks per second.
func WithTickRate(hz int) Option {
	return func(a *App) {
		if hz > 0 {
			a.tick = time.Second / time.Duration(hz)
		}
	}
}

// WithOnTick adds a per-tick hook, run after dispatch. Demos use it to
// push their own state onto the dashboard.
func WithOnTick(fn func()) Option {
	return func(a *App) { a.onTick = fn }
}

// WithShutdownHook adds a hook run during shutdown, before the
// dashboard stops.
func WithShutdownHook(fn func(context.Context)) Option {
	return func(a *App) { a.onShutdown = append(a.onShutdown, fn) }
}

// New creates an application shell. queue is the channel the listener
// (and the dashboard say box) produce into; dispatcher consumes it.
func New(name string, queue *msgq.Queue, dispatcher *command.Dispatcher, server *dash.Server, opts ...Option) *App {
	a := &App{
		name:       name,
		runID:      uuid.NewString(),
		tick:       time.Second / DefaultTickRate,
		queue:      queue,
		dispatcher: dispatcher,
		dash:       server,
		quit:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunID identifies this process run on the dashboard.
func (a *App) RunID() string { return a.runID }

// Quit asks the tick loop to stop. Safe to call from any goroutine and
// more than once; wire it to the dispatcher's exit action.
func (a *App) Quit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// Say injects text as if it had been recognized speech. Wire it to the
// dashboard's say box.
func (a *App) Say(text string) {
	a.queue.PushText(msgq.KindRecognized, strings.ToLower(strings.TrimSpace(text)))
}

// Run starts the dashboard and listener and blocks in the tick loop
// until Quit is called, the context is cancelled, or the process is
// told to stop. It shuts everything down before returning.
func (a *App) Run(ctx context.Context) error {
	log.Info("starting", "app", a.name, "run_id", a.runID, "tick", a.tick)

	a.dash.StartAsync()
	if a.listener != nil {
		a.listener.Start()
	}

	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-a.quit:
			break loop
		case <-ticker.C:
			a.step()
		}
	}

	return a.shutdown()
}

// step runs one tick: drain, dispatch, mirror status, demo hook.
func (a *App) step() {
	msgs := a.queue.Drain()
	if len(msgs) > 0 {
		a.dispatcher.Dispatch(msgs)

		for _, m := range msgs {
			if m.Kind == msgq.KindFatal {
				a.notifyFatal(m.Text)
			}
		}

		status := a.dispatcher.Status()
		a.dash.UpdateState(func(s *protocol.StatusData) {
			s.RunID = a.runID
			s.App = a.name
			s.Calibrated = status.Calibrated
			s.Alive = status.Alive
			s.Stage = string(status.Stage)
			s.LastHeard = a.dispatcher.LastRecognized()
		})
	}

	if a.onTick != nil {
		a.onTick()
	}
}

// notifyFatal raises a desktop notification; the dashboard log alone is
// easy to miss when the window is in the background.
func (a *App) notifyFatal(text string) {
	if err := beeep.Alert(a.name, text, ""); err != nil {
		log.Warn("desktop notification failed", "error", err)
	}
}

func (a *App) shutdown() error {
	log.Info("shutting down", "app", a.name)

	if a.listener != nil {
		a.listener.Stop()
		a.listener.Join()
		// Final drain so STOPPED and late messages reach the log.
		if msgs := a.queue.Drain(); len(msgs) > 0 {
			a.dispatcher.Dispatch(msgs)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, hook := range a.onShutdown {
		hook(ctx)
	}

	if err := a.dash.Shutdown(); err != nil {
		// Shutdown errors when the loop quit before Listen came up;
		// nothing to unwind in that case.
		log.Warn("dashboard shutdown", "error", err)
	}
	return nil
}
