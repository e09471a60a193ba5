// Package dash serves the real-time dashboard each voicedesk demo uses
// as its display surface: a status panel, a scrolling log, and controls
// that feed back into the application (typed speech, teaching feedback).
package dash

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"voicedesk/internal/log"
	"voicedesk/pkg/hub"
	"voicedesk/pkg/protocol"
)

// LogEntry is one line of the dashboard's scrolling log.
type LogEntry struct {
	Time string `json:"time"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

const maxLogEntries = 500

// Server is the dashboard web server.
type Server struct {
	app  *fiber.App
	port string
	name string

	// State snapshot, broadcast on every change
	state   protocol.StatusData
	stateMu sync.RWMutex

	// Log buffer (last 500 entries)
	logs   []LogEntry
	logsMu sync.RWMutex

	// Hubs for websocket broadcast
	statusHub *hub.Hub
	logHub    *hub.Hub
	done      chan struct{}
	stopOnce  sync.Once

	// Control callbacks, invoked from websocket/HTTP handler
	// goroutines. May be nil.
	OnSay      func(text string)
	OnFeedback func(verdict, action string)
	OnNext     func()
}

// NewServer creates a dashboard server for the named demo.
func NewServer(name, port string) *Server {
	s := &Server{
		port:      port,
		name:      name,
		logs:      make([]LogEntry, 0, maxLogEntries),
		statusHub: hub.New("status"),
		logHub:    hub.New("log"),
		done:      make(chan struct{}),
	}

	app := fiber.New(fiber.Config{
		AppName:               name + " dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	app.Get("/", s.handleIndex)

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/log", s.handleGetLog)
	api.Post("/say", s.handleSay)
	api.Post("/feedback", s.handleFeedback)
	api.Post("/next", s.handleNext)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/log", websocket.New(s.handleLogWS))

	s.app = app
	return s
}

// Start starts the web server and blocks.
func (s *Server) Start() error {
	log.Info("dashboard listening", "app", s.name, "url", "http://localhost:"+s.port)

	go s.statusHub.Run(s.done)
	go s.logHub.Run(s.done)

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("dashboard server stopped", "error", err)
		}
	}()
}

// UpdateState mutates the status snapshot under lock and broadcasts the
// result to all status clients.
func (s *Server) UpdateState(update func(*protocol.StatusData)) {
	s.stateMu.Lock()
	update(&s.state)
	state := s.state
	s.stateMu.Unlock()

	msg, err := protocol.NewStatusMessage(state)
	if err != nil {
		log.Error("encode status", "error", err)
		return
	}
	raw, err := msg.Bytes()
	if err != nil {
		log.Error("encode status", "error", err)
		return
	}
	s.statusHub.BroadcastSticky(raw)
}

// State returns a copy of the current status snapshot.
func (s *Server) State() protocol.StatusData {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// AddLog appends a log line and broadcasts it to log clients.
func (s *Server) AddLog(kind, text string) {
	entry := LogEntry{
		Time: time.Now().Format("15:04:05"),
		Kind: kind,
		Text: text,
	}

	s.logsMu.Lock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogEntries {
		s.logs = s.logs[1:]
	}
	s.logsMu.Unlock()

	msg, err := protocol.NewLogMessage(kind, text)
	if err != nil {
		return
	}
	if raw, err := msg.Bytes(); err == nil {
		s.logHub.Broadcast(raw)
	}
}

// Logs returns a copy of the buffered log entries.
func (s *Server) Logs() []LogEntry {
	s.logsMu.RLock()
	defer s.logsMu.RUnlock()
	return append([]LogEntry(nil), s.logs...)
}

// Shutdown gracefully stops the web server and both hubs.
func (s *Server) Shutdown() error {
	s.stopOnce.Do(func() { close(s.done) })
	return s.app.Shutdown()
}
