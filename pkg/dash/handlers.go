package dash

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"voicedesk/pkg/hub"
	"voicedesk/pkg/protocol"
)

// handleStatus returns the current status snapshot.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.State())
}

// handleGetLog returns the buffered log entries.
func (s *Server) handleGetLog(c *fiber.Ctx) error {
	return c.JSON(s.Logs())
}

// handleSay injects typed text as if it had been recognized speech.
func (s *Server) handleSay(c *fiber.Ctx) error {
	var req protocol.SayData
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required",
		})
	}
	if s.OnSay == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error": "say is not supported by this demo",
		})
	}
	s.OnSay(req.Text)
	return c.JSON(fiber.Map{"ok": true})
}

// handleFeedback records a teaching-toy verdict.
func (s *Server) handleFeedback(c *fiber.Ctx) error {
	var req protocol.FeedbackData
	if err := c.BodyParser(&req); err != nil || req.Verdict == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "verdict is required",
		})
	}
	if s.OnFeedback == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error": "feedback is not supported by this demo",
		})
	}
	s.OnFeedback(req.Verdict, req.Action)
	return c.JSON(fiber.Map{"ok": true})
}

// handleNext advances the teaching toy to the next round.
func (s *Server) handleNext(c *fiber.Ctx) error {
	if s.OnNext == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error": "next is not supported by this demo",
		})
	}
	s.OnNext()
	return c.JSON(fiber.Map{"ok": true})
}

// handleStatusWS serves live status snapshots and accepts control
// messages (say/feedback/next) from the dashboard page.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	client := hub.NewClient(s.statusHub, c, s.handleControl)
	client.Run()
}

// handleLogWS replays the buffered log, then streams new lines.
func (s *Server) handleLogWS(c *websocket.Conn) {
	for _, entry := range s.Logs() {
		msg, err := protocol.NewLogMessage(entry.Kind, entry.Text)
		if err != nil {
			continue
		}
		if raw, err := msg.Bytes(); err == nil {
			if err := c.WriteMessage(websocket.TextMessage, raw); err != nil {
				c.Close()
				return
			}
		}
	}

	client := hub.NewClient(s.logHub, c, nil)
	client.Run()
}

// handleControl routes inbound websocket messages to the callbacks.
func (s *Server) handleControl(data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		return
	}

	switch msg.Type {
	case protocol.TypeSay:
		var say protocol.SayData
		if err := msg.ParseData(&say); err == nil && say.Text != "" && s.OnSay != nil {
			s.OnSay(say.Text)
		}
	case protocol.TypeFeedback:
		var fb protocol.FeedbackData
		if err := msg.ParseData(&fb); err == nil && fb.Verdict != "" && s.OnFeedback != nil {
			s.OnFeedback(fb.Verdict, fb.Action)
		}
	case protocol.TypeNext:
		if s.OnNext != nil {
			s.OnNext()
		}
	}
}
