// Speakbox - type-to-speech toy.
// Type text into the dashboard say box; it is spoken through the
// platform speech command while the face animates for roughly the
// length of the utterance.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"voicedesk/internal/config"
	"voicedesk/internal/log"
	"voicedesk/pkg/app"
	"voicedesk/pkg/command"
	"voicedesk/pkg/dash"
	"voicedesk/pkg/msgq"
	"voicedesk/pkg/protocol"
	"voicedesk/pkg/tts"
)

func main() {
	port := flag.String("port", config.DashPort(), "dashboard port")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	engine, err := tts.NewExecEngine()
	if err != nil {
		log.Error("no speech engine", "error", err)
		os.Exit(1)
	}

	queue := msgq.NewQueue()
	server := dash.NewServer("speakbox", *port)
	speaker := tts.NewSpeaker(engine, func(format string, args ...any) {
		log.Warn("speech", "detail", format, "args", args)
	})

	// Every "recognized" message here is typed text; speak it and set
	// the face to match.
	table := command.NewTable(command.FirstMatch,
		command.Rule{Phrase: "", Action: func(inv command.Invocation) {
			speaker.Say(ctx, inv.Text)
			mood := tts.MoodOf(inv.Text)
			server.AddLog("INFO", "Speaking with mood: "+string(mood))
			server.UpdateState(func(s *protocol.StatusData) {
				s.Face = string(mood)
			})
		}},
	)

	var a *app.App
	dispatcher := command.NewDispatcher(table, func() { a.Quit() },
		command.WithExitPhrases("exit", "quit"),
		command.WithLog(func(kind msgq.Kind, text string) {
			server.AddLog(string(kind), text)
		}),
	)

	speaking := false
	a = app.New("speakbox", queue, dispatcher, server, app.WithOnTick(func() {
		now := speaker.Speaking()
		if now == speaking {
			return
		}
		speaking = now
		server.UpdateState(func(s *protocol.StatusData) {
			s.Speaking = now
			if !now {
				s.Face = string(tts.MoodNeutral)
			}
		})
	}))
	server.OnSay = a.Say

	queue.Push(msgq.NewStatus(msgq.EventReady, "Type something in the say box and I'll speak it."))

	if err := a.Run(ctx); err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}
}
