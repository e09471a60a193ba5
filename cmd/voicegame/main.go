// Voicegame - voice-controlled game prototype.
// Speak "start game", "move forward", "attack", "pause"; the dashboard
// shows the game screen, score and the command log.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"voicedesk/internal/config"
	"voicedesk/internal/log"
	"voicedesk/pkg/app"
	"voicedesk/pkg/command"
	"voicedesk/pkg/dash"
	"voicedesk/pkg/game"
	"voicedesk/pkg/msgq"
	"voicedesk/pkg/protocol"
)

const hint = "Try: 'start game', 'move forward', 'attack', 'check health', 'pause', 'exit'"

func main() {
	port := flag.String("port", config.DashPort(), "dashboard port")
	noMic := flag.Bool("no-mic", false, "run without a microphone; use the dashboard say box")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*level)
	if !*noMic {
		config.RequireGoogleCredential()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	queue := msgq.NewQueue()
	server := dash.NewServer("voicegame", *port)

	g := game.New(func(format string, args ...any) {
		server.AddLog("INFO", fmt.Sprintf(format, args...))
	})

	// A single empty-phrase rule matches every utterance; the game does
	// its own state-scoped matching and unrecognized logging.
	table := command.NewTable(command.FirstMatch,
		command.Rule{Phrase: "", Action: func(inv command.Invocation) {
			g.HandleCommand(inv.Text)
		}},
	)

	var a *app.App
	dispatcher := command.NewDispatcher(table, func() { a.Quit() },
		command.WithExitPhrases("exit", "quit", "close game", "shutdown"),
		command.WithLog(func(kind msgq.Kind, text string) {
			server.AddLog(string(kind), text)
		}),
	)

	var last protocol.StatusData
	opts := []app.Option{app.WithOnTick(func() {
		if last.GameState == g.State().String() && last.Score == g.Score() &&
			last.Health == g.Health() && last.Level == g.Level() {
			return
		}
		server.UpdateState(func(s *protocol.StatusData) {
			s.GameState = g.State().String()
			s.Score = g.Score()
			s.Health = g.Health()
			s.Level = g.Level()
			last = *s
		})
	})}

	var cleanup func()
	if !*noMic {
		l, c, err := app.NewVoiceListener(ctx, queue, hint)
		if err != nil {
			log.Error("voice setup failed", "error", err)
			os.Exit(1)
		}
		cleanup = c
		opts = append(opts, app.WithListener(l))
	} else {
		queue.Push(msgq.NewStatus(msgq.EventReady, "Running without a microphone. Use the dashboard say box."))
		queue.PushText(msgq.KindCommand, hint)
	}

	a = app.New("voicegame", queue, dispatcher, server, opts...)
	server.OnSay = a.Say

	err := a.Run(ctx)
	if cleanup != nil {
		cleanup()
	}
	if err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}
}
