// Echo - speech visualizer.
// Everything you say is mirrored: shown on the dashboard with a mood
// face, and rendered as a page in the automated browser.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"voicedesk/internal/config"
	"voicedesk/internal/log"
	"voicedesk/pkg/app"
	"voicedesk/pkg/browser"
	"voicedesk/pkg/command"
	"voicedesk/pkg/dash"
	"voicedesk/pkg/msgq"
	"voicedesk/pkg/protocol"
	"voicedesk/pkg/tts"
)

const hint = "Say anything and watch it echoed back. 'close browser' closes the window, 'exit' quits."

func main() {
	port := flag.String("port", config.DashPort(), "dashboard port")
	webdriver := flag.String("webdriver", config.WebDriverURL(), "WebDriver endpoint for browser automation")
	noMic := flag.Bool("no-mic", false, "run without a microphone; use the dashboard say box")
	noBrowser := flag.Bool("no-browser", false, "skip the browser echo, dashboard only")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*level)
	if !*noMic {
		config.RequireGoogleCredential()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	queue := msgq.NewQueue()
	server := dash.NewServer("echo", *port)
	logf := func(format string, args ...any) {
		server.AddLog("INFO", fmt.Sprintf(format, args...))
	}

	launcher := browser.NewLauncher(browser.NewDriver(*webdriver), browser.SystemOpener{}, logf)

	echo := func(inv command.Invocation) {
		mood := tts.MoodOf(inv.Text)
		server.UpdateState(func(s *protocol.StatusData) {
			s.Face = string(mood)
		})
		if *noBrowser {
			return
		}
		if err := launcher.DisplayText(ctx, strings.ToUpper(inv.Text)); err != nil {
			server.AddLog("ERROR", "Could not display text: "+err.Error())
		}
	}

	// "close browser" first; the empty phrase catches everything else.
	table := command.NewTable(command.FirstMatch,
		command.Rule{Phrase: "close browser", Action: func(command.Invocation) {
			if err := launcher.CloseBrowser(ctx); err != nil {
				server.AddLog("ERROR", "Could not close browser: "+err.Error())
			}
		}},
		command.Rule{Phrase: "", Action: echo},
	)

	var a *app.App
	dispatcher := command.NewDispatcher(table, func() { a.Quit() },
		command.WithExitPhrases("exit", "quit", "close game"),
		command.WithLog(func(kind msgq.Kind, text string) {
			server.AddLog(string(kind), text)
		}),
	)

	opts := []app.Option{app.WithShutdownHook(func(ctx context.Context) {
		if err := launcher.CloseBrowser(ctx); err != nil {
			log.Warn("closing browser on shutdown", "error", err)
		}
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

	a = app.New("echo", queue, dispatcher, server, opts...)
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
