// Voicebrowser - voice-controlled browser launcher.
// Say "open google in firefox" or "open website stackoverflow.com";
// the dashboard at http://localhost:8080 shows status and the log.
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
)

const hint = "Try: 'open google', 'open youtube in firefox', 'open website example.com', 'close browser', 'exit'"

func main() {
	port := flag.String("port", config.DashPort(), "dashboard port")
	webdriver := flag.String("webdriver", config.WebDriverURL(), "WebDriver endpoint for browser automation")
	noMic := flag.Bool("no-mic", false, "run without a microphone; use the dashboard say box")
	longest := flag.Bool("longest-match", false, "resolve commands by longest phrase instead of list order")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*level)
	if !*noMic {
		config.RequireGoogleCredential()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	queue := msgq.NewQueue()
	server := dash.NewServer("voicebrowser", *port)
	logf := func(format string, args ...any) {
		server.AddLog("INFO", fmt.Sprintf(format, args...))
	}

	launcher := browser.NewLauncher(browser.NewDriver(*webdriver), browser.SystemOpener{}, logf)

	open := func(url string) command.Action {
		return func(inv command.Invocation) {
			if err := launcher.OpenURL(ctx, url, inv.Target); err != nil {
				server.AddLog("ERROR", "Could not open browser: "+err.Error())
			}
		}
	}

	strategy := command.FirstMatch
	if *longest {
		strategy = command.LongestMatch
	}

	var dispatcher *command.Dispatcher
	table := command.NewTable(strategy,
		command.Rule{Phrase: "open google", Action: open(browser.GoogleURL)},
		command.Rule{Phrase: "open youtube", Action: open(browser.YouTubeURL)},
		command.Rule{Phrase: "open wikipedia", Action: open(browser.WikipediaURL)},
		command.Rule{Phrase: "open my github", Action: open(browser.GitHubURL)},
		command.Rule{Phrase: "open website", Action: func(inv command.Invocation) {
			site := strings.TrimSpace(inv.Rest())
			if site == "" {
				server.AddLog("INFO", "Say 'open website' followed by an address.")
				return
			}
			if err := launcher.OpenURL(ctx, browser.NormalizeURL(site), inv.Target); err != nil {
				server.AddLog("ERROR", "Could not open browser: "+err.Error())
			}
		}},
		command.Rule{Phrase: "display what i said", Action: func(command.Invocation) {
			last := dispatcher.LastRecognized()
			if err := launcher.DisplayText(ctx, strings.ToUpper(last)); err != nil {
				server.AddLog("ERROR", "Could not display text: "+err.Error())
			}
		}},
		command.Rule{Phrase: "show last command", Action: func(command.Invocation) {
			last := dispatcher.LastRecognized()
			if err := launcher.DisplayText(ctx, strings.ToUpper(last)); err != nil {
				server.AddLog("ERROR", "Could not display text: "+err.Error())
			}
		}},
		command.Rule{Phrase: "close browser", Action: func(command.Invocation) {
			if err := launcher.CloseBrowser(ctx); err != nil {
				server.AddLog("ERROR", "Could not close browser: "+err.Error())
			}
		}},
	)

	var a *app.App
	dispatcher = command.NewDispatcher(table, func() { a.Quit() },
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

	a = app.New("voicebrowser", queue, dispatcher, server, opts...)
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
