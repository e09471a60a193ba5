// Teachtoy - the rule-learning pet.
// The pet decides what to do with each object it is shown; use the
// dashboard buttons to tell it whether it was right, and watch its
// rule table grow.
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
	"voicedesk/pkg/msgq"
	"voicedesk/pkg/protocol"
	"voicedesk/pkg/teach"
)

func main() {
	port := flag.String("port", config.DashPort(), "dashboard port")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	queue := msgq.NewQueue()
	server := dash.NewServer("teachtoy", *port)

	brain := teach.NewBrain(nil)
	session := teach.NewSession(brain, teach.StockScenarios(), nil)

	// Dashboard callbacks run on handler goroutines; funnel them to the
	// tick loop so the session is only ever touched there.
	actions := make(chan func(), 16)
	enqueue := func(fn func()) {
		select {
		case actions <- fn:
		default:
		}
	}

	publish := func() {
		server.UpdateState(func(s *protocol.StatusData) {
			s.Face = string(brain.Emotion())
			s.Round = session.Round()
			s.Rounds = brain.Rounds()
			s.Accuracy = brain.Accuracy()
			s.Decision = string(brain.LastDecision())
			s.Waiting = session.Waiting()
			if sc := session.Current(); sc != nil {
				s.Scenario = sc.Description
			} else {
				s.Scenario = "Session complete!"
			}
			s.Rules = nil
			for _, r := range brain.Rules() {
				s.Rules = append(s.Rules, protocol.RuleData{
					Condition: r.Condition,
					Action:    string(r.Action),
				})
			}
		})
	}

	server.OnFeedback = func(verdict, action string) {
		enqueue(func() {
			switch verdict {
			case "correct":
				session.Correct()
				server.AddLog("INFO", "Lumi: I got it right!")
			case "incorrect":
				if action == "" {
					server.AddLog("ERROR", "Feedback 'incorrect' needs the correct action.")
					return
				}
				session.Incorrect(teach.Action(action))
				server.AddLog("INFO", brain.Message())
			}
			publish()
		})
	}
	server.OnNext = func() {
		enqueue(func() {
			if session.Next() {
				sc := session.Current()
				server.AddLog("INFO", fmt.Sprintf("%s. Lumi decides: %s", sc.Description, brain.LastDecision()))
			} else {
				server.AddLog("INFO", fmt.Sprintf("Game complete! Final score %d/%d (%.1f%%)",
					brain.Score(), brain.Rounds(), brain.Accuracy()))
			}
			publish()
		})
	}

	var a *app.App
	dispatcher := command.NewDispatcher(command.NewTable(command.FirstMatch), func() { a.Quit() },
		command.WithExitPhrases("exit", "quit"),
		command.WithLog(func(kind msgq.Kind, text string) {
			server.AddLog(string(kind), text)
		}),
	)

	a = app.New("teachtoy", queue, dispatcher, server, app.WithOnTick(func() {
		for {
			select {
			case fn := <-actions:
				fn()
			default:
				return
			}
		}
	}))
	server.OnSay = a.Say

	queue.Push(msgq.NewStatus(msgq.EventReady, "Help Lumi learn to make smart decisions by giving feedback!"))
	if sc := session.Current(); sc != nil {
		queue.PushText(msgq.KindInfo, fmt.Sprintf("%s. Lumi decides: %s", sc.Description, brain.LastDecision()))
	}
	publish()

	if err := a.Run(ctx); err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}
}
