package app

import (
	"context"
	"testing"
	"time"

	"voicedesk/pkg/command"
	"voicedesk/pkg/dash"
	"voicedesk/pkg/msgq"
)

func newTestApp(t *testing.T, table *command.Table, opts ...Option) (*App, *msgq.Queue, *dash.Server) {
	t.Helper()
	queue := msgq.NewQueue()
	server := dash.NewServer("test", "0")
	var a *App
	d := command.NewDispatcher(table, func() { a.Quit() },
		command.WithLog(func(kind msgq.Kind, text string) { server.AddLog(string(kind), text) }),
		command.WithExitPhrases("exit", "quit"))
	a = New("test", queue, d, server, append(opts, WithTickRate(200))...)
	return a, queue, server
}

func TestApp_ExitPhraseStopsRun(t *testing.T) {
	a, queue, _ := newTestApp(t, command.NewTable(command.FirstMatch))

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	queue.PushText(msgq.KindRecognized, "exit")

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("exit phrase did not stop the app")
	}
}

func TestApp_ContextCancelStopsRun(t *testing.T) {
	a, _, _ := newTestApp(t, command.NewTable(command.FirstMatch))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("cancel did not stop the app")
	}
}

func TestApp_DispatchReachesActions(t *testing.T) {
	fired := make(chan string, 1)
	table := command.NewTable(command.FirstMatch,
		command.Rule{Phrase: "open google", Action: func(command.Invocation) {
			select {
			case fired <- "open google":
			default:
			}
		}},
	)
	a, queue, _ := newTestApp(t, table)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	queue.PushText(msgq.KindRecognized, "open google please")

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("queued utterance never reached the command action")
	}

	a.Quit()
	<-done
}

func TestApp_StatusMirrorsToDashboard(t *testing.T) {
	a, queue, server := newTestApp(t, command.NewTable(command.FirstMatch))

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	queue.Push(msgq.NewStatus(msgq.EventReady, "Calibration complete. Ready for commands!"))

	deadline := time.After(3 * time.Second)
	for {
		st := server.State()
		if st.Calibrated && st.Alive && st.Stage == "ready" {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("dashboard never mirrored ready state: %+v", st)
		case <-time.After(10 * time.Millisecond):
		}
	}

	a.Quit()
	<-done
}

func TestApp_SayInjectsLowercased(t *testing.T) {
	got := make(chan command.Invocation, 1)
	table := command.NewTable(command.FirstMatch,
		command.Rule{Phrase: "open google", Action: func(inv command.Invocation) {
			select {
			case got <- inv:
			default:
			}
		}},
	)
	a, _, _ := newTestApp(t, table)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	a.Say("  Open GOOGLE in Chrome ")

	select {
	case inv := <-got:
		if inv.Target != command.TargetChrome {
			t.Errorf("target = %q", inv.Target)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("typed text never dispatched")
	}

	a.Quit()
	<-done
}

func TestApp_ShutdownHooksRun(t *testing.T) {
	ran := false
	a, _, _ := newTestApp(t, command.NewTable(command.FirstMatch),
		WithShutdownHook(func(context.Context) { ran = true }))

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()
	a.Quit()
	<-done

	if !ran {
		t.Error("shutdown hook did not run")
	}
}

func TestApp_QuitIsIdempotent(t *testing.T) {
	a, _, _ := newTestApp(t, command.NewTable(command.FirstMatch))
	a.Quit()
	a.Quit()
}
