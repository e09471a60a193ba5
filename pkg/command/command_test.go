package command

import (
	"testing"

	"voicedesk/pkg/msgq"
)

func TestTable_FirstMatchWins(t *testing.T) {
	var fired string
	table := NewTable(FirstMatch,
		Rule{Phrase: "open google", Action: func(Invocation) { fired = "open google" }},
		Rule{Phrase: "open google maps", Action: func(Invocation) { fired = "open google maps" }},
	)

	rule, ok := table.Resolve("open google maps please")
	if !ok {
		t.Fatal("expected a match")
	}
	rule.Action(Invocation{})

	// Table order decides, not phrase length.
	if fired != "open google" {
		t.Errorf("fired %q, want %q (first listed)", fired, "open google")
	}
}

func TestTable_LongestMatchPrefersSpecific(t *testing.T) {
	table := NewTable(LongestMatch,
		Rule{Phrase: "open google", Action: func(Invocation) {}},
		Rule{Phrase: "open google maps", Action: func(Invocation) {}},
	)

	rule, ok := table.Resolve("open google maps please")
	if !ok {
		t.Fatal("expected a match")
	}
	if rule.Phrase != "open google maps" {
		t.Errorf("matched %q, want %q", rule.Phrase, "open google maps")
	}
}

func TestTable_NoMatch(t *testing.T) {
	table := NewTable(FirstMatch, Rule{Phrase: "open google", Action: func(Invocation) {}})
	if _, ok := table.Resolve("play some music"); ok {
		t.Error("expected no match")
	}
}

func TestExtractTarget(t *testing.T) {
	tests := []struct {
		in         string
		wantText   string
		wantTarget Target
	}{
		{"open google in chrome", "open google", TargetChrome},
		{"open youtube in firefox", "open youtube", TargetFirefox},
		{"open wikipedia in edge", "open wikipedia", TargetEdge},
		{"open google in default", "open google", TargetDefault},
		{"open google", "open google", TargetNone},
		{"in chrome open google", "open google", TargetChrome},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			text, target := ExtractTarget(tt.in)
			if text != tt.wantText {
				t.Errorf("text: got %q, want %q", text, tt.wantText)
			}
			if target != tt.wantTarget {
				t.Errorf("target: got %q, want %q", target, tt.wantTarget)
			}
		})
	}
}

func TestInvocation_Rest(t *testing.T) {
	inv := Invocation{Text: "open website stackoverflow.com", Phrase: "open website"}
	if got := inv.Rest(); got != "stackoverflow.com" {
		t.Errorf("rest: got %q, want %q", got, "stackoverflow.com")
	}
}

func TestDispatcher_ExitPhraseFiresOnlyExit(t *testing.T) {
	var actions []string
	table := NewTable(FirstMatch,
		Rule{Phrase: "exit the room", Action: func(Invocation) { actions = append(actions, "room") }},
	)
	exited := false
	d := NewDispatcher(table, func() { exited = true },
		WithExitPhrases("exit", "quit", "close game"))

	d.Dispatch([]msgq.Message{msgq.New(msgq.KindRecognized, "exit the room")})

	if !exited {
		t.Error("expected exit to fire")
	}
	if len(actions) != 0 {
		t.Errorf("expected no table action from an exit message, got %v", actions)
	}
}

func TestDispatcher_TargetReachesAction(t *testing.T) {
	var got Invocation
	table := NewTable(FirstMatch,
		Rule{Phrase: "open google", Action: func(inv Invocation) { got = inv }},
	)
	d := NewDispatcher(table, nil)

	d.Dispatch([]msgq.Message{msgq.New(msgq.KindRecognized, "open google in chrome")})

	if got.Target != TargetChrome {
		t.Errorf("target: got %q, want chrome", got.Target)
	}
	if got.Text != "open google" {
		t.Errorf("text: got %q, want qualifier stripped", got.Text)
	}
}

func TestDispatcher_UnrecognizedIsLoggedOnly(t *testing.T) {
	var logged []string
	table := NewTable(FirstMatch)
	d := NewDispatcher(table, nil, WithLog(func(kind msgq.Kind, text string) {
		logged = append(logged, text)
	}))

	d.Dispatch([]msgq.Message{msgq.New(msgq.KindRecognized, "make me a sandwich")})

	found := false
	for _, l := range logged {
		if l == "Command 'make me a sandwich' not recognized." {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an unrecognized log entry, got %v", logged)
	}
}

func TestDispatcher_StatusMirror(t *testing.T) {
	d := NewDispatcher(NewTable(FirstMatch), nil)

	d.Dispatch([]msgq.Message{
		msgq.NewStatus(msgq.EventCalibrating, "Calibrating..."),
	})
	if s := d.Status(); s.Calibrated || !s.Alive {
		t.Errorf("after calibrating: %+v", s)
	}

	d.Dispatch([]msgq.Message{
		msgq.NewStatus(msgq.EventReady, "Calibration complete. Ready for commands!"),
	})
	if s := d.Status(); !s.Calibrated {
		t.Errorf("after ready: %+v", s)
	}

	d.Dispatch([]msgq.Message{
		msgq.NewStatus(msgq.EventRecalibrating, "Recalibrating..."),
	})
	if s := d.Status(); s.Calibrated {
		t.Errorf("after recalibrating: %+v", s)
	}

	d.Dispatch([]msgq.Message{
		msgq.New(msgq.KindFatal, "Recalibration failed. Please restart the program."),
	})
	if s := d.Status(); s.Alive {
		t.Errorf("after fatal: %+v", s)
	}
}

func TestDispatcher_LastRecognized(t *testing.T) {
	d := NewDispatcher(NewTable(FirstMatch), nil)
	d.Dispatch([]msgq.Message{msgq.New(msgq.KindRecognized, "hello there")})
	if got := d.LastRecognized(); got != "hello there" {
		t.Errorf("last recognized: got %q", got)
	}
}
