package teach

import (
	"math/rand"
	"testing"
)

func TestBrain_DecideBySeedRule(t *testing.T) {
	b := NewBrain(nil)
	if got := b.Decide("red_ball"); got != ActionPickUpRed {
		t.Errorf("Decide(red_ball) = %q, want pick_up_red", got)
	}
	if got := b.Decide("blue_ball"); got != ActionPickUpBlue {
		t.Errorf("Decide(blue_ball) = %q, want pick_up_blue", got)
	}
}

func TestBrain_DecideMatchesSubstring(t *testing.T) {
	b := NewBrain(nil)
	// "red_ball" is a substring of the longer scenario condition.
	if got := b.Decide("bright_red_ball_on_table"); got != ActionPickUpRed {
		t.Errorf("substring match failed: got %q", got)
	}
}

func TestBrain_UnknownConditionGuesses(t *testing.T) {
	b := NewBrain(rand.New(rand.NewSource(1)))
	got := b.Decide("green_sphere")
	found := false
	for _, a := range Actions {
		if got == a {
			found = true
		}
	}
	if !found {
		t.Errorf("guess %q is not a known action", got)
	}
	if b.LastDecision() != got {
		t.Error("LastDecision should track the guess")
	}
}

func TestBrain_CorrectFeedbackScoresAndLeavesRules(t *testing.T) {
	b := NewBrain(nil)
	before := b.Rules()

	b.Decide("red_ball")
	b.RecordCorrect()

	if b.Score() != 1 || b.Rounds() != 1 {
		t.Errorf("score/rounds = %d/%d, want 1/1", b.Score(), b.Rounds())
	}
	after := b.Rules()
	if len(after) != len(before) {
		t.Fatalf("rule count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("rule %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
	if b.Emotion() != EmotionHappy {
		t.Errorf("emotion = %q, want happy", b.Emotion())
	}
}

func TestBrain_IncorrectUpdatesMatchingRule(t *testing.T) {
	b := NewBrain(nil)
	b.Decide("red_ball") // pick_up_red via the seed rule
	b.RecordIncorrect("red_ball", ActionIgnore)

	rules := b.Rules()
	if len(rules) != 3 {
		t.Fatalf("expected rewrite, not append; have %d rules", len(rules))
	}
	if rules[0].Condition != "red_ball" || rules[0].Action != ActionIgnore {
		t.Errorf("rule[0] = %+v, want red_ball -> ignore_object", rules[0])
	}
	if b.Score() != 0 || b.Rounds() != 1 {
		t.Errorf("score/rounds = %d/%d, want 0/1", b.Score(), b.Rounds())
	}
}

func TestBrain_IncorrectOnUnknownConditionAppendsExactRule(t *testing.T) {
	b := NewBrain(rand.New(rand.NewSource(7)))
	b.Decide("green_sphere")
	b.RecordIncorrect("green_sphere", ActionIgnore)

	rules := b.Rules()
	last := rules[len(rules)-1]
	if last.Condition != "green_sphere" || last.Action != ActionIgnore {
		t.Errorf("appended rule = %+v, want green_sphere -> ignore_object", last)
	}
}

func TestBrain_IncorrectKeepsRuleWhoseActionDiffers(t *testing.T) {
	// The matching rule is only rewritten when it produced the wrong
	// decision; a guess that bypassed it appends instead.
	b := NewBrain(nil)
	b.Decide("red_ball")
	b.lastDecision = ActionPickUpBlue // as if a different path chose
	b.RecordIncorrect("red_ball", ActionIgnore)

	rules := b.Rules()
	if rules[0].Action != ActionPickUpRed {
		t.Errorf("seed rule was rewritten: %+v", rules[0])
	}
	last := rules[len(rules)-1]
	if last.Condition != "red_ball" || last.Action != ActionIgnore {
		t.Errorf("expected appended exact rule, got %+v", last)
	}
}

func TestBrain_Accuracy(t *testing.T) {
	b := NewBrain(nil)
	if b.Accuracy() != 0 {
		t.Error("accuracy with no rounds should be 0")
	}
	b.Decide("red_ball")
	b.RecordCorrect()
	b.Decide("blue_ball")
	b.RecordIncorrect("blue_ball", ActionIgnore)
	if got := b.Accuracy(); got != 50 {
		t.Errorf("accuracy = %v, want 50", got)
	}
}

func TestSession_PlaysAtMostMaxRounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := NewSession(NewBrain(rng), StockScenarios(), rng)

	played := 0
	for !s.Over() {
		played++
		if played > 20 {
			t.Fatal("session never ends")
		}
		s.Correct()
		s.Next()
	}

	// Six stock scenarios bound the session below the round cap.
	if played != len(StockScenarios()) {
		t.Errorf("played %d rounds, want %d", played, len(StockScenarios()))
	}
	if s.Current() != nil {
		t.Error("current scenario should be nil after the session")
	}
}

func TestSession_FeedbackOnlyWhileWaiting(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s := NewSession(NewBrain(rng), StockScenarios(), rng)

	if !s.Waiting() {
		t.Fatal("first round should wait for feedback")
	}
	s.Correct()
	rounds := s.Brain.Rounds()
	s.Correct() // double click; must not double count
	if s.Brain.Rounds() != rounds {
		t.Error("repeated feedback was counted twice")
	}
}

func TestSession_IncorrectTeachesTheDeckAnswer(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	brain := NewBrain(rng)
	s := NewSession(brain, StockScenarios(), rng)

	taught := map[string]Action{}
	for !s.Over() {
		sc := *s.Current()
		if brain.LastDecision() == sc.CorrectAction {
			s.Correct()
		} else {
			s.Incorrect(sc.CorrectAction)
			taught[sc.Condition] = sc.CorrectAction
		}
		s.Next()
	}

	// Every corrected condition must now resolve to the taught action.
	// Conditions the pet guessed right by luck stay unlearned.
	for condition, want := range taught {
		if got := brain.Decide(condition); got != want {
			t.Errorf("after teaching, Decide(%s) = %q, want %q", condition, got, want)
		}
	}
}
