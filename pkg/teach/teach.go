// Package teach implements the rule-learning pet: a tiny agent that
// decides what to do with an object from a condition→action rule table
// and revises the table from explicit player feedback.
package teach

import (
	"fmt"
	"math/rand"
	"strings"
)

// Action is one of the moves the pet can make.
type Action string

const (
	ActionPickUpRed  Action = "pick_up_red"
	ActionPickUpBlue Action = "pick_up_blue"
	ActionIgnore     Action = "ignore_object"
)

// Actions lists every possible move, in feedback-button order.
var Actions = []Action{ActionPickUpRed, ActionPickUpBlue, ActionIgnore}

// Emotion is the pet's face after the last feedback.
type Emotion string

const (
	EmotionNeutral  Emotion = "neutral"
	EmotionHappy    Emotion = "happy"
	EmotionSad      Emotion = "sad"
	EmotionThinking Emotion = "thinking"
)

// Rule binds a condition keyword to the action taken when the keyword
// appears in a scenario condition.
type Rule struct {
	Condition string
	Action    Action
}

// Brain holds the rule table and scoring state. Rules keep insertion
// order: decisions scan them front to back, and learned rules append.
type Brain struct {
	rules        []Rule
	score        int
	rounds       int
	lastDecision Action
	emotion      Emotion
	message      string
	guess        func() Action
}

// NewBrain creates a brain with the three seed rules. rng may be nil,
// in which case the global source is used for unknown-situation guesses.
func NewBrain(rng *rand.Rand) *Brain {
	guess := func() Action { return Actions[rand.Intn(len(Actions))] }
	if rng != nil {
		guess = func() Action { return Actions[rng.Intn(len(Actions))] }
	}
	return &Brain{
		rules: []Rule{
			{Condition: "red_ball", Action: ActionPickUpRed},
			{Condition: "blue_ball", Action: ActionPickUpBlue},
			{Condition: "shiny_object", Action: ActionIgnore},
		},
		emotion: EmotionNeutral,
		guess:   guess,
	}
}

// Decide picks an action for a scenario condition: the first rule whose
// condition appears in it wins; with no matching rule the pet guesses.
func (b *Brain) Decide(condition string) Action {
	b.emotion = EmotionThinking

	for _, r := range b.rules {
		if strings.Contains(condition, r.Condition) {
			b.lastDecision = r.Action
			return r.Action
		}
	}

	b.lastDecision = b.guess()
	return b.lastDecision
}

// RecordCorrect scores the last decision as right. The rule table is
// left untouched.
func (b *Brain) RecordCorrect() {
	b.score++
	b.rounds++
	b.emotion = EmotionHappy
	b.message = "Great! I was right!"
}

// RecordIncorrect revises the table: the rule that produced the wrong
// decision is rewritten to correct, or, if no existing rule matched the
// condition, a new exact-condition rule is appended.
func (b *Brain) RecordIncorrect(condition string, correct Action) {
	b.rounds++
	b.emotion = EmotionSad
	b.message = fmt.Sprintf("Oops! I should '%s' for '%s'", correct, condition)

	for i, r := range b.rules {
		if strings.Contains(condition, r.Condition) && r.Action == b.lastDecision {
			b.rules[i].Action = correct
			return
		}
	}
	b.rules = append(b.rules, Rule{Condition: condition, Action: correct})
}

// Rules returns a copy of the table in evaluation order.
func (b *Brain) Rules() []Rule {
	return append([]Rule(nil), b.rules...)
}

// Score returns right answers so far.
func (b *Brain) Score() int { return b.score }

// Rounds returns rounds with feedback so far.
func (b *Brain) Rounds() int { return b.rounds }

// LastDecision returns the most recent decision.
func (b *Brain) LastDecision() Action { return b.lastDecision }

// Emotion returns the pet's current face.
func (b *Brain) Emotion() Emotion { return b.emotion }

// Message returns the last learning message shown to the player.
func (b *Brain) Message() string { return b.message }

// Accuracy is the right-answer percentage over played rounds.
func (b *Brain) Accuracy() float64 {
	if b.rounds == 0 {
		return 0
	}
	return float64(b.score) / float64(b.rounds) * 100
}
