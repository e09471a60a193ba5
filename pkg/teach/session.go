package teach

import "math/rand"

// Scenario is one object the pet is shown.
type Scenario struct {
	Description   string
	Condition     string
	CorrectAction Action
}

// StockScenarios returns the built-in scenario deck.
func StockScenarios() []Scenario {
	return []Scenario{
		{"Lumi sees a bright red ball", "red_ball", ActionPickUpRed},
		{"Lumi sees a small blue ball", "blue_ball", ActionPickUpBlue},
		{"Lumi sees a shimmering silver coin", "shiny_object", ActionIgnore},
		{"Lumi sees a red square block", "red_square", ActionIgnore},
		{"Lumi sees a tiny blue gem", "blue_gem", ActionPickUpBlue},
		{"Lumi sees a large green sphere", "green_sphere", ActionIgnore},
	}
}

// Session walks a brain through a shuffled deck of scenarios, at most
// MaxRounds of them, collecting feedback after each decision.
type Session struct {
	Brain *Brain

	MaxRounds int
	round     int
	deck      []Scenario
	current   *Scenario
	waiting   bool
	over      bool
}

// DefaultMaxRounds bounds a session even when the deck is longer.
const DefaultMaxRounds = 7

// NewSession shuffles the deck and starts the first round. rng may be
// nil to use the global source.
func NewSession(brain *Brain, deck []Scenario, rng *rand.Rand) *Session {
	shuffled := append([]Scenario(nil), deck...)
	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}

	s := &Session{Brain: brain, MaxRounds: DefaultMaxRounds, deck: shuffled}
	s.Next()
	return s
}

// Next advances to the next scenario and has the brain decide on it.
// It reports false when the session is over.
func (s *Session) Next() bool {
	if s.round >= s.MaxRounds || len(s.deck) == 0 {
		s.over = true
		s.current = nil
		return false
	}
	s.round++
	sc := s.deck[0]
	s.deck = s.deck[1:]
	s.current = &sc
	s.Brain.Decide(sc.Condition)
	s.waiting = true
	return true
}

// Correct records the player's "correct" feedback for this round.
func (s *Session) Correct() {
	if !s.waiting {
		return
	}
	s.Brain.RecordCorrect()
	s.waiting = false
}

// Incorrect records "wrong" feedback together with the action the pet
// should have taken.
func (s *Session) Incorrect(correct Action) {
	if !s.waiting || s.current == nil {
		return
	}
	s.Brain.RecordIncorrect(s.current.Condition, correct)
	s.waiting = false
}

// Current returns the scenario in play, or nil after the session ends.
func (s *Session) Current() *Scenario { return s.current }

// Round returns the 1-based round number.
func (s *Session) Round() int { return s.round }

// Waiting reports whether the round still needs feedback.
func (s *Session) Waiting() bool { return s.waiting }

// Over reports whether the session has ended.
func (s *Session) Over() bool { return s.over }
