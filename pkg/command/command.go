// Package command matches recognized speech against a table of command
// phrases and runs the matching action.
//
// Matching is a flat substring search, not a grammar. The default
// strategy is first-match-wins over the declaration order, like the
// original demos; LongestMatch is available for tables that want the most
// specific overlapping phrase to win regardless of order.
package command

import "strings"

// Target names the browser a command should use. Empty means the command
// carried no qualifier.
type Target string

const (
	TargetNone    Target = ""
	TargetDefault Target = "default"
	TargetChrome  Target = "chrome"
	TargetFirefox Target = "firefox"
	TargetEdge    Target = "edge"
)

// Invocation is what an action receives when its phrase matches.
type Invocation struct {
	// Text is the full recognized utterance, lowercased, with any
	// browser qualifier already stripped.
	Text string

	// Phrase is the table phrase that matched.
	Phrase string

	// Target is the browser qualifier extracted from the utterance.
	Target Target
}

// Rest returns the part of the utterance after the matched phrase,
// trimmed. Used by commands like "open website <host>".
func (inv Invocation) Rest() string {
	_, after, ok := strings.Cut(inv.Text, inv.Phrase)
	if !ok {
		return ""
	}
	return strings.TrimSpace(after)
}

// Action is the side effect bound to a phrase. Actions run on the UI tick
// goroutine and must be fast.
type Action func(inv Invocation)

// Rule binds one phrase to an action.
type Rule struct {
	Phrase string
	Action Action
}

// Strategy selects how overlapping phrases are resolved.
type Strategy int

const (
	// FirstMatch picks the first rule, in table order, whose phrase
	// occurs in the utterance. Order matters: more specific phrases
	// must precede general ones.
	FirstMatch Strategy = iota

	// LongestMatch picks the rule with the longest matching phrase,
	// breaking ties by table order. Removes the order sensitivity.
	LongestMatch
)

// Table is an ordered, read-only list of command rules.
type Table struct {
	rules    []Rule
	strategy Strategy
}

// NewTable creates a table with the given resolution strategy.
func NewTable(strategy Strategy, rules ...Rule) *Table {
	return &Table{rules: rules, strategy: strategy}
}

// Resolve finds the rule for an utterance. ok is false when nothing
// matches.
func (t *Table) Resolve(text string) (Rule, bool) {
	switch t.strategy {
	case LongestMatch:
		var best Rule
		found := false
		for _, r := range t.rules {
			if strings.Contains(text, r.Phrase) && (!found || len(r.Phrase) > len(best.Phrase)) {
				best = r
				found = true
			}
		}
		return best, found
	default:
		for _, r := range t.rules {
			if strings.Contains(text, r.Phrase) {
				return r, true
			}
		}
		return Rule{}, false
	}
}

// targetQualifiers maps spoken qualifiers to browser targets, checked in
// order.
var targetQualifiers = []struct {
	phrase string
	target Target
}{
	{"in chrome", TargetChrome},
	{"in firefox", TargetFirefox},
	{"in edge", TargetEdge},
	{"in default", TargetDefault},
}

// ExtractTarget strips a browser qualifier from an utterance and returns
// the cleaned text plus the target it named.
func ExtractTarget(text string) (string, Target) {
	for _, q := range targetQualifiers {
		if strings.Contains(text, q.phrase) {
			cleaned := strings.TrimSpace(strings.ReplaceAll(text, q.phrase, ""))
			cleaned = strings.Join(strings.Fields(cleaned), " ")
			return cleaned, q.target
		}
	}
	return text, TargetNone
}
