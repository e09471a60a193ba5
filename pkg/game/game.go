// Package game is the voice-controlled game prototype: a state machine
// over menu/playing/paused/instructions/game-over screens whose only
// input is recognized speech (plus a few keyboard shortcuts in the UI).
package game

import (
	"fmt"
	"strings"
)

// State is one of the game screens.
type State int

const (
	StateMainMenu State = iota
	StatePlaying
	StatePaused
	StateInstructions
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "MAIN_MENU"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	case StateInstructions:
		return "INSTRUCTIONS"
	case StateGameOver:
		return "GAME_OVER"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// AttackScore is awarded for each attack command.
const AttackScore = 10

// Game holds the voice game's state. Commands arrive already lowercased
// from the recognizer; every command logs through logf, matching what
// the on-screen scrolling log shows.
type Game struct {
	state  State
	health int
	score  int
	level  int
	logf   func(format string, args ...any)
}

// New creates a game at the main menu. logf may be nil.
func New(logf func(string, ...any)) *Game {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	g := &Game{state: StateMainMenu, logf: logf}
	g.resetStats()
	return g
}

func (g *Game) resetStats() {
	g.health = 100
	g.score = 0
	g.level = 1
}

// Reset restores health, score and level for a fresh run.
func (g *Game) Reset() {
	g.resetStats()
	g.logf("GAME: Game state reset.")
}

// HandleCommand applies one recognized utterance to the current state.
// Unrecognized commands are logged and change nothing. Exit phrases are
// not handled here; the dispatcher intercepts them first.
func (g *Game) HandleCommand(text string) {
	text = strings.ToLower(strings.TrimSpace(text))

	switch g.state {
	case StateMainMenu:
		switch {
		case contains(text, "start game", "play"):
			g.logf("ACTION: Starting game!")
			g.state = StatePlaying
		case contains(text, "instructions", "how to play"):
			g.logf("ACTION: Showing instructions.")
			g.state = StateInstructions
		}

	case StatePlaying:
		switch {
		case contains(text, "move forward", "go ahead"):
			g.logf("GAME: Player moved forward.")
		case contains(text, "attack", "fight"):
			g.logf("GAME: Player attacked!")
			g.score += AttackScore
		case contains(text, "check health", "my health"):
			g.logf("GAME: Your current health is %d.", g.health)
		case contains(text, "pause"):
			g.logf("ACTION: Game paused.")
			g.state = StatePaused
		default:
			g.logf("GAME: Unrecognized command in PLAYING state: '%s'", text)
		}

	case StatePaused:
		switch {
		case contains(text, "resume", "continue"):
			g.logf("ACTION: Resuming game.")
			g.state = StatePlaying
		case contains(text, "main menu"):
			g.logf("ACTION: Returning to main menu.")
			g.state = StateMainMenu
		default:
			g.logf("GAME: Unrecognized command in PAUSED state: '%s'", text)
		}

	case StateInstructions:
		switch {
		case contains(text, "back", "main menu"):
			g.logf("ACTION: Returning to main menu from instructions.")
			g.state = StateMainMenu
		default:
			g.logf("GAME: Unrecognized command in INSTRUCTIONS state: '%s'", text)
		}

	case StateGameOver:
		switch {
		case contains(text, "restart", "play again"):
			g.logf("ACTION: Restarting game.")
			g.Reset()
			g.state = StatePlaying
		case contains(text, "main menu"):
			g.logf("ACTION: Returning to main menu from game over.")
			g.state = StateMainMenu
		default:
			g.logf("GAME: Unrecognized command in GAME_OVER state: '%s'", text)
		}
	}
}

// Shortcut applies a keyboard shortcut: p pauses, r resumes, m returns
// to the menu, s starts, i opens instructions, space restarts after a
// game over. Unknown or out-of-state keys do nothing.
func (g *Game) Shortcut(key rune) {
	switch {
	case key == 'p' && g.state == StatePlaying:
		g.logf("ACTION: Keyboard - Game paused.")
		g.state = StatePaused
	case key == 'r' && g.state == StatePaused:
		g.logf("ACTION: Keyboard - Resuming game.")
		g.state = StatePlaying
	case key == 'm' && (g.state == StatePaused || g.state == StateGameOver || g.state == StateInstructions):
		g.logf("ACTION: Keyboard - Returning to main menu.")
		g.state = StateMainMenu
	case key == 's' && g.state == StateMainMenu:
		g.logf("ACTION: Keyboard - Starting game.")
		g.state = StatePlaying
	case key == 'i' && g.state == StateMainMenu:
		g.logf("ACTION: Keyboard - Showing instructions.")
		g.state = StateInstructions
	case key == ' ' && g.state == StateGameOver:
		g.logf("ACTION: Keyboard - Restarting game.")
		g.Reset()
		g.state = StatePlaying
	}
}

// State returns the current screen.
func (g *Game) State() State { return g.state }

// Health returns the player's health.
func (g *Game) Health() int { return g.health }

// Score returns the score.
func (g *Game) Score() int { return g.score }

// Level returns the current level.
func (g *Game) Level() int { return g.level }

func contains(text string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
