package tts

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// ExecEngine speaks through an external command: say on macOS, espeak on
// Linux, the SAPI voice via PowerShell on Windows.
type ExecEngine struct {
	program string
	args    func(text string) []string
}

// NewExecEngine picks the speech command for the current platform and
// verifies it is installed.
func NewExecEngine() (*ExecEngine, error) {
	e, err := engineForOS(runtime.GOOS)
	if err != nil {
		return nil, err
	}
	if _, err := exec.LookPath(e.program); err != nil {
		return nil, fmt.Errorf("%w: %s not found in PATH", ErrNoEngine, e.program)
	}
	return e, nil
}

func engineForOS(goos string) (*ExecEngine, error) {
	switch goos {
	case "darwin":
		return &ExecEngine{
			program: "say",
			args:    func(text string) []string { return []string{text} },
		}, nil
	case "linux":
		return &ExecEngine{
			program: "espeak",
			args:    func(text string) []string { return []string{text} },
		}, nil
	case "windows":
		return &ExecEngine{
			program: "powershell",
			args: func(text string) []string {
				script := "Add-Type -AssemblyName System.Speech; " +
					"(New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak(" +
					psQuote(text) + ")"
				return []string{"-NoProfile", "-Command", script}
			},
		}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported platform %s", ErrNoEngine, goos)
	}
}

// Speak runs the speech command and waits for it to finish.
func (e *ExecEngine) Speak(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, e.program, e.args(text)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tts: %s: %w", e.program, err)
	}
	return nil
}

// psQuote wraps text in PowerShell single quotes, doubling embedded ones.
func psQuote(text string) string {
	out := make([]rune, 0, len(text)+2)
	out = append(out, '\'')
	for _, r := range text {
		if r == '\'' {
			out = append(out, '\'', '\'')
			continue
		}
		out = append(out, r)
	}
	return string(append(out, '\''))
}
