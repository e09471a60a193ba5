package browser

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"voicedesk/pkg/command"
)

// browserNames maps spoken targets to WebDriver browser names.
var browserNames = map[command.Target]string{
	command.TargetChrome:  "chrome",
	command.TargetFirefox: "firefox",
	command.TargetEdge:    "MicrosoftEdge",
}

// Launcher routes open-URL commands either to the OS default browser or
// to an automated WebDriver session, reusing the session across commands.
// It is used from the UI tick goroutine only and needs no locking.
type Launcher struct {
	driver  *Driver
	system  Opener
	logf    func(format string, args ...any)
	session *Session
}

// NewLauncher creates a launcher. logf may be nil.
func NewLauncher(driver *Driver, system Opener, logf func(string, ...any)) *Launcher {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Launcher{driver: driver, system: system, logf: logf}
}

// OpenURL opens a URL in the browser the target names. TargetNone and
// TargetDefault use the OS default browser; the rest go through WebDriver.
func (l *Launcher) OpenURL(ctx context.Context, rawURL string, target command.Target) error {
	if target == command.TargetNone || target == command.TargetDefault {
		l.logf("ACTION: Opening %s in system default browser.", rawURL)
		return l.system.Open(rawURL)
	}

	session, err := l.ensureSession(ctx, target)
	if err != nil {
		return err
	}
	l.logf("ACTION: Navigating %s to %s", session.Browser, rawURL)
	if err := session.Navigate(ctx, rawURL); err != nil {
		// The window may have been closed by hand; drop the session so
		// the next command starts fresh.
		l.session = nil
		return err
	}
	return nil
}

// DisplayText renders text as a page in the automated browser, starting
// a chrome session when none is open.
func (l *Launcher) DisplayText(ctx context.Context, text string) error {
	session := l.session
	if session == nil {
		var err error
		session, err = l.ensureSession(ctx, command.TargetChrome)
		if err != nil {
			return err
		}
	}

	page := fmt.Sprintf("<!DOCTYPE html><html><head><title>Recognized Speech</title></head>"+
		"<body style=\"background:#333;color:#eee;font-family:sans-serif;display:flex;"+
		"justify-content:center;align-items:center;height:100vh;margin:0\">"+
		"<h1>%s</h1></body></html>", htmlEscape(text))

	l.logf("ACTION: Displaying text in browser: %q", truncate(text, 30))
	return session.Navigate(ctx, "data:text/html;charset=utf-8,"+url.PathEscape(page))
}

// CloseBrowser ends the automated session if one is open.
func (l *Launcher) CloseBrowser(ctx context.Context) error {
	if l.session == nil {
		l.logf("INFO: No browser is currently open.")
		return nil
	}
	l.logf("ACTION: Closing browser...")
	err := l.session.Close(ctx)
	l.session = nil
	return err
}

// NormalizeURL turns a spoken host ("stackoverflow.com") into an https URL.
func NormalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

func (l *Launcher) ensureSession(ctx context.Context, target command.Target) (*Session, error) {
	name, ok := browserNames[target]
	if !ok {
		name = browserNames[command.TargetChrome]
	}

	if l.session != nil {
		if l.session.Browser == name {
			return l.session, nil
		}
		l.logf("INFO: Browser already open (%s). Closing current instance.", l.session.Browser)
		_ = l.session.Close(ctx)
		l.session = nil
	}

	l.logf("ACTION: Initializing %s browser...", name)
	session, err := l.driver.NewSession(ctx, name)
	if err != nil {
		return nil, err
	}
	l.session = session
	l.logf("STATUS: %s browser launched successfully.", name)
	return session, nil
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
