// Package browser opens URLs in a new browsing context via the desktop's
// URL handler.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoOpener is returned when no URL handler command can be found.
var ErrNoOpener = errors.New("no browser command available")

// Opener opens a URL somewhere the user can see it.
type Opener interface {
	Open(url string) error
}

// CommandOpener opens URLs by running an external command with the URL as
// its last argument.
type CommandOpener struct {
	// Command overrides auto-detection, e.g. "firefox --new-tab".
	Command string

	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// NewCommandOpener creates an opener. An empty command is auto-detected on
// each Open.
func NewCommandOpener(command string) *CommandOpener {
	return &CommandOpener{
		Command:  command,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Open launches the handler for url without waiting for it to exit.
func (o *CommandOpener) Open(url string) error {
	cmd := o.detectCommand()
	if cmd == "" {
		return ErrNoOpener
	}

	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return fmt.Errorf("invalid browser command %q", cmd)
	}

	args := append(parts[1:], url)
	if err := o.start(parts[0], args...); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// detectCommand returns the command to use.
func (o *CommandOpener) detectCommand() string {
	if o.Command != "" {
		return o.Command
	}

	lookPath := o.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, candidate := range candidates(runtime.GOOS) {
		name := strings.Fields(candidate)[0]
		if _, err := lookPath(name); err == nil {
			return candidate
		}
	}
	return ""
}

// candidates lists URL handlers in preference order for goos.
func candidates(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32 url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open", "wslview", "sensible-browser"}
	}
}

// startDetached starts the process and reaps it in the background.
func startDetached(name string, args ...string) error {
	c := exec.Command(name, args...)
	if err := c.Start(); err != nil {
		return err
	}
	go c.Wait()
	return nil
}
