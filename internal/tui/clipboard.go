package tui

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ErrNoClipboard is returned when no clipboard command is configured or found.
var ErrNoClipboard = errors.New("no clipboard command available")

const clipboardTimeout = 5 * time.Second

// clipboardCandidate is an auto-detected clipboard writer. needsEnv, when
// set, must be present in the environment for the candidate to apply.
type clipboardCandidate struct {
	command  string
	needsEnv string
}

var clipboardCandidates = []clipboardCandidate{
	{command: "wl-copy", needsEnv: "WAYLAND_DISPLAY"},
	{command: "xclip -selection clipboard", needsEnv: "DISPLAY"},
	{command: "xsel --clipboard --input", needsEnv: "DISPLAY"},
	{command: "pbcopy"},
	{command: "clip.exe"},
}

// clipboard pipes text into an external clipboard command.
type clipboard struct {
	command  string // Configured command; empty means auto-detect
	lookPath func(string) (string, error)
	getenv   func(string) string
}

func newClipboard(command string) *clipboard {
	return &clipboard{
		command:  command,
		lookPath: exec.LookPath,
		getenv:   os.Getenv,
	}
}

// resolve returns the command line to run.
func (c *clipboard) resolve() (string, error) {
	if c.command != "" {
		return c.command, nil
	}
	for _, cand := range clipboardCandidates {
		if cand.needsEnv != "" && c.getenv(cand.needsEnv) == "" {
			continue
		}
		bin := strings.Fields(cand.command)[0]
		if _, err := c.lookPath(bin); err == nil {
			return cand.command, nil
		}
	}
	return "", ErrNoClipboard
}

// Copy writes text to the clipboard.
func (c *clipboard) Copy(text string) error {
	line, err := c.resolve()
	if err != nil {
		return err
	}

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return ErrNoClipboard
	}

	ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
