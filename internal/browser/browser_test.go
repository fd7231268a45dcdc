package browser

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type startCall struct {
	name string
	args []string
}

func newTestOpener(command string, available map[string]bool) (*CommandOpener, *[]startCall) {
	var calls []startCall
	o := &CommandOpener{
		Command: command,
		lookPath: func(name string) (string, error) {
			if available[name] {
				return "/usr/bin/" + name, nil
			}
			return "", exec.ErrNotFound
		},
		start: func(name string, args ...string) error {
			calls = append(calls, startCall{name: name, args: args})
			return nil
		},
	}
	return o, &calls
}

func TestCommandOpener_ConfiguredCommand(t *testing.T) {
	o, calls := newTestOpener("firefox --new-tab", nil)

	require.NoError(t, o.Open("https://short.ly/abc"))

	require.Len(t, *calls, 1)
	assert.Equal(t, "firefox", (*calls)[0].name)
	assert.Equal(t, []string{"--new-tab", "https://short.ly/abc"}, (*calls)[0].args)
}

func TestCommandOpener_AutoDetect(t *testing.T) {
	o, calls := newTestOpener("", map[string]bool{
		"xdg-open": true, "open": true, "wslview": true,
		"sensible-browser": true, "rundll32": true,
	})

	require.NoError(t, o.Open("https://short.ly/abc"))
	require.Len(t, *calls, 1)
	assert.Equal(t, "https://short.ly/abc", (*calls)[0].args[len((*calls)[0].args)-1])
}

func TestCommandOpener_NoCommand(t *testing.T) {
	o, calls := newTestOpener("", map[string]bool{})

	err := o.Open("https://short.ly/abc")
	assert.ErrorIs(t, err, ErrNoOpener)
	assert.Empty(t, *calls)
}

func TestCommandOpener_StartFailure(t *testing.T) {
	o, _ := newTestOpener("xdg-open", nil)
	o.start = func(string, ...string) error { return errors.New("boom") }

	err := o.Open("https://short.ly/abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestCandidates(t *testing.T) {
	assert.Equal(t, []string{"open"}, candidates("darwin"))
	assert.Contains(t, candidates("linux"), "xdg-open")
	assert.NotEmpty(t, candidates("windows"))
}
