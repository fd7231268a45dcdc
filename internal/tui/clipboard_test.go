package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClipboard(command string, env map[string]string, bins ...string) *clipboard {
	available := make(map[string]bool, len(bins))
	for _, b := range bins {
		available[b] = true
	}
	return &clipboard{
		command: command,
		lookPath: func(name string) (string, error) {
			if available[name] {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		},
		getenv: func(k string) string { return env[k] },
	}
}

func TestClipboard_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		command string
		env     map[string]string
		bins    []string
		want    string
		wantErr error
	}{
		{
			name:    "configured command wins",
			command: "my-copy --flag",
			bins:    []string{"wl-copy"},
			env:     map[string]string{"WAYLAND_DISPLAY": "wayland-0"},
			want:    "my-copy --flag",
		},
		{
			name: "wayland",
			env:  map[string]string{"WAYLAND_DISPLAY": "wayland-0", "DISPLAY": ":0"},
			bins: []string{"wl-copy", "xclip"},
			want: "wl-copy",
		},
		{
			name: "x11 skips wl-copy without wayland",
			env:  map[string]string{"DISPLAY": ":0"},
			bins: []string{"wl-copy", "xclip"},
			want: "xclip -selection clipboard",
		},
		{
			name: "xsel fallback",
			env:  map[string]string{"DISPLAY": ":0"},
			bins: []string{"xsel"},
			want: "xsel --clipboard --input",
		},
		{
			name: "macOS",
			bins: []string{"pbcopy"},
			want: "pbcopy",
		},
		{
			name:    "nothing available",
			env:     map[string]string{"DISPLAY": ":0"},
			wantErr: ErrNoClipboard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fakeClipboard(tt.command, tt.env, tt.bins...).resolve()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClipboard_CopyWithoutCommand(t *testing.T) {
	err := fakeClipboard("", nil).Copy("https://short.ly/abc")
	assert.ErrorIs(t, err, ErrNoClipboard)
}
