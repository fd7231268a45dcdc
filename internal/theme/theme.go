package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Preference is the user's theme choice.
type Preference string

const (
	PreferenceSystem Preference = "system"
	PreferenceDark   Preference = "dark"
	PreferenceLight  Preference = "light"
)

// DefaultPreference follows the terminal.
const DefaultPreference = PreferenceSystem

// ParsePreference parses a theme name. Empty means DefaultPreference.
func ParsePreference(s string) (Preference, error) {
	switch Preference(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultPreference, nil
	case PreferenceSystem:
		return PreferenceSystem, nil
	case PreferenceDark:
		return PreferenceDark, nil
	case PreferenceLight:
		return PreferenceLight, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want system, dark or light)", s)
	}
}

// Next cycles system -> dark -> light -> system.
func Next(p Preference) Preference {
	switch p {
	case PreferenceSystem:
		return PreferenceDark
	case PreferenceDark:
		return PreferenceLight
	default:
		return PreferenceSystem
	}
}

// Resolver derives the dark flag from a preference and the system signal.
// It holds no cached result; callers evaluate it on every render.
type Resolver struct {
	Preference Preference
	// SystemDark reports the ambient scheme. Nil means the terminal
	// background as detected by lipgloss.
	SystemDark func() bool
}

// NewResolver creates a Resolver using terminal background detection.
func NewResolver(p Preference) *Resolver {
	return &Resolver{Preference: p}
}

// Dark reports whether the dark scheme is in effect.
// Only a "dark" preference can render dark, and it still defers to the
// system signal, so a light terminal keeps light styling. "system" and
// "light" render light.
func (r *Resolver) Dark() bool {
	return r.Preference == PreferenceDark && r.systemDark()
}

// Prime queries the terminal background once and pins the answer. Call it
// before a program takes over stdin; the query reads the terminal's reply.
// A resolver with an injected SystemDark is left alone.
func (r *Resolver) Prime() {
	if r.SystemDark != nil {
		return
	}
	dark := lipgloss.HasDarkBackground()
	r.SystemDark = func() bool { return dark }
}

// Cycle advances the preference and returns the new value.
func (r *Resolver) Cycle() Preference {
	r.Preference = Next(r.Preference)
	return r.Preference
}

func (r *Resolver) systemDark() bool {
	if r.SystemDark != nil {
		return r.SystemDark()
	}
	return lipgloss.HasDarkBackground()
}
