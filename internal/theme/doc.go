// Package theme resolves the light/dark preference into a boolean and the
// lipgloss styles the history list renders with.
package theme
