// ABOUTME: Display helpers shared by the CLI commands
// ABOUTME: Keeps table output compact and timestamps human-readable
package commands

import (
	"fmt"
	"time"
)

// truncate caps s at max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	switch {
	case len(runes) <= max:
		return s
	case max <= 3:
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// formatTime renders recent times relative to now, older ones as dates.
func formatTime(t time.Time) string {
	age := time.Since(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	case age < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
	return t.Format("2006-01-02")
}
