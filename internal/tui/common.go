package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/pixeltrainer/internal/engine"
	"github.com/sadopc/pixeltrainer/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHabits viewState = iota
	viewAchievements
	viewProfile
	viewSettings
)

var viewNames = []string{"Habits", "Achievements", "Profile", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// habitsChangedMsg is sent after any ledger mutation so every view and the
// reminder table can catch up. status is shown unless the write failed.
type habitsChangedMsg struct {
	status string
}

type completedMsg struct {
	result engine.CompletionResult
}

type prefsChangedMsg struct {
	prefs store.Preferences
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// progressBar renders pct (0..100) as a fixed-width bar.
func progressBar(pct, width int) string {
	pct = max(0, min(100, pct))
	filled := pct * width / 100
	return accentStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}

func evolutionLabel(xp int) string {
	return fmt.Sprintf("Evolution %d%%", min(engine.MaxXP, xp))
}

func streakLabel(n int) string {
	if n == 1 {
		return "Streak: 1 day"
	}
	return fmt.Sprintf("Streak: %d days", n)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
