package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pixeltrainer/internal/engine"
)

var (
	cPrimary = lipgloss.Color("#6C63FF")
	cGood    = lipgloss.Color("#2ECC71")
	cBad     = lipgloss.Color("#E74C3C")
	cMuted   = lipgloss.Color("#666666")
	cGold    = lipgloss.Color("#F39C12")
)

var (
	title = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	key   = lipgloss.NewStyle().Bold(true)
	muted = lipgloss.NewStyle().Foreground(cMuted)
	good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
)

var typeColors = map[engine.Type]lipgloss.Color{
	engine.TypeFlame: lipgloss.Color("#F97316"),
	engine.TypeAqua:  lipgloss.Color("#38BDF8"),
	engine.TypeLeaf:  lipgloss.Color("#34D399"),
}

func typeLabel(t engine.Type) string {
	return lipgloss.NewStyle().Foreground(typeColors[t]).Render(t.Label())
}

func labelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", key.Render(label+":"), value)
}
