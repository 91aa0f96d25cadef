package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pixeltrainer/internal/engine"
)

// Each stage is an 8x8 grid. 0 is transparent, 1 the dark outline, 2 the
// highlight and 3 the body.
var spritePatterns = [engine.MaxStage + 1][8]string{
	{
		"00111100",
		"01333310",
		"13333331",
		"13323331",
		"13333331",
		"01333310",
		"00122100",
		"00011000",
	},
	{
		"00111100",
		"01333310",
		"13333331",
		"13223321",
		"13333331",
		"01333310",
		"00222100",
		"00012000",
	},
	{
		"00111100",
		"01333310",
		"13333331",
		"13323331",
		"13333331",
		"01333310",
		"00222200",
		"00122100",
	},
}

// spritePalette holds outline, body and highlight per type.
type spritePalette struct {
	outline, body, highlight lipgloss.Color
}

var spriteColors = map[engine.Type]spritePalette{
	engine.TypeFlame: {"#3A0A0A", "#F97316", "#FECACA"},
	engine.TypeAqua:  {"#06233F", "#38BDF8", "#BAE6FD"},
	engine.TypeLeaf:  {"#0A2F1F", "#34D399", "#BBF7D0"},
}

// renderSprite draws the creature for t at stage, two cells per pixel.
func renderSprite(t engine.Type, stage int) string {
	stage = max(0, min(engine.MaxStage, stage))
	pal, ok := spriteColors[t]
	if !ok {
		pal = spriteColors[engine.DefaultType]
	}
	px := func(c lipgloss.Color) string {
		return lipgloss.NewStyle().Foreground(c).Render("██")
	}

	rows := make([]string, 0, 8)
	for _, line := range spritePatterns[stage] {
		var b strings.Builder
		for _, cell := range line {
			switch cell {
			case '1':
				b.WriteString(px(pal.outline))
			case '2':
				b.WriteString(px(pal.highlight))
			case '3':
				b.WriteString(px(pal.body))
			default:
				b.WriteString("  ")
			}
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}
