package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pixeltrainer/internal/engine"
)

// achievementsModel is the Pokedex: every creature ranked by captures.
type achievementsModel struct {
	ledger *engine.Ledger
	width  int
	height int

	entries []engine.Entry
	chart   barchart.Model
}

func newAchievementsModel(l *engine.Ledger) achievementsModel {
	return achievementsModel{
		ledger: l,
		chart:  barchart.New(60, 12),
	}
}

func (r *achievementsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	r.buildChart()
}

type achievementsDataMsg struct {
	entries []engine.Entry
}

func (r achievementsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return achievementsDataMsg{entries: engine.Achievements(r.ledger.Snapshot())}
	}
}

func (r achievementsModel) update(msg tea.Msg) (achievementsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case achievementsDataMsg:
		r.entries = msg.entries
		r.buildChart()
	}
	return r, nil
}

// maxBars keeps bar labels readable on narrow terminals.
const maxBars = 12

func (r *achievementsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 30 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for i, e := range r.entries {
		if i == maxBars {
			break
		}
		style := lipgloss.NewStyle().Foreground(typeColor(e.Type))
		bars = append(bars, barchart.BarData{
			Label: truncate(e.Name, 8),
			Values: []barchart.BarValue{{
				Name:  e.Name,
				Value: float64(e.Captures),
				Style: style,
			}},
		})
	}
	if len(bars) == 0 {
		return
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r achievementsModel) view() string {
	w := r.width - 4
	title := titleStyle.Render("Pokedex")

	if len(r.entries) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No creatures caught yet. Complete a habit to capture one."),
		))
	}

	total := 0
	for _, e := range r.entries {
		total += e.Captures
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		title, "  ", mutedStyle.Render(fmt.Sprintf("%d creatures • %d captures", len(r.entries), total)),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderTable(w),
		),
	)
}

func (r achievementsModel) renderTable(w int) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-4s %-24s %-6s %8s %6s %7s", "#", "Creature", "Type", "Captures", "Stage", "Streak")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", max(0, min(w-6, 60)))))

	for i, e := range r.entries {
		dot := lipgloss.NewStyle().Foreground(typeColor(e.Type)).Render("●")
		rows = append(rows, fmt.Sprintf("  %-4d %s %-22s %-6s %8d %6d %7d",
			i+1, dot, truncate(e.Name, 22), e.Type.Label(), e.Captures, e.Stage+1, e.Streak,
		))
	}
	return strings.Join(rows, "\n")
}
