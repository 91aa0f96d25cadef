package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pixeltrainer/internal/engine"
)

type profileModel struct {
	ledger *engine.Ledger
	width  int
	height int

	stats engine.Stats
}

func newProfileModel(l *engine.Ledger) profileModel {
	return profileModel{
		ledger: l,
		stats:  engine.Compute(l.Snapshot()),
	}
}

func (p *profileModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type profileDataMsg struct {
	stats engine.Stats
}

func (p profileModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return profileDataMsg{stats: engine.Compute(p.ledger.Snapshot())}
	}
}

func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	if msg, ok := msg.(profileDataMsg); ok {
		p.stats = msg.stats
	}
	return p, nil
}

func (p profileModel) view() string {
	w := p.width - 4
	s := p.stats

	level := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).
		Render(fmt.Sprintf("Trainer Lv. %d", s.TrainerLevel))

	summary := lipgloss.JoinHorizontal(lipgloss.Top,
		statBlock("Habits", s.TotalHabits),
		statBlock("Completions", s.TotalCompletions),
		statBlock("Total streak", s.TotalStreak),
	)

	rows := []string{titleStyle.Render("Badges")}
	for _, b := range engine.AllBadges() {
		if s.HasBadge(b.ID) {
			rows = append(rows, badgeEarnedStyle.Render("★ "+b.Title)+"  "+mutedStyle.Render(b.Description))
		} else {
			rows = append(rows, badgeLockedStyle.Render("☆ "+b.Title)+"  "+badgeLockedStyle.Render(b.Description))
		}
	}
	earned := mutedStyle.Render(fmt.Sprintf("%d/%d earned", len(s.Badges), len(engine.AllBadges())))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Trainer Profile"),
		"",
		level,
		"",
		summary,
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		earned,
	))
}

func statBlock(label string, n int) string {
	return lipgloss.NewStyle().Width(16).Render(lipgloss.JoinVertical(lipgloss.Left,
		highlightStyle.Bold(true).Render(fmt.Sprint(n)),
		mutedStyle.Render(label),
	))
}
