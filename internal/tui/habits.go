package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/pixeltrainer/internal/engine"
	"github.com/sadopc/pixeltrainer/internal/reminder"
	"github.com/sadopc/pixeltrainer/internal/store"
)

type habitsModel struct {
	ledger *engine.Ledger
	now    func() time.Time
	width  int
	height int

	habits []engine.Habit
	cursor int
	prefs  store.Preferences

	formActive bool
	form       *huh.Form
	formType   string // "habit", "remove"

	// Form field pointers (survive value copies)
	formName       *string
	formCreature   *engine.Type
	formFrequency  *engine.Frequency
	formDifficulty *engine.Difficulty
	formRemind     *bool
	formTime       *string
	formConfirm    *bool

	removingID string
}

func newHabitsModel(l *engine.Ledger, prefs store.Preferences, now func() time.Time) habitsModel {
	name, remindAt := "", ""
	creature, freq, diff := engine.DefaultType, engine.DefaultFrequency, engine.DefaultDifficulty
	remind, confirm := true, false
	return habitsModel{
		ledger:         l,
		now:            now,
		habits:         l.Snapshot(),
		prefs:          prefs,
		formName:       &name,
		formCreature:   &creature,
		formFrequency:  &freq,
		formDifficulty: &diff,
		formRemind:     &remind,
		formTime:       &remindAt,
		formConfirm:    &confirm,
	}
}

func (p *habitsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type habitsDataMsg struct {
	habits []engine.Habit
}

func (p habitsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return habitsDataMsg{habits: p.ledger.Snapshot()}
	}
}

func (p habitsModel) selected() (engine.Habit, bool) {
	if p.cursor < 0 || p.cursor >= len(p.habits) {
		return engine.Habit{}, false
	}
	return p.habits[p.cursor], true
}

func (p habitsModel) update(msg tea.Msg) (habitsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case habitsDataMsg:
		p.habits = msg.habits
		if p.cursor >= len(p.habits) {
			p.cursor = max(0, len(p.habits)-1)
		}
		return p, nil

	case prefsChangedMsg:
		p.prefs = msg.prefs
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.habits)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.New):
			return p.showNewHabitForm()
		case key.Matches(msg, keys.Complete):
			return p.complete()
		case key.Matches(msg, keys.Delete):
			if _, ok := p.selected(); ok {
				return p.showRemoveForm()
			}
		}
	}
	return p, nil
}

func (p habitsModel) complete() (habitsModel, tea.Cmd) {
	h, ok := p.selected()
	if !ok {
		return p, func() tea.Msg {
			return statusMsg{text: "No habits yet. Press n to add one.", isError: true}
		}
	}
	res, err := p.ledger.RecordCompletion(h.ID, p.now())
	if err != nil {
		return p, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Complete error: %v", err), isError: true}
		}
	}
	return p, func() tea.Msg { return completedMsg{result: res} }
}

// defaultsFromPrefs resets the form fields to the user's preferred values.
func (p habitsModel) defaultsFromPrefs() {
	*p.formName = ""
	*p.formCreature = engine.DefaultType
	if t, ok := engine.ParseType(p.prefs.DefaultType); ok {
		*p.formCreature = t
	}
	*p.formFrequency = engine.DefaultFrequency
	if f, ok := engine.ParseFrequency(p.prefs.DefaultFrequency); ok {
		*p.formFrequency = f
	}
	*p.formDifficulty = engine.DefaultDifficulty
	if d, ok := engine.ParseDifficulty(p.prefs.DefaultDifficulty); ok {
		*p.formDifficulty = d
	}
	*p.formRemind = p.prefs.RemindersEnabled
	*p.formTime = p.prefs.DefaultReminder
	if !reminder.ValidClock(*p.formTime) {
		*p.formTime = "08:00"
	}
}

func (p habitsModel) showNewHabitForm() (habitsModel, tea.Cmd) {
	p.defaultsFromPrefs()
	p.formType = "habit"

	typeOptions := make([]huh.Option[engine.Type], 0, len(engine.Types()))
	for _, t := range engine.Types() {
		dot := lipgloss.NewStyle().Foreground(typeColor(t)).Render("●")
		typeOptions = append(typeOptions, huh.NewOption(dot+" "+t.Label(), t))
	}
	freqOptions := make([]huh.Option[engine.Frequency], 0, 3)
	for _, f := range engine.Frequencies() {
		freqOptions = append(freqOptions, huh.NewOption(string(f), f))
	}
	diffOptions := make([]huh.Option[engine.Difficulty], 0, 3)
	for _, d := range engine.Difficulties() {
		diffOptions = append(diffOptions, huh.NewOption(fmt.Sprintf("%s (+%d XP)", d, d.Reward()), d))
	}

	remind := p.formRemind
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit Name").Value(p.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewSelect[engine.Type]().Title("Creature").Options(typeOptions...).Value(p.formCreature),
			huh.NewSelect[engine.Frequency]().Title("Frequency").Options(freqOptions...).Value(p.formFrequency),
			huh.NewSelect[engine.Difficulty]().Title("Difficulty").Options(diffOptions...).Value(p.formDifficulty),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Daily reminder?").Value(p.formRemind),
			huh.NewInput().Title("Reminder time (HH:MM)").Value(p.formTime).
				Validate(func(s string) error {
					if !*remind {
						return nil
					}
					_, _, err := reminder.ParseClock(s)
					return err
				}),
		).Title("Reminder"),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p habitsModel) showRemoveForm() (habitsModel, tea.Cmd) {
	h, _ := p.selected()
	*p.formConfirm = false
	p.formType = "remove"
	p.removingID = h.ID

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Release %s?", h.Name)).
				Description("Its creature and completion history are removed.").
				Affirmative("Remove").
				Negative("Keep").
				Value(p.formConfirm),
		),
	).WithShowHelp(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p habitsModel) draft() engine.Draft {
	d := engine.Draft{
		Name:       *p.formName,
		Type:       *p.formCreature,
		Frequency:  *p.formFrequency,
		Difficulty: *p.formDifficulty,
	}
	if *p.formRemind {
		d.Reminder = engine.Reminder{Enabled: true, Time: strings.TrimSpace(*p.formTime)}
	}
	return d
}

func (p habitsModel) updateForm(msg tea.Msg) (habitsModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		switch p.formType {
		case "habit":
			h, err := p.ledger.AddHabit(p.draft(), p.now())
			if err != nil {
				return p, func() tea.Msg {
					return statusMsg{text: err.Error(), isError: true}
				}
			}
			p.cursor = len(p.habits)
			return p, func() tea.Msg { return habitsChangedMsg{status: "Habit added: " + h.Name} }
		case "remove":
			if !*p.formConfirm {
				return p, nil
			}
			res := p.ledger.RemoveHabit(p.removingID)
			p.removingID = ""
			if !res.Removed {
				return p, nil
			}
			return p, func() tea.Msg { return habitsChangedMsg{status: "Released " + res.Habit.Name} }
		}
	}

	return p, cmd
}

func (p habitsModel) view() string {
	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Habit")
		if p.formType == "remove" {
			title = titleStyle.Render("Remove Habit")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(p.width - 4).Render(content)
	}

	list := p.renderList()
	h, ok := p.selected()
	if !ok {
		return list
	}
	card := p.renderCard(h)
	if p.width >= 100 {
		return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", card)
	}
	return lipgloss.JoinVertical(lipgloss.Left, list, card)
}

// cardWidth is the rendered width of a habit card: sprite, gap, info
// column, padding and border.
const cardWidth = 16 + 2 + 26 + 2 + 2

func (p habitsModel) listWidth() int {
	if p.width >= 100 {
		return p.width - 4 - cardWidth - 1
	}
	return p.width - 4
}

func (p habitsModel) renderList() string {
	w := max(20, p.listWidth())
	title := titleStyle.Render("Habits")

	if len(p.habits) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No habits yet. Press n to hatch your first creature."),
		)
		return panelStyle.Width(w).Render(content)
	}

	today := p.now()
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-2s %-22s %-18s %7s %5s", "", "Name", "Schedule", "Streak", "Evo")))

	for i, h := range p.habits {
		dot := lipgloss.NewStyle().Foreground(typeColor(h.Type)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		done := " "
		if engine.IsWithinWindow(h.LastCompletedAt, h.Frequency, today) {
			done = successStyle.Render("✓")
		}
		row := style.Render(fmt.Sprintf("%s%s %-22s %-18s %7d %4d%%",
			cursor, dot, truncate(h.Name, 22),
			fmt.Sprintf("%s • %s", h.Frequency, h.Difficulty),
			h.Streak, h.LevelXP))
		rows = append(rows, row+" "+done)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  space: complete  d: remove"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p habitsModel) renderCard(h engine.Habit) string {
	accent := lipgloss.NewStyle().Foreground(typeColor(h.Type)).Bold(true)

	last := "Never completed"
	if h.Completed() {
		last = "Last: " + humanize.RelTime(h.LastCompletedAt, p.now(), "ago", "from now")
	}
	remind := mutedStyle.Render("Reminder off")
	if h.Reminder.Enabled {
		remind = highlightStyle.Render("Reminder " + h.Reminder.Time)
	}

	info := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(truncate(h.Name, 24)),
		accent.Render(fmt.Sprintf("%s · stage %d", h.Type.Label(), h.Evolutions+1)),
		subtitleStyle.Render(fmt.Sprintf("%s • %s", h.Frequency, h.Difficulty)),
		"",
		evolutionLabel(h.LevelXP),
		progressBar(h.LevelXP, 20),
		"",
		streakLabel(h.Streak),
		fmt.Sprintf("Captures: %d", h.Captures()),
		remind,
		mutedStyle.Render(last),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, renderSprite(h.Type, h.Evolutions), "  ", lipgloss.NewStyle().Width(26).Render(info))
	return cardStyle.BorderForeground(typeColor(h.Type)).Render(body)
}
