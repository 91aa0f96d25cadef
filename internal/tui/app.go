package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pixeltrainer/internal/engine"
	"github.com/sadopc/pixeltrainer/internal/export"
	"github.com/sadopc/pixeltrainer/internal/store"
)

// Options tune the app. Zero values are usable.
type Options struct {
	// Bell rings the terminal bell on completions and reminders when the
	// user's sound preference is also on.
	Bell    bool
	BellOut io.Writer // defaults to stderr

	Logger    *slog.Logger
	Now       func() time.Time
	ExportDir string // defaults to the home directory
}

// App is the root Bubble Tea model.
type App struct {
	ledger *engine.Ledger
	store  *store.Store
	opts   Options
	log    *slog.Logger
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	prefs        store.Preferences
	habits       habitsModel
	achievements achievementsModel
	profile      profileModel
	settings     settingsModel
	reminders    reminderModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(l *engine.Ledger, s *store.Store, opts Options) App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.BellOut == nil {
		opts.BellOut = os.Stderr
	}
	if opts.ExportDir == "" {
		opts.ExportDir, _ = os.UserHomeDir()
	}

	prefs, err := s.LoadPreferences()
	if err != nil {
		opts.Logger.Warn("load preferences", slog.Any("error", err))
		prefs = store.DefaultPreferences()
	}

	h := help.New()
	h.ShowAll = false

	settings := newSettingsModel(s)
	settings.bellOff = !opts.Bell

	return App{
		ledger:       l,
		store:        s,
		opts:         opts,
		log:          opts.Logger,
		activeView:   viewHabits,
		prefs:        prefs,
		habits:       newHabitsModel(l, prefs, opts.Now),
		achievements: newAchievementsModel(l),
		profile:      newProfileModel(l),
		settings:     settings,
		reminders:    newReminderModel(l, prefs.RemindersEnabled, opts.Now()),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.habits.refresh(),
		a.achievements.refresh(),
		a.profile.refresh(),
		a.settings.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.habits.setSize(a.width, contentHeight)
		a.achievements.setSize(a.width, contentHeight)
		a.profile.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewHabits
			return a, a.habits.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewAchievements
			return a, a.achievements.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewProfile
			return a, a.profile.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		return a.onTick()

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case completedMsg:
		return a.onCompleted(msg.result)

	case habitsChangedMsg:
		if msg.status != "" {
			a.status = msg.status
			a.statusErr = false
		}
		cmd := a.habitsChanged()
		return a, cmd

	case prefsChangedMsg:
		a.prefs = msg.prefs
		a.reminders.setEnabled(msg.prefs.RemindersEnabled)
		var cmd tea.Cmd
		a.habits, cmd = a.habits.update(msg)
		return a, cmd

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil

	// Data messages go to their view even when it is not on screen.
	case habitsDataMsg:
		var cmd tea.Cmd
		a.habits, cmd = a.habits.update(msg)
		return a, cmd
	case achievementsDataMsg:
		var cmd tea.Cmd
		a.achievements, cmd = a.achievements.update(msg)
		return a, cmd
	case profileDataMsg:
		var cmd tea.Cmd
		a.profile, cmd = a.profile.update(msg)
		return a, cmd
	case settingsDataMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) onTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd()}
	now := a.opts.Now()

	due, reset := a.reminders.tick(now)
	if n := reset.Count(); n > 0 {
		a.status = fmt.Sprintf("New day: %d streak(s) reset", n)
		a.statusErr = false
		cmds = append(cmds, a.refreshAll())
	}
	if len(due) > 0 {
		for _, it := range due {
			a.log.Info("reminder fired", slog.String("habit_id", it.HabitID), slog.String("time", it.Clock))
		}
		last := due[len(due)-1]
		a.status = last.Message()
		if len(due) > 1 {
			a.status = fmt.Sprintf("%s (+%d more)", last.Message(), len(due)-1)
		}
		a.statusErr = false
		cmds = append(cmds, a.ring())
	}
	return a, tea.Batch(cmds...)
}

func (a App) onCompleted(res engine.CompletionResult) (tea.Model, tea.Cmd) {
	a.log.Info("habit completed",
		slog.String("habit_id", res.Habit.ID),
		slog.Int("xp", res.XPGained),
		slog.Int("streak", res.NewStreak),
	)

	a.status = fmt.Sprintf("Habit completed! +%d XP", res.XPGained)
	if res.Evolved() {
		a.status += fmt.Sprintf("  %s evolved to stage %d!", res.Habit.Name, res.StageAfter+1)
	}
	a.statusErr = false
	cmd := a.habitsChanged()
	return a, tea.Batch(a.ring(), cmd)
}

// habitsChanged reschedules reminders and reloads every view after a
// ledger mutation. A failed write replaces the status with the error.
func (a *App) habitsChanged() tea.Cmd {
	a.reminders.sync(a.opts.Now())
	if err := a.ledger.SaveErr(); err != nil {
		a.status = fmt.Sprintf("Save error: %v", err)
		a.statusErr = true
	}
	return a.refreshAll()
}

// ring writes the terminal bell. Feedback is advisory, so write errors
// are ignored.
func (a App) ring() tea.Cmd {
	if !a.opts.Bell || !a.prefs.SoundEnabled {
		return nil
	}
	out := a.opts.BellOut
	return func() tea.Msg {
		_, _ = io.WriteString(out, "\a")
		return nil
	}
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewHabits:
		a.habits, cmd = a.habits.update(msg)
	case viewAchievements:
		a.achievements, cmd = a.achievements.update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewHabits:
		return a.habits.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewHabits:
		return a.habits.refresh()
	case viewAchievements:
		return a.achievements.refresh()
	case viewProfile:
		return a.profile.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) refreshAll() tea.Cmd {
	return tea.Batch(
		a.habits.refresh(),
		a.achievements.refresh(),
		a.profile.refresh(),
	)
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewHabits:
		content = a.habits.view()
	case viewAchievements:
		content = a.achievements.view()
	case viewProfile:
		content = a.profile.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("pixel trainer")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Next reminder indicator
	next := ""
	if it, ok := a.reminders.next(); ok {
		next = warningStyle.Render(fmt.Sprintf(" ⏰ %s %s", it.Clock, truncate(it.Name, 16)))
	}

	left := footerStyle.Render(helpView)
	right := next + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"CSV", "JSON"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	habits := a.ledger.Snapshot()
	dir := a.opts.ExportDir
	dateStr := a.opts.Now().Format("2006-01-02")

	return func() tea.Msg {
		var path string
		if format == 0 {
			path = filepath.Join(dir, fmt.Sprintf("pixeltrainer-export-%s.csv", dateStr))
			if err := export.ToCSV(habits, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(dir, fmt.Sprintf("pixeltrainer-export-%s.json", dateStr))
			if err := export.ToJSON(habits, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}
		return exportDoneMsg{path: path}
	}
}
