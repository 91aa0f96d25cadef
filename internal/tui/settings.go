package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pixeltrainer/internal/engine"
	"github.com/sadopc/pixeltrainer/internal/reminder"
	"github.com/sadopc/pixeltrainer/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	bellOff    bool // bell: false in config.yaml mutes sound regardless of the setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	remindersEnabled  *bool
	soundEnabled      *bool
	defaultType       *string
	defaultFrequency  *string
	defaultDifficulty *string
	defaultReminder   *string
}

func newSettingsModel(s *store.Store) settingsModel {
	re, se := true, true
	dt, df, dd, dr := "", "", "", ""
	return settingsModel{
		store:             s,
		remindersEnabled:  &re,
		soundEnabled:      &se,
		defaultType:       &dt,
		defaultFrequency:  &df,
		defaultDifficulty: &dd,
		defaultReminder:   &dr,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	p, err := s.store.LoadPreferences()
	if err != nil {
		p = store.DefaultPreferences()
	}
	*s.remindersEnabled = p.RemindersEnabled
	*s.soundEnabled = p.SoundEnabled
	*s.defaultType = p.DefaultType
	*s.defaultFrequency = p.DefaultFrequency
	*s.defaultDifficulty = p.DefaultDifficulty
	*s.defaultReminder = p.DefaultReminder

	typeOptions := make([]huh.Option[string], 0, 3)
	for _, t := range engine.Types() {
		typeOptions = append(typeOptions, huh.NewOption(t.Label(), string(t)))
	}
	freqOptions := make([]huh.Option[string], 0, 3)
	for _, f := range engine.Frequencies() {
		freqOptions = append(freqOptions, huh.NewOption(string(f), string(f)))
	}
	diffOptions := make([]huh.Option[string], 0, 3)
	for _, d := range engine.Difficulties() {
		diffOptions = append(diffOptions, huh.NewOption(string(d), string(d)))
	}

	sound := huh.NewConfirm().Title("Sound on completion").Affirmative("On").Negative("Off").Value(s.soundEnabled)
	if s.bellOff {
		sound = sound.Description("bell is false in config.yaml, so sound stays off")
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("Reminders").Affirmative("On").Negative("Off").Value(s.remindersEnabled),
			sound,
		).Title("Notifications"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Default creature").Options(typeOptions...).Value(s.defaultType),
			huh.NewSelect[string]().Title("Default frequency").Options(freqOptions...).Value(s.defaultFrequency),
			huh.NewSelect[string]().Title("Default difficulty").Options(diffOptions...).Value(s.defaultDifficulty),
			huh.NewInput().Title("Default reminder (HH:MM)").Value(s.defaultReminder).
				Validate(func(v string) error {
					_, _, err := reminder.ParseClock(v)
					return err
				}),
		).Title("New habits"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		prefs := s.preferences()
		if err := s.store.SavePreferences(prefs); err != nil {
			return s, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
			}
		}
		return s, tea.Batch(
			s.refresh(),
			func() tea.Msg { return prefsChangedMsg{prefs: prefs} },
			func() tea.Msg { return statusMsg{text: "Settings saved"} },
		)
	}

	return s, cmd
}

func (s settingsModel) preferences() store.Preferences {
	return store.Preferences{
		RemindersEnabled:  *s.remindersEnabled,
		SoundEnabled:      *s.soundEnabled,
		DefaultType:       *s.defaultType,
		DefaultFrequency:  *s.defaultFrequency,
		DefaultDifficulty: *s.defaultDifficulty,
		DefaultReminder:   *s.defaultReminder,
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(settingLabel(setting.Key))
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		if setting.Key == store.KeySoundEnabled && s.bellOff {
			value += " " + warningStyle.Render("(muted by config: bell is false)")
		}
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

var settingLabels = map[string]string{
	store.KeyRemindersEnabled:  "Reminders",
	store.KeySoundEnabled:      "Sound",
	store.KeyDefaultType:       "Default creature",
	store.KeyDefaultFrequency:  "Default frequency",
	store.KeyDefaultDifficulty: "Default difficulty",
	store.KeyDefaultReminder:   "Default reminder",
}

func settingLabel(k string) string {
	if l, ok := settingLabels[k]; ok {
		return l
	}
	return k
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.KeyRemindersEnabled, store.KeySoundEnabled:
		if on, err := strconv.ParseBool(v); err == nil {
			if on {
				return "on"
			}
			return "off"
		}
	case store.KeyDefaultType:
		if t, ok := engine.ParseType(v); ok {
			return t.Label()
		}
	case store.KeyDefaultDifficulty:
		if d, ok := engine.ParseDifficulty(v); ok {
			return fmt.Sprintf("%s (+%d XP)", d, d.Reward())
		}
	}
	return v
}
