package store

import (
	"fmt"
	"strconv"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

const upsertSetting = `INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(upsertSetting, key, value)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var st Setting
		if err := rows.Scan(&st.Key, &st.Value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

const (
	KeyRemindersEnabled  = "reminders_enabled"
	KeySoundEnabled      = "sound_enabled"
	KeyDefaultType       = "default_type"
	KeyDefaultFrequency  = "default_frequency"
	KeyDefaultDifficulty = "default_difficulty"
	KeyDefaultReminder   = "default_reminder"
)

// LoadPreferences reads the typed preferences. Missing or malformed values
// fall back to DefaultPreferences.
func (s *Store) LoadPreferences() (Preferences, error) {
	p := DefaultPreferences()
	settings, err := s.GetAllSettings()
	if err != nil {
		return p, err
	}
	for _, st := range settings {
		switch st.Key {
		case KeyRemindersEnabled:
			if b, err := strconv.ParseBool(st.Value); err == nil {
				p.RemindersEnabled = b
			}
		case KeySoundEnabled:
			if b, err := strconv.ParseBool(st.Value); err == nil {
				p.SoundEnabled = b
			}
		case KeyDefaultType:
			p.DefaultType = st.Value
		case KeyDefaultFrequency:
			p.DefaultFrequency = st.Value
		case KeyDefaultDifficulty:
			p.DefaultDifficulty = st.Value
		case KeyDefaultReminder:
			p.DefaultReminder = st.Value
		}
	}
	return p, nil
}

// SavePreferences writes every preference in one transaction.
func (s *Store) SavePreferences(p Preferences) error {
	values := []Setting{
		{KeyRemindersEnabled, strconv.FormatBool(p.RemindersEnabled)},
		{KeySoundEnabled, strconv.FormatBool(p.SoundEnabled)},
		{KeyDefaultType, p.DefaultType},
		{KeyDefaultFrequency, p.DefaultFrequency},
		{KeyDefaultDifficulty, p.DefaultDifficulty},
		{KeyDefaultReminder, p.DefaultReminder},
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save preferences: begin: %w", err)
	}
	defer tx.Rollback()

	for _, v := range values {
		if _, err := tx.Exec(upsertSetting, v.Key, v.Value); err != nil {
			return fmt.Errorf("save preferences: set %q: %w", v.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save preferences: commit: %w", err)
	}
	return nil
}
