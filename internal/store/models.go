package store

import "time"

type Setting struct {
	Key   string
	Value string
}

// Blob describes a stored value without loading it.
type Blob struct {
	Key       string
	Size      int64
	UpdatedAt time.Time
}

// Preferences are the user-editable settings in typed form.
type Preferences struct {
	RemindersEnabled  bool
	SoundEnabled      bool
	DefaultType       string
	DefaultFrequency  string
	DefaultDifficulty string
	DefaultReminder   string // "HH:MM"
}

// DefaultPreferences mirrors the values seeded by the first migration.
func DefaultPreferences() Preferences {
	return Preferences{
		RemindersEnabled:  true,
		SoundEnabled:      true,
		DefaultType:       "flame",
		DefaultFrequency:  "daily",
		DefaultDifficulty: "medium",
		DefaultReminder:   "08:00",
	}
}
