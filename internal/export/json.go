package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/pixeltrainer/internal/engine"
)

type jsonExport struct {
	ExportedAt  string      `json:"exported_at"`
	Count       int         `json:"count"`
	Completions int         `json:"completions"`
	Habits      []jsonHabit `json:"habits"`
}

type jsonHabit struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Frequency       string   `json:"frequency"`
	Difficulty      string   `json:"difficulty"`
	Streak          int      `json:"streak"`
	LevelXP         int      `json:"level_xp"`
	Evolutions      int      `json:"evolutions"`
	Reminder        string   `json:"reminder,omitempty"`
	CreatedAt       string   `json:"created_at"`
	LastCompletedAt string   `json:"last_completed_at,omitempty"`
	Completions     []string `json:"completions"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}

// ToJSON writes the collection with its completion history to path.
func ToJSON(habits []engine.Habit, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, habits, time.Now()); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// WriteJSON writes the pretty-printed export document to w.
func WriteJSON(w io.Writer, habits []engine.Habit, now time.Time) error {
	export := jsonExport{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Count:      len(habits),
	}

	for _, h := range habits {
		jh := jsonHabit{
			ID:              h.ID,
			Name:            h.Name,
			Type:            string(h.Type),
			Frequency:       string(h.Frequency),
			Difficulty:      string(h.Difficulty),
			Streak:          h.Streak,
			LevelXP:         h.LevelXP,
			Evolutions:      h.Evolutions,
			CreatedAt:       formatTime(h.CreatedAt),
			LastCompletedAt: formatTime(h.LastCompletedAt),
			Completions:     make([]string, 0, len(h.Completions)),
		}
		if h.Reminder.Enabled {
			jh.Reminder = h.Reminder.Time
		}
		for _, c := range h.Completions {
			jh.Completions = append(jh.Completions, formatTime(c))
		}
		export.Completions += len(h.Completions)
		export.Habits = append(export.Habits, jh)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
