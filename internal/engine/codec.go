package engine

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// wireHabit is the persisted shape: camelCase keys and Unix millisecond
// timestamps, with lastCompletedAt 0 for a habit never completed.
type wireHabit struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Type            string       `json:"type"`
	Frequency       string       `json:"frequency"`
	Difficulty      string       `json:"difficulty"`
	Reminder        wireReminder `json:"reminder"`
	CreatedAt       int64        `json:"createdAt"`
	LastCompletedAt int64        `json:"lastCompletedAt"`
	Completions     []int64      `json:"completions"`
	Streak          int          `json:"streak"`
	LevelXP         int          `json:"levelXP"`
	Evolutions      int          `json:"evolutions"`
}

type wireReminder struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// EncodeHabits serializes a collection in the persisted format.
func EncodeHabits(habits []Habit) ([]byte, error) {
	out := make([]wireHabit, 0, len(habits))
	for _, h := range habits {
		w := wireHabit{
			ID:              h.ID,
			Name:            h.Name,
			Type:            string(h.Type),
			Frequency:       string(h.Frequency),
			Difficulty:      string(h.Difficulty),
			Reminder:        wireReminder{Enabled: h.Reminder.Enabled, Time: h.Reminder.Time},
			CreatedAt:       toMillis(h.CreatedAt),
			LastCompletedAt: toMillis(h.LastCompletedAt),
			Completions:     make([]int64, 0, len(h.Completions)),
			Streak:          h.Streak,
			LevelXP:         h.LevelXP,
			Evolutions:      h.Evolutions,
		}
		for _, c := range h.Completions {
			w.Completions = append(w.Completions, toMillis(c))
		}
		out = append(out, w)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal habits: %w", err)
	}
	return data, nil
}

// DecodeHabits parses a persisted collection and repairs records that
// violate the progression invariants. Records without an id, and repeats
// of an id already seen, are dropped. The second return value counts the
// records that were dropped or repaired.
func DecodeHabits(data []byte) ([]Habit, int, error) {
	var in []wireHabit
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, 0, fmt.Errorf("unmarshal habits: %w", err)
	}

	habits := make([]Habit, 0, len(in))
	seen := make(map[string]bool, len(in))
	fixed := 0
	for _, w := range in {
		if w.ID == "" || seen[w.ID] {
			fixed++
			continue
		}
		seen[w.ID] = true

		h, repaired := habitFromWire(w)
		if repaired {
			fixed++
		}
		habits = append(habits, h)
	}
	return habits, fixed, nil
}

func habitFromWire(w wireHabit) (Habit, bool) {
	repaired := false

	t, ok := ParseType(w.Type)
	if !ok {
		t, repaired = DefaultType, true
	}
	f, ok := ParseFrequency(w.Frequency)
	if !ok {
		f, repaired = DefaultFrequency, true
	}
	d, ok := ParseDifficulty(w.Difficulty)
	if !ok {
		d, repaired = DefaultDifficulty, true
	}

	h := Habit{
		ID:         w.ID,
		Name:       strings.TrimSpace(w.Name),
		Type:       t,
		Frequency:  f,
		Difficulty: d,
		Reminder:   Reminder{Enabled: w.Reminder.Enabled, Time: w.Reminder.Time},
		CreatedAt:  fromMillis(w.CreatedAt),
		Streak:     w.Streak,
		LevelXP:    w.LevelXP,
	}
	for _, ms := range w.Completions {
		if ms <= 0 {
			repaired = true
			continue
		}
		h.Completions = append(h.Completions, fromMillis(ms))
	}

	if h.Streak < 0 {
		h.Streak, repaired = 0, true
	}
	if h.LevelXP < 0 || h.LevelXP > MaxXP {
		h.LevelXP, repaired = min(MaxXP, max(0, h.LevelXP)), true
	}
	h.Evolutions = StageFor(h.LevelXP)
	if h.Evolutions != w.Evolutions {
		repaired = true
	}

	h.LastCompletedAt = fromMillis(w.LastCompletedAt)
	if n := len(h.Completions); n > 0 && !h.LastCompletedAt.Equal(h.Completions[n-1]) {
		h.LastCompletedAt, repaired = h.Completions[n-1], true
	}
	return h, repaired
}
