package engine

import (
	"strings"
	"time"
)

// Type is the creature family a habit hatches into.
type Type string

const (
	TypeFlame Type = "flame"
	TypeAqua  Type = "aqua"
	TypeLeaf  Type = "leaf"
)

// DefaultType is used when a draft carries an unknown type.
const DefaultType = TypeFlame

var allTypes = []Type{TypeFlame, TypeAqua, TypeLeaf}

// Types returns every habit type in display order.
func Types() []Type { return append([]Type(nil), allTypes...) }

func (t Type) IsValid() bool {
	switch t {
	case TypeFlame, TypeAqua, TypeLeaf:
		return true
	}
	return false
}

// Label is the display name of the type.
func (t Type) Label() string {
	switch t {
	case TypeAqua:
		return "Aqua"
	case TypeLeaf:
		return "Leaf"
	default:
		return "Flame"
	}
}

// ParseType accepts any casing and surrounding whitespace.
func ParseType(s string) (Type, bool) {
	t := Type(strings.TrimSpace(strings.ToLower(s)))
	return t, t.IsValid()
}

// Frequency selects the window used for streak continuity.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

const DefaultFrequency = Daily

var allFrequencies = []Frequency{Daily, Weekly, Monthly}

func Frequencies() []Frequency { return append([]Frequency(nil), allFrequencies...) }

func (f Frequency) IsValid() bool {
	switch f {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

func ParseFrequency(s string) (Frequency, bool) {
	f := Frequency(strings.TrimSpace(strings.ToLower(s)))
	return f, f.IsValid()
}

// Difficulty determines the experience awarded per completion.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

const DefaultDifficulty = Medium

var allDifficulties = []Difficulty{Easy, Medium, Hard}

func Difficulties() []Difficulty { return append([]Difficulty(nil), allDifficulties...) }

func (d Difficulty) IsValid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Reward is the XP granted for one completion. Unknown values earn the
// easy reward.
func (d Difficulty) Reward() int {
	switch d {
	case Hard:
		return 8
	case Medium:
		return 5
	default:
		return 3
	}
}

func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.TrimSpace(strings.ToLower(s)))
	return d, d.IsValid()
}

const (
	// MaxXP caps LevelXP.
	MaxXP = 100
	// XPPerStage is the experience needed per evolution.
	XPPerStage = 34
	// MaxStage is the final evolution stage.
	MaxStage = 2
)

// StageFor returns the evolution stage for an XP total.
func StageFor(xp int) int {
	if xp < 0 {
		return 0
	}
	return min(MaxStage, xp/XPPerStage)
}

// Reminder is a per-habit daily notification at a local wall-clock time.
type Reminder struct {
	Enabled bool
	Time    string // "HH:MM", empty when disabled
}

// Habit is one tracked routine and its accumulated progression.
type Habit struct {
	ID              string
	Name            string
	Type            Type
	Frequency       Frequency
	Difficulty      Difficulty
	Reminder        Reminder
	Completions     []time.Time
	LastCompletedAt time.Time // zero if never completed
	Streak          int
	LevelXP         int
	Evolutions      int
	CreatedAt       time.Time
}

// Completed reports whether the habit has ever been completed.
func (h Habit) Completed() bool { return !h.LastCompletedAt.IsZero() }

// Captures is the number of recorded completions.
func (h Habit) Captures() int { return len(h.Completions) }

func (h Habit) clone() Habit {
	c := h
	if h.Completions != nil {
		c.Completions = append([]time.Time(nil), h.Completions...)
	}
	return c
}

// Draft carries the user-supplied fields for a new habit.
type Draft struct {
	Name       string
	Type       Type
	Frequency  Frequency
	Difficulty Difficulty
	Reminder   Reminder
}
