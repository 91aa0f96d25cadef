package engine

import (
	"math"
	"sort"
)

// Badge is a milestone derived from aggregate totals.
type Badge struct {
	ID          string
	Title       string
	Description string
}

type badgeRule struct {
	Badge
	earned func(Stats) bool
}

var badgeRules = []badgeRule{
	{Badge{"starter", "Starter Badge", "First completion achieved"}, func(s Stats) bool { return s.TotalCompletions >= 1 }},
	{Badge{"novice", "Novice Trainer", "10 total completions"}, func(s Stats) bool { return s.TotalCompletions >= 10 }},
	{Badge{"adept", "Adept Trainer", "30 total completions"}, func(s Stats) bool { return s.TotalCompletions >= 30 }},
	{Badge{"master", "Master Trainer", "100 total completions"}, func(s Stats) bool { return s.TotalCompletions >= 100 }},
	{Badge{"streak7", "Streak Ember", "7 total streak count"}, func(s Stats) bool { return s.TotalStreak >= 7 }},
	{Badge{"streak30", "Streak Blaze", "30 total streak count"}, func(s Stats) bool { return s.TotalStreak >= 30 }},
	{Badge{"collector", "Collector", "Create 5 habits"}, func(s Stats) bool { return s.TotalHabits >= 5 }},
}

// AllBadges lists every badge in award order.
func AllBadges() []Badge {
	out := make([]Badge, len(badgeRules))
	for i, r := range badgeRules {
		out[i] = r.Badge
	}
	return out
}

// Stats aggregates progression across the whole collection.
type Stats struct {
	TotalHabits      int
	TotalCompletions int
	TotalStreak      int
	TrainerLevel     int
	Badges           []Badge
}

// HasBadge reports whether the badge with id was earned.
func (s Stats) HasBadge(id string) bool {
	for _, b := range s.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// TrainerLevel is floor(sqrt(completions) + habits/2).
func TrainerLevel(totalCompletions, totalHabits int) int {
	return int(math.Floor(math.Sqrt(float64(totalCompletions)) + float64(totalHabits)/2))
}

// Compute derives statistics from a collection snapshot. Badges are
// recomputed from the current totals, so a badge disappears if the totals
// fall below its threshold.
func Compute(habits []Habit) Stats {
	s := Stats{TotalHabits: len(habits)}
	for _, h := range habits {
		s.TotalCompletions += len(h.Completions)
		s.TotalStreak += h.Streak
	}
	s.TrainerLevel = TrainerLevel(s.TotalCompletions, s.TotalHabits)
	for _, r := range badgeRules {
		if r.earned(s) {
			s.Badges = append(s.Badges, r.Badge)
		}
	}
	return s
}

// Entry is one row of the achievement view.
type Entry struct {
	ID       string
	Name     string
	Type     Type
	Captures int
	Stage    int
	Streak   int
}

// Achievements ranks habits by completion count, most first. Ties keep
// collection order.
func Achievements(habits []Habit) []Entry {
	out := make([]Entry, len(habits))
	for i, h := range habits {
		out[i] = Entry{
			ID:       h.ID,
			Name:     h.Name,
			Type:     h.Type,
			Captures: len(h.Completions),
			Stage:    min(MaxStage, h.Evolutions),
			Streak:   h.Streak,
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Captures > out[j].Captures })
	return out
}
