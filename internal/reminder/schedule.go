package reminder

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/pixeltrainer/internal/engine"
)

// ParseClock parses a local wall-clock time in "HH:MM" form. Single-digit
// hours and minutes are accepted.
func ParseClock(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || hh == "" || mm == "" || len(hh) > 2 || len(mm) > 2 {
		return 0, 0, fmt.Errorf("invalid reminder time %q: want HH:MM", s)
	}
	hour, err = strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid reminder hour in %q", s)
	}
	minute, err = strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid reminder minute in %q", s)
	}
	return hour, minute, nil
}

// ValidClock reports whether s parses as HH:MM.
func ValidClock(s string) bool {
	_, _, err := ParseClock(s)
	return err == nil
}

// NextOccurrence is the next time the wall clock reads hour:minute in now's
// location: today if that is still ahead of now, otherwise tomorrow.
func NextOccurrence(hour, minute int, now time.Time) time.Time {
	y, m, d := now.Date()
	target := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	if !target.After(now) {
		target = time.Date(y, m, d+1, hour, minute, 0, 0, now.Location())
	}
	return target
}

// Item is one pending reminder.
type Item struct {
	HabitID string
	Name    string
	Clock   string
	At      time.Time
}

// Message is the notification body.
func (it Item) Message() string {
	return it.Name + ": time to train!"
}

// Schedule is the pending reminders ordered by fire time.
type Schedule []Item

// Build returns the schedule for every habit with an enabled, well-formed
// reminder. Habits with malformed times are skipped.
func Build(habits []engine.Habit, now time.Time) Schedule {
	var s Schedule
	for _, h := range habits {
		if !h.Reminder.Enabled || h.Reminder.Time == "" {
			continue
		}
		hh, mm, err := ParseClock(h.Reminder.Time)
		if err != nil {
			continue
		}
		s = append(s, Item{
			HabitID: h.ID,
			Name:    h.Name,
			Clock:   h.Reminder.Time,
			At:      NextOccurrence(hh, mm, now),
		})
	}
	s.sort()
	return s
}

func (s Schedule) sort() {
	sort.SliceStable(s, func(i, j int) bool { return s[i].At.Before(s[j].At) })
}

// Next returns the earliest pending reminder.
func (s Schedule) Next() (Item, bool) {
	if len(s) == 0 {
		return Item{}, false
	}
	return s[0], true
}

// Due returns the reminders whose fire time is at or before now.
func (s Schedule) Due(now time.Time) []Item {
	var due []Item
	for _, it := range s {
		if it.At.After(now) {
			break
		}
		due = append(due, it)
	}
	return due
}

// Scheduler keeps a single schedule table in step with the habit set and
// hands out reminders as they come due. It is not safe for concurrent use;
// the TUI drives it from its update loop.
type Scheduler struct {
	items Schedule
}

// Sync rebuilds the table from habits. Removed or disabled habits drop out.
func (s *Scheduler) Sync(habits []engine.Habit, now time.Time) {
	s.items = Build(habits, now)
}

// Fire returns the reminders due at now and reschedules each for its next
// occurrence.
func (s *Scheduler) Fire(now time.Time) []Item {
	due := s.items.Due(now)
	if len(due) == 0 {
		return nil
	}
	for i := range s.items[:len(due)] {
		it := &s.items[i]
		hh, mm, _ := ParseClock(it.Clock)
		it.At = NextOccurrence(hh, mm, now)
	}
	s.items.sort()
	return due
}

// Pending returns a copy of the schedule table.
func (s *Scheduler) Pending() Schedule {
	return append(Schedule(nil), s.items...)
}
