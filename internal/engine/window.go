package engine

import "time"

// WindowStart returns the beginning of the accounting window that contains
// now, in now's location. Weeks start on Monday.
func WindowStart(freq Frequency, now time.Time) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch freq {
	case Weekly:
		back := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -back)
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	default:
		return midnight
	}
}

// IsWithinWindow reports whether ts falls in [WindowStart(freq, now), now].
// A zero ts is never within a window.
func IsWithinWindow(ts time.Time, freq Frequency, now time.Time) bool {
	if ts.IsZero() {
		return false
	}
	start := WindowStart(freq, now)
	return !ts.Before(start) && !ts.After(now)
}
