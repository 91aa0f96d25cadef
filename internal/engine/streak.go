package engine

import "time"

// NextStreak is the streak after a completion at now, given the habit's
// previous completion time and streak. A prior completion inside the
// current window extends the streak, including repeats in the same window.
func NextStreak(priorLast time.Time, priorStreak int, freq Frequency, now time.Time) int {
	if IsWithinWindow(priorLast, freq, now) {
		return max(0, priorStreak) + 1
	}
	return 1
}

// IdleReset reports whether a streak should be zeroed because the last
// completion is outside the current window.
func IdleReset(lastCompletedAt time.Time, freq Frequency, now time.Time) bool {
	return !IsWithinWindow(lastCompletedAt, freq, now)
}
