package utils

import "time"

// IsWithinClockWindow reports whether t falls inside the daily window given by
// start and end, both "HH:MM:SS" wall-clock strings in t's location. The
// comparison is a lexicographic range check on the formatted time, matching
// inclusive bounds on whole seconds.
func IsWithinClockWindow(t time.Time, start, end string) bool {
	now := t.Format("15:04:05")
	return now >= start && now <= end
}
