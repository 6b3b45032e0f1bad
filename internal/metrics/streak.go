package metrics

import "time"

// DayMs is how many milliseconds are in a day.
const DayMs int64 = 24 * 60 * 60 * 1000

// toMillis converts an optional timestamp to epoch milliseconds.
// Nil and the zero time both count as absent.
func toMillis(t *time.Time) int64 {
	if t == nil || t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// CurrentStreakDays computes the consecutive-day streak at instant now.
// The anchor is lastIncident when present, createdAt otherwise. With no
// anchor at all the streak is 0. Negative intervals (client clock ahead
// of the anchor) clamp to 0 instead of erroring, callers treat the
// result as display data.
func CurrentStreakDays(lastIncident, createdAt *time.Time, now time.Time) int {
	sinceMs := toMillis(lastIncident)
	if sinceMs == 0 {
		sinceMs = toMillis(createdAt)
	}
	if sinceMs == 0 {
		return 0
	}
	days := (now.UnixMilli() - sinceMs) / DayMs
	if days < 0 {
		return 0
	}
	return int(days)
}
