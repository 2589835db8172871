// Package interval implements half-open calendar date ranges. A stay
// [start, end) occupies every night from start up to but not including
// end, so a checkout date equal to another stay's check-in date does not
// collide.
package interval

import "time"

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share at
// least one night. Touching boundaries (aEnd == bStart) do not overlap.
// Callers must guarantee start < end on both ranges; reversed input is
// rejected upstream by validation.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Contains reports whether day falls inside [start, end).
func Contains(start, end, day time.Time) bool {
	return !day.Before(start) && day.Before(end)
}

// DateOf truncates t to midnight UTC, dropping any time-of-day carried by
// parsed feed values.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
