package model

import "time"

// SameCalendarDay reports whether both times fall on the same calendar day,
// comparing each value's own local calendar fields and ignoring
// time-of-day. No timezone normalization is performed.
func SameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsToday reports whether t falls on the same calendar day as now.
func IsToday(t, now time.Time) bool {
	return SameCalendarDay(t, now)
}

// DayOf strips the time-of-day, returning midnight of t's calendar day in
// t's location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
