package model

import "time"

// RecordCompletion returns the completion history after a toggle on the
// given day. Completing appends today's calendar day unless it is already
// present, so completing twice in one day is a no-op. Un-completing
// removes today's entry only; entries for past days are never touched.
// The input slice is not modified.
func RecordCompletion(history []time.Time, completing bool, today time.Time) []time.Time {
	day := DayOf(today)
	if completing {
		for _, d := range history {
			if SameCalendarDay(d, day) {
				return append([]time.Time(nil), history...)
			}
		}
		out := make([]time.Time, 0, len(history)+1)
		out = append(out, history...)
		return append(out, day)
	}
	out := make([]time.Time, 0, len(history))
	for _, d := range history {
		if !SameCalendarDay(d, day) {
			out = append(out, d)
		}
	}
	return out
}
