package journal

import (
	"time"

	"tableflip.dev/mindful/pkg/entry"
)

// Stats is the dashboard summary of a set of entries.
type Stats struct {
	Total    int `json:"total"`
	Pinned   int `json:"pinned"`
	ThisWeek int `json:"thisWeek"`
	// Streak counts consecutive days with at least one entry, ending today.
	// A day without entries yet does not break a streak that reached
	// yesterday.
	Streak int `json:"streak"`
}

// Summarize computes Stats relative to now. Days are taken in now's location.
func Summarize(entries []*entry.Entry, now time.Time) Stats {
	loc := now.Location()
	today := dayOf(now, loc)
	weekStart := today.AddDate(0, 0, -6)

	st := Stats{Total: len(entries)}
	days := make(map[time.Time]bool, len(entries))
	for _, e := range entries {
		if e.Pinned {
			st.Pinned++
		}
		d := dayOf(e.CreatedAt.Time, loc)
		days[d] = true
		if !d.Before(weekStart) && !d.After(today) {
			st.ThisWeek++
		}
	}

	day := today
	if !days[day] {
		day = day.AddDate(0, 0, -1)
	}
	for days[day] {
		st.Streak++
		day = day.AddDate(0, 0, -1)
	}
	return st
}

// CountByDay returns per-day entry counts for the month containing month,
// index 0 being the 1st.
func CountByDay(entries []*entry.Entry, month time.Time) []int {
	loc := month.Location()
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)
	count := make([]int, first.AddDate(0, 1, -1).Day())
	for _, e := range entries {
		t := e.CreatedAt.In(loc)
		if t.Year() == first.Year() && t.Month() == first.Month() {
			count[t.Day()-1]++
		}
	}
	return count
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
