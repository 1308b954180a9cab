package util

import "time"

// DateLayout is the calendar-date layout used by upstream providers.
const DateLayout = "2006-01-02"

// FormatDate renders t as a UTC calendar date (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DateDaysAgo returns the UTC calendar date daysAgo days before now.
func DateDaysAgo(now time.Time, daysAgo int) string {
	return FormatDate(now.UTC().AddDate(0, 0, -daysAgo))
}

// DateWindow returns the inclusive [now-daysBack, now] calendar window.
func DateWindow(now time.Time, daysBack int) (from, to string) {
	if daysBack < 0 {
		daysBack = 0
	}
	return DateDaysAgo(now, daysBack), DateDaysAgo(now, 0)
}
