// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// RelativeDayLabel names a date the way the dashboard talks about it:
// "Today", "Tomorrow", or the short date.
func RelativeDayLabel(t, now time.Time) string {
	days := int(BeginningOfDay(t).Sub(BeginningOfDay(now)).Hours() / 24)
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return t.Format("Mon Jan 2")
	}
}
