package util

import "time"

// Named time-window filters accepted by the monthly aggregation endpoint.
const (
	FilterToday     = "today"
	FilterThisWeek  = "this-week"
	FilterThisMonth = "this-month"
	FilterThisYear  = "this-year"
	FilterAllTime   = "all-time"
)

// PeriodStart resolves a filter name to its inclusive lower bound relative to
// now. The second return is false for all-time, which has no lower bound.
func PeriodStart(filter string, now time.Time) (time.Time, bool, error) {
	switch filter {
	case FilterToday:
		return startOfDay(now), true, nil
	case FilterThisWeek:
		return startOfWeek(now), true, nil
	case FilterThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true, nil
	case FilterThisYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true, nil
	case FilterAllTime:
		return time.Time{}, false, nil
	default:
		return time.Time{}, false, NewValidationError("invalid filter")
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Weeks start on Monday.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return startOfDay(t).AddDate(0, 0, -(weekday - 1))
}
