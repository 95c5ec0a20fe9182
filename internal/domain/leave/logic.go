package leave

import "time"

// CalculateDays returns the number of calendar days covered by a leave
// request, counting both endpoints. A single-day leave is 1 day.
func CalculateDays(start, end time.Time) int {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether two inclusive day ranges share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !truncateDay(aStart).After(truncateDay(bEnd)) && !truncateDay(bStart).After(truncateDay(aEnd))
}

// CoversDate reports whether the leave's inclusive range contains the day.
func CoversDate(startDate, endDate string, day time.Time) bool {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return false
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return false
	}
	d := truncateDay(day)
	return !d.Before(start) && !d.After(end)
}
