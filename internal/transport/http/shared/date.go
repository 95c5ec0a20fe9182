package shared

import "time"

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// MonthRef resolves optional month (January..December) and year query
// values to the first day of that month, defaulting to the current one.
func MonthRef(month, year string, now time.Time) (time.Time, error) {
	ref := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if month == "" && year == "" {
		return ref, nil
	}
	if month == "" {
		month = now.Format("January")
	}
	if year == "" {
		year = now.Format("2006")
	}
	return time.Parse("January 2006", month+" "+year)
}
