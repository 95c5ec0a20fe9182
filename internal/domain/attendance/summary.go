package attendance

import "time"

// StandardMonthDays caps the working-day count: Sundays are excluded and a
// standard month is treated as at most 26 working days regardless of how
// many non-Sundays the calendar actually holds.
const StandardMonthDays = 26

// WorkingDays returns min(26, non-Sunday days) for the month containing ref.
func WorkingDays(ref time.Time) int {
	count := 0
	for day := monthStart(ref); day.Month() == ref.Month(); day = day.AddDate(0, 0, 1) {
		if day.Weekday() != time.Sunday {
			count++
		}
	}
	if count > StandardMonthDays {
		return StandardMonthDays
	}
	return count
}

// workingDates returns the uncapped set of non-Sunday dates in ref's month.
// The cap applies to the working-day denominator, not to which dates a
// presence record may land on.
func workingDates(ref time.Time) map[string]struct{} {
	dates := make(map[string]struct{}, 27)
	for day := monthStart(ref); day.Month() == ref.Month(); day = day.AddDate(0, 0, 1) {
		if day.Weekday() != time.Sunday {
			dates[day.Format(DateLayout)] = struct{}{}
		}
	}
	return dates
}

// Summarize computes the employee's month roll-up from raw records. A day
// is present only when the record carries both a check-in and a check-out;
// records on Sundays or outside ref's month are ignored. AbsentDays never
// goes negative even if anomalous data yields more present days than
// working days.
func Summarize(records []Record, employeeID string, ref time.Time) Summary {
	valid := workingDates(ref)
	present := make(map[string]struct{})
	for _, rec := range records {
		if rec.EmployeeID != employeeID {
			continue
		}
		if _, ok := valid[rec.Date]; !ok {
			continue
		}
		if hasValue(rec.CheckIn) && hasValue(rec.CheckOut) {
			present[rec.Date] = struct{}{}
		}
	}

	working := WorkingDays(ref)
	absent := working - len(present)
	if absent < 0 {
		absent = 0
	}
	return Summary{
		WorkingDays: working,
		PresentDays: len(present),
		AbsentDays:  absent,
	}
}

func hasValue(s *string) bool {
	return s != nil && *s != ""
}

func monthStart(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
}
