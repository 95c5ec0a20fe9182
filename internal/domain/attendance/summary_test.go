package attendance

import (
	"fmt"
	"testing"
	"time"
)

func ptr(s string) *string { return &s }

// September 2025: 30 days, Sundays on the 7th, 14th, 21st and 28th, so 26
// working days exactly at the cap.
var september = time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)

// May 2024: 31 days with 4 Sundays leaves 27 non-Sundays, which must clamp
// to 26.
var may = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

// February 2026: 28 days with 4 Sundays leaves 24 working days, below the
// cap.
var february = time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)

func TestWorkingDaysCap(t *testing.T) {
	if got := WorkingDays(september); got != 26 {
		t.Fatalf("expected 26 working days in September 2025, got %d", got)
	}
	if got := WorkingDays(may); got != 26 {
		t.Fatalf("expected May 2024 to clamp to 26 working days, got %d", got)
	}
	if got := WorkingDays(february); got != 24 {
		t.Fatalf("expected 24 working days in February 2026, got %d", got)
	}
}

func TestSummarizeNoRecords(t *testing.T) {
	sum := Summarize(nil, "emp-1", september)
	if sum.WorkingDays != 26 {
		t.Fatalf("expected 26 working days, got %d", sum.WorkingDays)
	}
	if sum.PresentDays != 0 {
		t.Fatalf("expected 0 present days, got %d", sum.PresentDays)
	}
	if sum.AbsentDays != 26 {
		t.Fatalf("expected 26 absent days, got %d", sum.AbsentDays)
	}
}

func TestSummarizeCountsOnlyFullDays(t *testing.T) {
	records := []Record{
		{EmployeeID: "emp-1", Date: "2025-09-01", CheckIn: ptr("09:00"), CheckOut: ptr("18:00")},
		// check-in only: must not count
		{EmployeeID: "emp-1", Date: "2025-09-02", CheckIn: ptr("09:05")},
		// check-out only: must not count
		{EmployeeID: "emp-1", Date: "2025-09-03", CheckOut: ptr("18:00")},
		// Sunday: ignored even with both marks
		{EmployeeID: "emp-1", Date: "2025-09-07", CheckIn: ptr("09:00"), CheckOut: ptr("18:00")},
		// other employee: ignored
		{EmployeeID: "emp-2", Date: "2025-09-04", CheckIn: ptr("09:00"), CheckOut: ptr("18:00")},
		// outside the month: ignored
		{EmployeeID: "emp-1", Date: "2025-08-29", CheckIn: ptr("09:00"), CheckOut: ptr("18:00")},
	}

	sum := Summarize(records, "emp-1", september)
	if sum.PresentDays != 1 {
		t.Fatalf("expected 1 present day, got %d", sum.PresentDays)
	}
	if sum.AbsentDays != 25 {
		t.Fatalf("expected 25 absent days, got %d", sum.AbsentDays)
	}
}

func TestSummarizeTwentyFullDays(t *testing.T) {
	var records []Record
	added := 0
	for day := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC); added < 20; day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Sunday {
			continue
		}
		records = append(records, Record{
			EmployeeID: "emp-1",
			Date:       day.Format(DateLayout),
			CheckIn:    ptr("09:00"),
			CheckOut:   ptr("18:00"),
		})
		added++
	}

	sum := Summarize(records, "emp-1", september)
	if sum.PresentDays != 20 {
		t.Fatalf("expected 20 present days, got %d", sum.PresentDays)
	}
	if sum.AbsentDays != 6 {
		t.Fatalf("expected 6 absent days, got %d", sum.AbsentDays)
	}
}

func TestSummarizeAbsentFloor(t *testing.T) {
	// Fill every non-Sunday of May 2024: 27 full days against a capped
	// denominator of 26 must still floor absences at zero.
	var records []Record
	for day := 1; day <= 31; day++ {
		date := time.Date(2024, time.May, day, 0, 0, 0, 0, time.UTC)
		if date.Weekday() == time.Sunday {
			continue
		}
		records = append(records, Record{
			EmployeeID: "emp-1",
			Date:       fmt.Sprintf("2024-05-%02d", day),
			CheckIn:    ptr("09:00"),
			CheckOut:   ptr("18:00"),
		})
	}

	sum := Summarize(records, "emp-1", may)
	if sum.PresentDays != 27 {
		t.Fatalf("expected 27 present days, got %d", sum.PresentDays)
	}
	if sum.AbsentDays != 0 {
		t.Fatalf("expected absent days floored at 0, got %d", sum.AbsentDays)
	}
}
