package attendance

import "time"

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusLate    = "Late"

	MethodManual = "Manual"
	MethodAuto   = "Auto"

	// DateLayout is the wire and storage format for attendance dates.
	DateLayout = "2006-01-02"
	// ClockLayout is the wire format for check-in/out times.
	ClockLayout = "15:04"
)

type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Record is one employee-day. CheckIn/CheckOut are nil until the matching
// action happens; a day only counts as present for payroll when both are
// set.
type Record struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	Date         string    `json:"date"`
	CheckIn      *string   `json:"checkIn,omitempty"`
	CheckOut     *string   `json:"checkOut,omitempty"`
	Status       string    `json:"status"`
	Method       string    `json:"method"`
	Location     *Location `json:"location,omitempty"`
	WorkingHours *float64  `json:"workingHours,omitempty"`
	IsLate       bool      `json:"isLate"`
	IsEarlyOut   bool      `json:"isEarlyOut"`
}

// UpsertParams is an administrative write keyed on (employeeID, date).
type UpsertParams struct {
	EmployeeID string
	Date       string
	CheckIn    *string
	CheckOut   *string
	Status     string
	Method     string
	Location   *Location
}

type Filter struct {
	EmployeeID string
	Date       string
}

// Summary is the month attendance roll-up consumed by payroll.
type Summary struct {
	WorkingDays int `json:"workingDays"`
	PresentDays int `json:"presentDays"`
	AbsentDays  int `json:"absentDays"`
}

func timeOfDay(t time.Time) string {
	return t.Format(ClockLayout)
}
