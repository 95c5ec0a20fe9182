package fine

const (
	StatusUnpaid = "Unpaid"
	StatusPaid   = "Paid"
)

const (
	TypeLate       = "Late"
	TypeAbsent     = "Absent"
	TypeMisconduct = "Misconduct"
	TypeOther      = "Other"
)

type Fine struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Type       string `json:"type"`
	Amount     int64  `json:"amount"`
	Reason     string `json:"reason"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

type CreateParams struct {
	EmployeeID string
	Type       string
	Amount     int64
	Reason     string
	Date       string
}
