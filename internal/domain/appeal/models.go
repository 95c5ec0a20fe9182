package appeal

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Type names an appeal category; each category drives its own
// corrective action on approval.
type Type string

const (
	TypeAbsent Type = "Absent"
	TypeLate   Type = "Late"
	TypeFine   Type = "Fine"
	TypeSalary Type = "Salary"
	TypeOther  Type = "Other"
)

type Appeal struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Type         Type    `json:"type"`
	Reason       string  `json:"reason"`
	Message      string  `json:"message"`
	Status       string  `json:"status"`
	Date         *string `json:"date,omitempty"`
	AppealDate   string  `json:"appealDate"`
	RelatedID    *string `json:"relatedId,omitempty"`
}

type CreateParams struct {
	EmployeeID   string
	EmployeeName string
	Type         Type
	Reason       string
	Message      string
	Date         *string
	RelatedID    *string
}

// ValidType reports whether t names a known appeal category.
func ValidType(t Type) bool {
	switch t {
	case TypeAbsent, TypeLate, TypeFine, TypeSalary, TypeOther:
		return true
	}
	return false
}

// ValidDecision reports whether s is a terminal resolution status.
func ValidDecision(s string) bool {
	return s == StatusApproved || s == StatusRejected
}
