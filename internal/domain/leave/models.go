package leave

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const (
	TypeCasual = "Casual"
	TypeSick   = "Sick"
	TypeAnnual = "Annual"
	TypeUnpaid = "Unpaid"
)

type Leave struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	Type         string `json:"type"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Reason       string `json:"reason"`
	Status       string `json:"status"`
	RequestDate  string `json:"requestDate"`
}

type CreateParams struct {
	EmployeeID   string
	EmployeeName string
	Type         string
	StartDate    string
	EndDate      string
	Reason       string
}
