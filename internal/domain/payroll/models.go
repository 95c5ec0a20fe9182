package payroll

// Calculation is one employee's computed payroll row for a month.
type Calculation struct {
	EmployeeID   string `json:"employeeId"`
	Name         string `json:"name"`
	Designation  string `json:"designation"`
	WorkingDays  int    `json:"workingDays"`
	PresentDays  int    `json:"presentDays"`
	AbsentDays   int    `json:"absentDays"`
	BasicSalary  int64  `json:"basicSalary"`
	PerDaySalary int64  `json:"perDaySalary"`
	Deduction    int64  `json:"deduction"`
	NetSalary    int64  `json:"netSalary"`
	// DegenerateSalary flags an employee whose basic salary is zero or
	// negative, so the computed row carries no real pay.
	DegenerateSalary bool `json:"degenerateSalary"`
}

// Status is the stored payment state for one employee-month.
type Status struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employeeId"`
	Month       string `json:"month"`
	Year        string `json:"year"`
	Status      string `json:"status"`
	BaseSalary  int64  `json:"baseSalary"`
	Deductions  int64  `json:"deductions"`
	NetSalary   int64  `json:"netSalary"`
	ProcessedAt string `json:"processedAt"`
}

// ProcessResult reports a bulk payroll run: how many rows were marked
// Paid and which employees failed.
type ProcessResult struct {
	Processed int      `json:"processed"`
	FailedIDs []string `json:"failedIds,omitempty"`
}
