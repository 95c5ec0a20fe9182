package fine

// Totals aggregates a set of fines by payment status.
type Totals struct {
	Unpaid int64 `json:"unpaid"`
	Paid   int64 `json:"paid"`
}

// UnpaidTotal sums the outstanding fine amounts charged to one employee.
func UnpaidTotal(fines []Fine, employeeID string) int64 {
	var total int64
	for _, f := range fines {
		if f.EmployeeID == employeeID && f.Status == StatusUnpaid {
			total += f.Amount
		}
	}
	return total
}

// PaidTotal sums the settled fine amounts charged to one employee.
func PaidTotal(fines []Fine, employeeID string) int64 {
	var total int64
	for _, f := range fines {
		if f.EmployeeID == employeeID && f.Status == StatusPaid {
			total += f.Amount
		}
	}
	return total
}

// Aggregate totals all fines across the organization.
func Aggregate(fines []Fine) Totals {
	var t Totals
	for _, f := range fines {
		switch f.Status {
		case StatusUnpaid:
			t.Unpaid += f.Amount
		case StatusPaid:
			t.Paid += f.Amount
		}
	}
	return t
}
