package payroll

import (
	"testing"
	"time"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/fine"
)

// September 2025 has exactly 26 non-Sunday days.
var september = time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

func fullDay(employeeID, date string) attendance.Record {
	in, out := "09:00", "17:00"
	return attendance.Record{
		EmployeeID: employeeID,
		Date:       date,
		CheckIn:    &in,
		CheckOut:   &out,
		Status:     attendance.StatusPresent,
	}
}

// septemberWorkdays returns the first n non-Sunday dates of September 2025.
func septemberWorkdays(n int) []string {
	var out []string
	for d := september; len(out) < n; d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Sunday {
			out = append(out, d.Format(attendance.DateLayout))
		}
	}
	return out
}

func TestPerDaySalary(t *testing.T) {
	tests := []struct {
		basic int64
		want  int64
	}{
		{26000, 1000},
		{52000, 2000},
		{25000, 962}, // 961.54 rounds up
		{0, 0},
	}
	for _, tt := range tests {
		if got := PerDaySalary(tt.basic); got != tt.want {
			t.Fatalf("PerDaySalary(%d) = %d, want %d", tt.basic, got, tt.want)
		}
	}
}

func TestComputeFullyAbsent(t *testing.T) {
	emp := employee.Employee{ID: "e1", Name: "Babar Azam", Salary: 26000}
	calc := Compute(emp, nil, september)

	if calc.WorkingDays != 26 || calc.PresentDays != 0 || calc.AbsentDays != 26 {
		t.Fatalf("day counts = %d/%d/%d, want 26/0/26",
			calc.WorkingDays, calc.PresentDays, calc.AbsentDays)
	}
	if calc.PerDaySalary != 1000 || calc.Deduction != 26000 || calc.NetSalary != 0 {
		t.Fatalf("money = perDay %d deduction %d net %d, want 1000/26000/0",
			calc.PerDaySalary, calc.Deduction, calc.NetSalary)
	}
	if calc.DegenerateSalary {
		t.Fatal("a fully deducted positive salary is not degenerate")
	}
}

func TestComputeDegenerateSalary(t *testing.T) {
	for _, salary := range []int64{0, -5000} {
		emp := employee.Employee{ID: "e1", Name: "Babar Azam", Salary: salary}
		calc := Compute(emp, nil, september)
		if !calc.DegenerateSalary {
			t.Fatalf("salary %d should be flagged degenerate", salary)
		}
	}
	// A present employee with no salary on record is still degenerate.
	var records []attendance.Record
	for _, day := range septemberWorkdays(26) {
		records = append(records, fullDay("e1", day))
	}
	calc := Compute(employee.Employee{ID: "e1", Salary: 0}, records, september)
	if !calc.DegenerateSalary {
		t.Fatal("zero salary should be flagged degenerate regardless of attendance")
	}
}

func TestComputePartialMonth(t *testing.T) {
	emp := employee.Employee{ID: "e1", Name: "Sara Ahmed", Salary: 26000}
	var records []attendance.Record
	for _, day := range septemberWorkdays(20) {
		records = append(records, fullDay("e1", day))
	}

	calc := Compute(emp, records, september)
	if calc.PresentDays != 20 || calc.AbsentDays != 6 {
		t.Fatalf("present/absent = %d/%d, want 20/6", calc.PresentDays, calc.AbsentDays)
	}
	if calc.Deduction != 6000 || calc.NetSalary != 20000 {
		t.Fatalf("deduction %d net %d, want 6000/20000", calc.Deduction, calc.NetSalary)
	}
	if calc.DegenerateSalary {
		t.Fatal("a partially paid month is not degenerate")
	}
}

func TestComputeNetNeverNegative(t *testing.T) {
	// 26 absences at a rounded per-day rate can exceed the basic.
	emp := employee.Employee{ID: "e1", Salary: 25000}
	calc := Compute(emp, nil, september)
	if calc.Deduction != 962*26 {
		t.Fatalf("deduction = %d, want %d", calc.Deduction, int64(962*26))
	}
	if calc.NetSalary != 0 {
		t.Fatalf("net = %d, want 0", calc.NetSalary)
	}
}

func TestComputeDesignationFallback(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Digital Commerce Associate", "Digital Commerce Associate"},
		{"Digital Commerce Probationer", "Digital Commerce Probationer"},
		{"Senior Manager", DefaultDesignation},
		{"", DefaultDesignation},
	}
	for _, tt := range tests {
		emp := employee.Employee{ID: "e1", Designation: tt.in, Salary: 26000}
		if got := Compute(emp, nil, september).Designation; got != tt.want {
			t.Fatalf("designation %q normalized to %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmployeeNetSalary(t *testing.T) {
	fines := []fine.Fine{
		{EmployeeID: "e1", Amount: 500, Status: fine.StatusUnpaid},
		{EmployeeID: "e1", Amount: 300, Status: fine.StatusPaid},
		{EmployeeID: "e2", Amount: 9999, Status: fine.StatusUnpaid},
	}
	if got := EmployeeNetSalary(26000, fines, "e1"); got != 25500 {
		t.Fatalf("EmployeeNetSalary = %d, want 25500", got)
	}
	// Not clamped: fines beyond the basic go negative.
	if got := EmployeeNetSalary(5000, fines, "e2"); got != -4999 {
		t.Fatalf("EmployeeNetSalary = %d, want -4999", got)
	}
}
