package payroll

import (
	"math"
	"time"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/fine"
)

// PerDaySalary divides the monthly basic by the standard 26-day month.
// The divisor is fixed regardless of how many working days the calendar
// actually yields.
func PerDaySalary(basic int64) int64 {
	return int64(math.Round(float64(basic) / float64(attendance.StandardMonthDays)))
}

// Compute derives one employee's payroll row for the month containing
// ref from their attendance records. Each absent working day deducts one
// per-day salary; the net never drops below zero.
func Compute(emp employee.Employee, records []attendance.Record, ref time.Time) Calculation {
	summary := attendance.Summarize(records, emp.ID, ref)
	perDay := PerDaySalary(emp.Salary)
	deduction := perDay * int64(summary.AbsentDays)
	net := emp.Salary - deduction
	if net < 0 {
		net = 0
	}
	return Calculation{
		EmployeeID:       emp.ID,
		Name:             emp.Name,
		Designation:      NormalizeDesignation(emp.Designation),
		WorkingDays:      summary.WorkingDays,
		PresentDays:      summary.PresentDays,
		AbsentDays:       summary.AbsentDays,
		BasicSalary:      emp.Salary,
		PerDaySalary:     perDay,
		Deduction:        deduction,
		NetSalary:        net,
		DegenerateSalary: emp.Salary <= 0,
	}
}

// EmployeeNetSalary is the self-service view of take-home pay: basic
// minus outstanding fines. Unlike the attendance-based sheet it is not
// floored at zero, so heavy fines can show a negative figure.
func EmployeeNetSalary(basic int64, fines []fine.Fine, employeeID string) int64 {
	return basic - fine.UnpaidTotal(fines, employeeID)
}
