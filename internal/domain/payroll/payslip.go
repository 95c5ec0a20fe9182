package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// RenderPayslip produces the PDF payslip for one computed payroll row.
func RenderPayslip(calc Calculation, ref time.Time) ([]byte, error) {
	period := ref.Format("January 2006")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "A.R Payslip")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", calc.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Designation: %s", calc.Designation))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Pay Period: %s", period))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Attendance")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Working Days: %d", calc.WorkingDays))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Present Days: %d", calc.PresentDays))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Absent Days: %d", calc.AbsentDays))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Basic Salary: Rs. %d", calc.BasicSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Per Day Salary: Rs. %d", calc.PerDaySalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Absence Deduction: Rs. %d", calc.Deduction))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Net Salary: Rs. %d", calc.NetSalary))
	pdf.Ln(12)

	if calc.DegenerateSalary {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 8, "Note: no basic salary on record; contact HR regarding this payslip.")
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 8, fmt.Sprintf("Generated on %s", time.Now().UTC().Format("2006-01-02")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
