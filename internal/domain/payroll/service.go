package payroll

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/fine"
)

var ErrNotFound = errors.New("payroll record not found")

type Service struct {
	DB         *pgxpool.Pool
	Employees  *employee.Store
	Attendance *attendance.Service
	Fines      *fine.Store
	Logger     *slog.Logger
}

func NewService(db *pgxpool.Pool, employees *employee.Store, att *attendance.Service, fines *fine.Store, logger *slog.Logger) *Service {
	return &Service{DB: db, Employees: employees, Attendance: att, Fines: fines, Logger: logger}
}

const statusColumns = `
    id, employee_id, month, year, status, base_salary, deductions, net_salary,
    to_char(processed_at,'YYYY-MM-DD"T"HH24:MI:SS"Z"')`

func scanStatus(row pgx.Row) (Status, error) {
	var st Status
	err := row.Scan(&st.ID, &st.EmployeeID, &st.Month, &st.Year, &st.Status,
		&st.BaseSalary, &st.Deductions, &st.NetSalary, &st.ProcessedAt)
	return st, err
}

// Sheet computes the live payroll rows for every employee for the month
// containing ref.
func (s *Service) Sheet(ctx context.Context, ref time.Time) ([]Calculation, error) {
	employees, err := s.Employees.ListByRole(ctx, auth.RoleEmployee)
	if err != nil {
		return nil, err
	}
	records, err := s.Attendance.ListMonth(ctx, ref)
	if err != nil {
		return nil, err
	}

	out := make([]Calculation, 0, len(employees))
	for _, emp := range employees {
		out = append(out, Compute(emp, records, ref))
	}
	return out, nil
}

// StatusList returns the stored payment states for a month, keyed for a
// sheet merge on the caller's side.
func (s *Service) StatusList(ctx context.Context, month, year string) ([]Status, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT"+statusColumns+" FROM payroll_status WHERE month = $1 AND year = $2 ORDER BY employee_id",
		month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Status
	for rows.Next() {
		st, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Service) StatusFor(ctx context.Context, employeeID, month, year string) (Status, error) {
	st, err := scanStatus(s.DB.QueryRow(ctx,
		"SELECT"+statusColumns+" FROM payroll_status WHERE employee_id = $1 AND month = $2 AND year = $3",
		employeeID, month, year))
	if errors.Is(err, pgx.ErrNoRows) {
		return Status{}, ErrNotFound
	}
	return st, err
}

// Process runs the month's payroll: every employee gets an unconditional
// Paid upsert on the (employee, month, year) key, so re-running a month
// is safe. The stored deduction is the employee's outstanding fine total
// at processing time; the fines themselves stay Unpaid until settled
// through the fine lifecycle. Employees whose row failed are reported,
// not fatal.
func (s *Service) Process(ctx context.Context, ref time.Time) (ProcessResult, error) {
	employees, err := s.Employees.ListByRole(ctx, auth.RoleEmployee)
	if err != nil {
		return ProcessResult{}, err
	}

	month := ref.Format("January")
	year := ref.Format("2006")

	var result ProcessResult
	for _, emp := range employees {
		unpaid, err := s.Fines.UnpaidTotalFor(ctx, emp.ID)
		if err != nil {
			s.Logger.Error("payroll fine lookup failed", "employee_id", emp.ID, "error", err)
			result.FailedIDs = append(result.FailedIDs, emp.ID)
			continue
		}
		net := emp.Salary - unpaid
		_, err = s.DB.Exec(ctx, `
      INSERT INTO payroll_status (employee_id, month, year, status, base_salary, deductions, net_salary, processed_at)
      VALUES ($1, $2, $3, $4, $5, $6, $7, now())
      ON CONFLICT (employee_id, month, year) DO UPDATE SET
        status = EXCLUDED.status,
        base_salary = EXCLUDED.base_salary,
        deductions = EXCLUDED.deductions,
        net_salary = EXCLUDED.net_salary,
        processed_at = EXCLUDED.processed_at`,
			emp.ID, month, year, StatusPaid, emp.Salary, unpaid, net)
		if err != nil {
			s.Logger.Error("payroll upsert failed", "employee_id", emp.ID, "error", err)
			result.FailedIDs = append(result.FailedIDs, emp.ID)
			continue
		}
		result.Processed++
	}
	return result, nil
}
