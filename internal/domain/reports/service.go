package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/appeal"
	"hrms/internal/domain/attendance"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/fine"
	"hrms/internal/domain/leave"
)

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalEmployees  int   `json:"totalEmployees"`
	PresentToday    int   `json:"presentToday"`
	AbsentToday     int   `json:"absentToday"`
	OnLeaveToday    int   `json:"onLeaveToday"`
	PendingLeaves   int   `json:"pendingLeaves"`
	PendingAppeals  int   `json:"pendingAppeals"`
	UnpaidFines     int64 `json:"unpaidFines"`
	MonthlyPayroll  int64 `json:"monthlyPayroll"`
	LateToday       int   `json:"lateToday"`
}

type Service struct {
	DB *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

// Dashboard assembles the stats for the day containing now. Present
// requires a check-in; absent is everyone active without one. The
// monthly payroll figure sums active employees' basic salaries.
func (s *Service) Dashboard(ctx context.Context, now time.Time) (DashboardStats, error) {
	var stats DashboardStats
	today := now.Format(attendance.DateLayout)

	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM employees WHERE role = $1 AND status = $2",
		auth.RoleEmployee, employee.StatusActive).Scan(&stats.TotalEmployees)
	if err != nil {
		return DashboardStats{}, err
	}

	err = s.DB.QueryRow(ctx, `
    SELECT
      COUNT(1) FILTER (WHERE check_in IS NOT NULL),
      COUNT(1) FILTER (WHERE is_late)
    FROM attendance WHERE date = $1::date`, today).Scan(&stats.PresentToday, &stats.LateToday)
	if err != nil {
		return DashboardStats{}, err
	}
	stats.AbsentToday = stats.TotalEmployees - stats.PresentToday
	if stats.AbsentToday < 0 {
		stats.AbsentToday = 0
	}

	err = s.DB.QueryRow(ctx, `
    SELECT COUNT(DISTINCT employee_id) FROM leaves
    WHERE status = $1 AND start_date <= $2::date AND end_date >= $2::date`,
		leave.StatusApproved, today).Scan(&stats.OnLeaveToday)
	if err != nil {
		return DashboardStats{}, err
	}

	err = s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leaves WHERE status = $1",
		leave.StatusPending).Scan(&stats.PendingLeaves)
	if err != nil {
		return DashboardStats{}, err
	}

	err = s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM appeals WHERE status = $1",
		appeal.StatusPending).Scan(&stats.PendingAppeals)
	if err != nil {
		return DashboardStats{}, err
	}

	err = s.DB.QueryRow(ctx, "SELECT COALESCE(SUM(amount),0) FROM fines WHERE status = $1",
		fine.StatusUnpaid).Scan(&stats.UnpaidFines)
	if err != nil {
		return DashboardStats{}, err
	}

	err = s.DB.QueryRow(ctx,
		"SELECT COALESCE(SUM(salary),0) FROM employees WHERE role = $1 AND status = $2",
		auth.RoleEmployee, employee.StatusActive).Scan(&stats.MonthlyPayroll)
	if err != nil {
		return DashboardStats{}, err
	}

	return stats, nil
}
