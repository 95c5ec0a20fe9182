package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound        = errors.New("leave request not found")
	ErrAlreadyResolved = errors.New("leave request already resolved")
	ErrInvalidStatus   = errors.New("invalid leave status")
)

type Service struct {
	DB *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

const leaveColumns = `
    id, employee_id, employee_name, type, to_char(start_date,'YYYY-MM-DD'),
    to_char(end_date,'YYYY-MM-DD'), reason, status, to_char(request_date,'YYYY-MM-DD')`

func scanLeave(row pgx.Row) (Leave, error) {
	var l Leave
	err := row.Scan(&l.ID, &l.EmployeeID, &l.EmployeeName, &l.Type, &l.StartDate,
		&l.EndDate, &l.Reason, &l.Status, &l.RequestDate)
	return l, err
}

func (s *Service) List(ctx context.Context, employeeID string) ([]Leave, error) {
	query := "SELECT" + leaveColumns + " FROM leaves"
	args := []any{}
	if employeeID != "" {
		args = append(args, employeeID)
		query += " WHERE employee_id = $1"
	}
	query += " ORDER BY request_date DESC, id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Leave
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Service) ByID(ctx context.Context, id string) (Leave, error) {
	l, err := scanLeave(s.DB.QueryRow(ctx, "SELECT"+leaveColumns+" FROM leaves WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Leave{}, ErrNotFound
	}
	return l, err
}

func (s *Service) Create(ctx context.Context, params CreateParams) (Leave, error) {
	l, err := scanLeave(s.DB.QueryRow(ctx, `
    INSERT INTO leaves (employee_id, employee_name, type, start_date, end_date, reason, status, request_date)
    VALUES ($1, $2, $3, $4::date, $5::date, $6, $7, $8::date)
    RETURNING`+leaveColumns,
		params.EmployeeID, params.EmployeeName, params.Type, params.StartDate, params.EndDate,
		params.Reason, StatusPending, time.Now().UTC().Format("2006-01-02")))
	return l, err
}

// UpdateStatus moves a pending request to Approved or Rejected. Resolved
// requests are terminal and cannot be re-decided.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (Leave, error) {
	if status != StatusApproved && status != StatusRejected {
		return Leave{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Leave{}, err
	}
	defer tx.Rollback(ctx)

	var current string
	err = tx.QueryRow(ctx, "SELECT status FROM leaves WHERE id = $1 FOR UPDATE", id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return Leave{}, ErrNotFound
	}
	if err != nil {
		return Leave{}, err
	}
	if current != StatusPending {
		return Leave{}, ErrAlreadyResolved
	}

	l, err := scanLeave(tx.QueryRow(ctx,
		"UPDATE leaves SET status = $2 WHERE id = $1 RETURNING"+leaveColumns, id, status))
	if err != nil {
		return Leave{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Leave{}, err
	}
	return l, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM leaves WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// OnLeaveToday returns the number of distinct employees with an approved
// leave covering the given day.
func (s *Service) OnLeaveToday(ctx context.Context, day time.Time) (int, error) {
	var n int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(DISTINCT employee_id) FROM leaves
    WHERE status = $1 AND start_date <= $2::date AND end_date >= $2::date`,
		StatusApproved, day.Format("2006-01-02")).Scan(&n)
	return n, err
}
