package fine

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound    = errors.New("fine not found")
	ErrAlreadyPaid = errors.New("fine already paid")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const fineColumns = `id, employee_id, type, amount, reason, to_char(date,'YYYY-MM-DD'), status`

func scanFine(row pgx.Row) (Fine, error) {
	var f Fine
	err := row.Scan(&f.ID, &f.EmployeeID, &f.Type, &f.Amount, &f.Reason, &f.Date, &f.Status)
	return f, err
}

func (s *Store) List(ctx context.Context, employeeID string) ([]Fine, error) {
	query := "SELECT " + fineColumns + " FROM fines"
	args := []any{}
	if employeeID != "" {
		args = append(args, employeeID)
		query += " WHERE employee_id = $1"
	}
	query += " ORDER BY date DESC, id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Fine
	for rows.Next() {
		f, err := scanFine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) ByID(ctx context.Context, id string) (Fine, error) {
	f, err := scanFine(s.DB.QueryRow(ctx, "SELECT "+fineColumns+" FROM fines WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Fine{}, ErrNotFound
	}
	return f, err
}

// Create records a new fine. Fines always start Unpaid.
func (s *Store) Create(ctx context.Context, params CreateParams) (Fine, error) {
	f, err := scanFine(s.DB.QueryRow(ctx, `
    INSERT INTO fines (employee_id, type, amount, reason, date, status)
    VALUES ($1, $2, $3, $4, $5::date, $6)
    RETURNING `+fineColumns,
		params.EmployeeID, params.Type, params.Amount, params.Reason, params.Date, StatusUnpaid))
	return f, err
}

// Pay marks a fine settled. Paying twice is rejected.
func (s *Store) Pay(ctx context.Context, id string) (Fine, error) {
	f, err := s.ByID(ctx, id)
	if err != nil {
		return Fine{}, err
	}
	if f.Status == StatusPaid {
		return Fine{}, ErrAlreadyPaid
	}
	return scanFine(s.DB.QueryRow(ctx,
		"UPDATE fines SET status = $2 WHERE id = $1 RETURNING "+fineColumns, id, StatusPaid))
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM fines WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UnpaidTotalFor sums the outstanding fines charged to one employee
// straight from the database.
func (s *Store) UnpaidTotalFor(ctx context.Context, employeeID string) (int64, error) {
	var total int64
	err := s.DB.QueryRow(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM fines WHERE employee_id = $1 AND status = $2",
		employeeID, StatusUnpaid).Scan(&total)
	return total, err
}

// OutstandingTotal sums all unpaid fines across the organization.
func (s *Store) OutstandingTotal(ctx context.Context) (int64, error) {
	var total int64
	err := s.DB.QueryRow(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM fines WHERE status = $1", StatusUnpaid).Scan(&total)
	return total, err
}
