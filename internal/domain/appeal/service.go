package appeal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/attendance"
)

// manualCheckIn is the check-in time written when an approved absence
// appeal backfills the attendance record.
const manualCheckIn = "09:00"

type Service struct {
	DB     *pgxpool.Pool
	Logger *slog.Logger
}

func NewService(db *pgxpool.Pool, logger *slog.Logger) *Service {
	return &Service{DB: db, Logger: logger}
}

const appealColumns = `
    id, employee_id, employee_name, type, reason, message, status,
    to_char(date,'YYYY-MM-DD'), to_char(appeal_date,'YYYY-MM-DD'), related_id`

func scanAppeal(row pgx.Row) (Appeal, error) {
	var a Appeal
	err := row.Scan(&a.ID, &a.EmployeeID, &a.EmployeeName, &a.Type, &a.Reason, &a.Message,
		&a.Status, &a.Date, &a.AppealDate, &a.RelatedID)
	return a, err
}

func (s *Service) List(ctx context.Context, employeeID string) ([]Appeal, error) {
	query := "SELECT" + appealColumns + " FROM appeals"
	args := []any{}
	if employeeID != "" {
		args = append(args, employeeID)
		query += " WHERE employee_id = $1"
	}
	query += " ORDER BY appeal_date DESC, created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Appeal
	for rows.Next() {
		a, err := scanAppeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Service) ByID(ctx context.Context, id string) (Appeal, error) {
	a, err := scanAppeal(s.DB.QueryRow(ctx, "SELECT"+appealColumns+" FROM appeals WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Appeal{}, ErrNotFound
	}
	return a, err
}

func (s *Service) Create(ctx context.Context, params CreateParams) (Appeal, error) {
	if !ValidType(params.Type) {
		return Appeal{}, fmt.Errorf("%w: %q", ErrUnknownType, params.Type)
	}
	a, err := scanAppeal(s.DB.QueryRow(ctx, `
    INSERT INTO appeals (employee_id, employee_name, type, reason, message, status, date, related_id)
    VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8)
    RETURNING`+appealColumns,
		params.EmployeeID, params.EmployeeName, params.Type, params.Reason, params.Message,
		StatusPending, params.Date, params.RelatedID))
	return a, err
}

// Resolve decides a pending appeal. The decision's corrective side
// effect and the status change commit in one transaction: either both
// land or neither does. Resolved appeals are terminal, so a repeat
// decision fails without re-applying anything.
func (s *Service) Resolve(ctx context.Context, id, decision string) (Appeal, error) {
	if !ValidDecision(decision) {
		return Appeal{}, fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Appeal{}, err
	}
	defer tx.Rollback(ctx)

	// Row lock serializes concurrent resolutions of the same appeal.
	a, err := scanAppeal(tx.QueryRow(ctx, "SELECT"+appealColumns+" FROM appeals WHERE id = $1 FOR UPDATE", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Appeal{}, ErrNotFound
	}
	if err != nil {
		return Appeal{}, err
	}
	if a.Status != StatusPending {
		return Appeal{}, ErrAlreadyResolved
	}

	if decision == StatusApproved {
		if err := s.applyApproval(ctx, tx, a); err != nil {
			return Appeal{}, err
		}
	}

	a, err = scanAppeal(tx.QueryRow(ctx,
		"UPDATE appeals SET status = $2 WHERE id = $1 RETURNING"+appealColumns, id, decision))
	if err != nil {
		return Appeal{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Appeal{}, err
	}

	s.Logger.Info("appeal resolved", "appeal_id", id, "type", a.Type, "decision", decision)
	return a, nil
}

// applyApproval dispatches the corrective action for an approved appeal
// inside the resolution transaction.
func (s *Service) applyApproval(ctx context.Context, tx pgx.Tx, a Appeal) error {
	switch a.Type {
	case TypeAbsent:
		if a.Date == nil {
			return fmt.Errorf("%w: absence appeal needs a date", ErrMissingRelated)
		}
		// Backfill the day as a manual presence. The record may or may
		// not already exist, so this rides the (employee_id, date) key.
		_, err := tx.Exec(ctx, `
      INSERT INTO attendance (employee_id, date, check_in, status, method)
      VALUES ($1, $2::date, $3, $4, $5)
      ON CONFLICT (employee_id, date) DO UPDATE SET
        status = EXCLUDED.status,
        method = EXCLUDED.method,
        check_in = COALESCE(attendance.check_in, EXCLUDED.check_in)`,
			a.EmployeeID, *a.Date, manualCheckIn, attendance.StatusPresent, attendance.MethodManual)
		return err
	case TypeLate:
		if a.Date == nil {
			return fmt.Errorf("%w: late appeal needs a date", ErrMissingRelated)
		}
		// Clears the late mark; check-in/out times stay as recorded.
		_, err := tx.Exec(ctx, `
      INSERT INTO attendance (employee_id, date, status, is_late)
      VALUES ($1, $2::date, $3, FALSE)
      ON CONFLICT (employee_id, date) DO UPDATE SET
        status = EXCLUDED.status,
        is_late = FALSE`,
			a.EmployeeID, *a.Date, attendance.StatusPresent)
		return err
	case TypeFine:
		// Without a linked fine the approval stands on its own.
		if a.RelatedID == nil {
			return nil
		}
		// A fine waiver removes the charge outright.
		_, err := tx.Exec(ctx, "DELETE FROM fines WHERE id = $1", *a.RelatedID)
		return err
	case TypeSalary, TypeOther:
		// Acknowledged without an automatic correction.
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, a.Type)
	}
}
