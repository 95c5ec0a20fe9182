package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNoCheckIn         = errors.New("no check-in record found")
	ErrAlreadyCheckedOut = errors.New("already checked out")
)

type Service struct {
	DB *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

const recordColumns = `
    id, employee_id, to_char(date,'YYYY-MM-DD'), check_in, check_out, status, method,
    location_lat, location_lng, location_address, working_hours, is_late, is_early_out`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	var lat, lng *float64
	var address *string
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status, &rec.Method,
		&lat, &lng, &address, &rec.WorkingHours, &rec.IsLate, &rec.IsEarlyOut)
	if err != nil {
		return Record{}, err
	}
	if lat != nil && lng != nil {
		rec.Location = &Location{Lat: *lat, Lng: *lng}
		if address != nil {
			rec.Location.Address = *address
		}
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Record, error) {
	query := "SELECT" + recordColumns + " FROM attendance WHERE 1=1"
	args := []any{}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		query += fmt.Sprintf(" AND date = $%d::date", len(args))
	}
	query += " ORDER BY date DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListMonth returns every record dated inside the month containing ref,
// across all employees, for the payroll summarizer.
func (s *Service) ListMonth(ctx context.Context, ref time.Time) ([]Record, error) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	rows, err := s.DB.Query(ctx,
		"SELECT"+recordColumns+" FROM attendance WHERE date >= $1 AND date < $2 ORDER BY date",
		start.Format(DateLayout), end.Format(DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Service) ByEmployeeAndDate(ctx context.Context, employeeID, date string) (Record, bool, error) {
	rec, err := scanRecord(s.DB.QueryRow(ctx,
		"SELECT"+recordColumns+" FROM attendance WHERE employee_id = $1 AND date = $2::date", employeeID, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// Upsert writes against the (employee_id, date) natural key: an existing
// row for that day is updated, never duplicated.
func (s *Service) Upsert(ctx context.Context, params UpsertParams) (Record, error) {
	var lat, lng *float64
	var address *string
	if params.Location != nil {
		lat, lng = &params.Location.Lat, &params.Location.Lng
		if params.Location.Address != "" {
			address = &params.Location.Address
		}
	}
	rec, err := scanRecord(s.DB.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, date, check_in, check_out, status, method, location_lat, location_lng, location_address)
    VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9)
    ON CONFLICT (employee_id, date) DO UPDATE SET
      check_in = COALESCE(EXCLUDED.check_in, attendance.check_in),
      check_out = COALESCE(EXCLUDED.check_out, attendance.check_out),
      status = EXCLUDED.status,
      method = EXCLUDED.method,
      location_lat = COALESCE(EXCLUDED.location_lat, attendance.location_lat),
      location_lng = COALESCE(EXCLUDED.location_lng, attendance.location_lng),
      location_address = COALESCE(EXCLUDED.location_address, attendance.location_address)
    RETURNING`+recordColumns,
		params.EmployeeID, params.Date, params.CheckIn, params.CheckOut, params.Status, params.Method, lat, lng, address))
	return rec, err
}

// CheckIn creates today's record for the employee, marking it Late when
// the clock is past the office start time. A second check-in on the same
// day is rejected.
func (s *Service) CheckIn(ctx context.Context, employeeID, method string, location *Location, now time.Time, officeStart string) (Record, error) {
	today := now.Format(DateLayout)
	clock := timeOfDay(now)

	if _, exists, err := s.ByEmployeeAndDate(ctx, employeeID, today); err != nil {
		return Record{}, err
	} else if exists {
		return Record{}, ErrAlreadyCheckedIn
	}

	status := StatusPresent
	isLate := officeStart != "" && clock > officeStart
	if isLate {
		status = StatusLate
	}
	if method == "" {
		method = MethodManual
	}

	var lat, lng *float64
	var address *string
	if location != nil {
		lat, lng = &location.Lat, &location.Lng
		if location.Address != "" {
			address = &location.Address
		}
	}

	rec, err := scanRecord(s.DB.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, date, check_in, status, method, location_lat, location_lng, location_address, is_late)
    VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9)
    ON CONFLICT (employee_id, date) DO NOTHING
    RETURNING`+recordColumns,
		employeeID, today, clock, status, method, lat, lng, address, isLate))
	if errors.Is(err, pgx.ErrNoRows) {
		// Lost a race with a concurrent check-in for the same day.
		return Record{}, ErrAlreadyCheckedIn
	}
	return rec, err
}

// CheckOut completes today's record, computing worked hours and flagging
// an early departure against the office end time.
func (s *Service) CheckOut(ctx context.Context, employeeID string, now time.Time, officeEnd string) (Record, error) {
	today := now.Format(DateLayout)
	clock := timeOfDay(now)

	rec, exists, err := s.ByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return Record{}, err
	}
	if !exists || !hasValue(rec.CheckIn) {
		return Record{}, ErrNoCheckIn
	}
	if hasValue(rec.CheckOut) {
		return Record{}, ErrAlreadyCheckedOut
	}

	hours := clockHoursBetween(*rec.CheckIn, clock)
	isEarly := officeEnd != "" && clock < officeEnd

	out, err := scanRecord(s.DB.QueryRow(ctx, `
    UPDATE attendance
    SET check_out = $3, working_hours = $4, is_early_out = $5
    WHERE employee_id = $1 AND date = $2::date
    RETURNING`+recordColumns,
		employeeID, today, clock, hours, isEarly))
	return out, err
}

func clockHoursBetween(from, to string) float64 {
	start, err1 := time.Parse(ClockLayout, from)
	end, err2 := time.Parse(ClockLayout, to)
	if err1 != nil || err2 != nil {
		return 0
	}
	return end.Sub(start).Hours()
}
