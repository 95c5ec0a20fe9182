package settings

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const settingsRowID = "settings"

// Settings is the single office-wide configuration document. Check-in
// late detection and check-out early-out detection compare against the
// office start/end times.
type Settings struct {
	OfficeStartTime string          `json:"officeStartTime"`
	OfficeEndTime   string          `json:"officeEndTime"`
	LateFineAmount  int64           `json:"lateFineAmount"`
	HalfDayHours    float64         `json:"halfDayHours"`
	LeavePolicy     json.RawMessage `json:"leavePolicy"`
	SalarySettings  json.RawMessage `json:"salarySettings"`
}

func Defaults() Settings {
	return Settings{
		OfficeStartTime: "09:00",
		OfficeEndTime:   "18:00",
		LateFineAmount:  100,
		HalfDayHours:    4,
		LeavePolicy:     json.RawMessage(`{}`),
		SalarySettings:  json.RawMessage(`{}`),
	}
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Get(ctx context.Context) (Settings, error) {
	var out Settings
	err := s.DB.QueryRow(ctx, `
    SELECT office_start_time, office_end_time, late_fine_amount, half_day_hours, leave_policy, salary_settings
    FROM settings
    WHERE id = $1
  `, settingsRowID).Scan(&out.OfficeStartTime, &out.OfficeEndTime, &out.LateFineAmount, &out.HalfDayHours, &out.LeavePolicy, &out.SalarySettings)
	if errors.Is(err, pgx.ErrNoRows) {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, in Settings) (Settings, error) {
	if len(in.LeavePolicy) == 0 {
		in.LeavePolicy = json.RawMessage(`{}`)
	}
	if len(in.SalarySettings) == 0 {
		in.SalarySettings = json.RawMessage(`{}`)
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO settings (id, office_start_time, office_end_time, late_fine_amount, half_day_hours, leave_policy, salary_settings)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    ON CONFLICT (id) DO UPDATE SET
      office_start_time = EXCLUDED.office_start_time,
      office_end_time = EXCLUDED.office_end_time,
      late_fine_amount = EXCLUDED.late_fine_amount,
      half_day_hours = EXCLUDED.half_day_hours,
      leave_policy = EXCLUDED.leave_policy,
      salary_settings = EXCLUDED.salary_settings
  `, settingsRowID, in.OfficeStartTime, in.OfficeEndTime, in.LateFineAmount, in.HalfDayHours, in.LeavePolicy, in.SalarySettings)
	if err != nil {
		return Settings{}, err
	}
	return s.Get(ctx)
}
