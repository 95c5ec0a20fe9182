package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/config"
)

// Seed ensures the default admin account and baseline settings exist.
// It is idempotent: an existing admin short-circuits the whole run,
// so restarted deployments never duplicate data.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE role = $1", auth.RoleAdmin).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO employees (employee_code, name, username, password_hash, role, status, allowed_modules, joining_date)
    VALUES ($1, $2, $3, $4, $5, 'active', $6, $7::date)`,
		"ADMIN-001", cfg.SeedAdminName, cfg.SeedAdminUsername, hash,
		auth.RoleAdmin, auth.DefaultModules[auth.RoleAdmin], time.Now().UTC().Format("2006-01-02"))
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO settings (id) VALUES ('settings') ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return err
	}

	if cfg.SeedSampleData {
		return seedSampleEmployees(ctx, pool)
	}
	return nil
}

func seedSampleEmployees(ctx context.Context, pool *pgxpool.Pool) error {
	samples := []struct {
		code, name, username, designation string
		salary                            int64
	}{
		{"EMP-001", "Babar Azam", "babar.azam", "Digital Commerce Associate", 52000},
		{"EMP-002", "Sara Ahmed", "sara.ahmed", "Digital Commerce Trainee", 26000},
	}
	hash, err := auth.HashPassword("employee123")
	if err != nil {
		return err
	}
	for _, emp := range samples {
		_, err := pool.Exec(ctx, `
      INSERT INTO employees (employee_code, name, username, password_hash, designation, salary, role, status, allowed_modules, joining_date)
      VALUES ($1, $2, $3, $4, $5, $6, $7, 'active', $8, $9::date)
      ON CONFLICT (username) DO NOTHING`,
			emp.code, emp.name, emp.username, hash, emp.designation, emp.salary,
			auth.RoleEmployee, auth.DefaultModules[auth.RoleEmployee], time.Now().UTC().Format("2006-01-02"))
		if err != nil {
			return err
		}
	}
	return nil
}
