package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("employee not found")
	ErrUsernameExists = errors.New("username already exists")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const selectColumns = `
    id, COALESCE(employee_code,''), name, username, COALESCE(email,''), COALESCE(phone,''),
    COALESCE(department,''), designation, salary, role, status,
    COALESCE(to_char(joining_date,'YYYY-MM-DD'),''), COALESCE(profile_pic,''),
    COALESCE(lead_id::text,''), allowed_modules, created_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(&emp.ID, &emp.EmployeeCode, &emp.Name, &emp.Username, &emp.Email, &emp.Phone,
		&emp.Department, &emp.Designation, &emp.Salary, &emp.Role, &emp.Status,
		&emp.JoiningDate, &emp.ProfilePic, &emp.LeadID, &emp.AllowedModules, &emp.CreatedAt)
	return emp, err
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+selectColumns+" FROM employees ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) ListByRole(ctx context.Context, role string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+selectColumns+" FROM employees WHERE role = $1 ORDER BY created_at", role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) ByID(ctx context.Context, id string) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, "SELECT"+selectColumns+" FROM employees WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return emp, err
}

func (s *Store) ByUsername(ctx context.Context, username string) (Credentials, error) {
	var creds Credentials
	err := s.DB.QueryRow(ctx, "SELECT"+selectColumns+", password_hash FROM employees WHERE username = $1", username).Scan(
		&creds.ID, &creds.EmployeeCode, &creds.Name, &creds.Username, &creds.Email, &creds.Phone,
		&creds.Department, &creds.Designation, &creds.Salary, &creds.Role, &creds.Status,
		&creds.JoiningDate, &creds.ProfilePic, &creds.LeadID, &creds.AllowedModules, &creds.CreatedAt,
		&creds.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credentials{}, ErrNotFound
	}
	return creds, err
}

func (s *Store) Create(ctx context.Context, params CreateParams) (string, error) {
	var exists bool
	if err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM employees WHERE username = $1)", params.Username).Scan(&exists); err != nil {
		return "", err
	}
	if exists {
		return "", ErrUsernameExists
	}

	modules := params.AllowedModules
	if modules == nil {
		modules = []string{}
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_code, name, username, password_hash, email, phone, department,
                           designation, salary, role, status, joining_date, profile_pic, lead_id, allowed_modules)
    VALUES (NULLIF($1,''), $2, $3, $4, NULLIF($5,''), NULLIF($6,''), NULLIF($7,''),
            $8, $9, $10, $11, NULLIF($12,'')::date, NULLIF($13,''), NULLIF($14,'')::uuid, $15)
    RETURNING id
  `, params.EmployeeCode, params.Name, params.Username, params.PasswordHash, params.Email, params.Phone,
		params.Department, params.Designation, params.Salary, params.Role, params.Status,
		params.JoiningDate, params.ProfilePic, params.LeadID, modules).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id string, params UpdateParams) (Employee, error) {
	set := make([]string, 0, 8)
	args := []any{id}

	add := func(expr string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf(expr, len(args)))
	}

	if params.EmployeeCode != nil {
		add("employee_code = NULLIF($%d,'')", *params.EmployeeCode)
	}
	if params.Name != nil {
		add("name = $%d", *params.Name)
	}
	if params.Username != nil {
		add("username = $%d", *params.Username)
	}
	if params.PasswordHash != nil {
		add("password_hash = $%d", *params.PasswordHash)
	}
	if params.Email != nil {
		add("email = NULLIF($%d,'')", *params.Email)
	}
	if params.Phone != nil {
		add("phone = NULLIF($%d,'')", *params.Phone)
	}
	if params.Department != nil {
		add("department = NULLIF($%d,'')", *params.Department)
	}
	if params.Designation != nil {
		add("designation = $%d", *params.Designation)
	}
	if params.Salary != nil {
		add("salary = $%d", *params.Salary)
	}
	if params.Role != nil {
		add("role = $%d", *params.Role)
	}
	if params.Status != nil {
		add("status = $%d", *params.Status)
	}
	if params.JoiningDate != nil {
		add("joining_date = NULLIF($%d,'')::date", *params.JoiningDate)
	}
	if params.ProfilePic != nil {
		add("profile_pic = NULLIF($%d,'')", *params.ProfilePic)
	}
	if params.LeadID != nil {
		add("lead_id = NULLIF($%d,'')::uuid", *params.LeadID)
	}
	if params.AllowedModules != nil {
		add("allowed_modules = $%d", *params.AllowedModules)
	}

	if len(set) > 0 {
		query := "UPDATE employees SET " + joinSet(set) + " WHERE id = $1"
		tag, err := s.DB.Exec(ctx, query, args...)
		if err != nil {
			return Employee{}, err
		}
		if tag.RowsAffected() == 0 {
			return Employee{}, ErrNotFound
		}
	}
	return s.ByID(ctx, id)
}

func (s *Store) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE employees SET password_hash = $2 WHERE id = $1", id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the employee record only; historical attendance, fine,
// leave and appeal rows keep referencing the id.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func joinSet(parts []string) string {
	out := parts[0]
	for _, part := range parts[1:] {
		out += ", " + part
	}
	return out
}
