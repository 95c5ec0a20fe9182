package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PermissionStore persists the module grants assigned to leads. Admins
// hold every module implicitly and are never stored here.
type PermissionStore struct {
	DB *pgxpool.Pool
}

func NewPermissionStore(db *pgxpool.Pool) *PermissionStore {
	return &PermissionStore{DB: db}
}

// Grants returns the module keys a lead may access. A lead with no row
// has no grants.
func (s *PermissionStore) Grants(ctx context.Context, leadID string) ([]string, error) {
	var modules []string
	err := s.DB.QueryRow(ctx, "SELECT modules FROM lead_permissions WHERE lead_id = $1", leadID).Scan(&modules)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return modules, nil
}

func (s *PermissionStore) SetGrants(ctx context.Context, leadID string, modules []string) error {
	if modules == nil {
		modules = []string{}
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO lead_permissions (lead_id, modules, updated_at)
    VALUES ($1, $2, now())
    ON CONFLICT (lead_id) DO UPDATE SET modules = EXCLUDED.modules, updated_at = now()`,
		leadID, modules)
	return err
}

// AllGrants returns every lead's grants keyed by lead id.
func (s *PermissionStore) AllGrants(ctx context.Context) (map[string][]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT lead_id, modules FROM lead_permissions")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]string{}
	for rows.Next() {
		var leadID string
		var modules []string
		if err := rows.Scan(&leadID, &modules); err != nil {
			return nil, err
		}
		out[leadID] = modules
	}
	return out, rows.Err()
}

// Allowed reports whether a user can reach a module. Admins always can;
// leads need a grant; employees only see their own self-service pages,
// which are not module gated.
func Allowed(role string, grants []string, module string) bool {
	if role == RoleAdmin {
		return true
	}
	if role != RoleLead {
		return false
	}
	for _, m := range grants {
		if m == module {
			return true
		}
	}
	return false
}
