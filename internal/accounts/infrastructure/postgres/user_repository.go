package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	accounts "github.com/stiwari2004/numerology/internal/accounts/domain"
)

const defaultUsersTable = "users"

// DBTX abstracts *sql.DB and *sql.Tx.
type DBTX interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// UserRepository is a Postgres implementation for users.
type UserRepository struct {
	db    DBTX
	table string
}

// NewUserRepository constructs a repository.
func NewUserRepository(db DBTX, opts ...UserOption) *UserRepository {
	repo := &UserRepository{db: db, table: defaultUsersTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// UserOption configures the repository.
type UserOption func(*UserRepository)

// WithUsersTable overrides the default table name.
func WithUsersTable(table string) UserOption {
	return func(repo *UserRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

const userColumns = `id, tenant_id, email, full_name, password_hash, role, is_active, last_login_at, created_at, updated_at`

// Get loads a user by id within a tenant.
func (r *UserRepository) Get(ctx context.Context, tenantID, id string) (*accounts.User, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("user repo: nil db")
	}
	if tenantID == "" || id == "" {
		return nil, errors.New("user repo: empty tenant or id")
	}
	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE tenant_id = $1 AND id = $2
LIMIT 1`, userColumns, r.table)
	return scanUser(r.db.QueryRowContext(ctx, query, tenantID, id))
}

// GetByEmail loads a user by email within a tenant.
func (r *UserRepository) GetByEmail(ctx context.Context, tenantID, email string) (*accounts.User, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("user repo: nil db")
	}
	if tenantID == "" || email == "" {
		return nil, errors.New("user repo: empty tenant or email")
	}
	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE tenant_id = $1 AND lower(email) = lower($2)
LIMIT 1`, userColumns, r.table)
	return scanUser(r.db.QueryRowContext(ctx, query, tenantID, email))
}

// List returns all users of a tenant ordered by creation time.
func (r *UserRepository) List(ctx context.Context, tenantID string) ([]accounts.User, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("user repo: nil db")
	}
	if tenantID == "" {
		return nil, errors.New("user repo: empty tenant")
	}
	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE tenant_id = $1
ORDER BY created_at ASC`, userColumns, r.table)

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []accounts.User
	for rows.Next() {
		user, err := scanUserRows(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// CountActive counts active users of a tenant.
func (r *UserRepository) CountActive(ctx context.Context, tenantID string) (int, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("user repo: nil db")
	}
	if tenantID == "" {
		return 0, errors.New("user repo: empty tenant")
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE tenant_id = $1 AND is_active`, r.table)
	var count int
	if err := r.db.QueryRowContext(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Save upserts a user.
func (r *UserRepository) Save(ctx context.Context, user *accounts.User) error {
	if r == nil || r.db == nil {
		return errors.New("user repo: nil db")
	}
	if user == nil {
		return errors.New("user repo: nil user")
	}
	if err := user.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	id,
	tenant_id,
	email,
	full_name,
	password_hash,
	role,
	is_active,
	last_login_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8
)
ON CONFLICT (id)
DO UPDATE SET
	email = EXCLUDED.email,
	full_name = EXCLUDED.full_name,
	password_hash = EXCLUDED.password_hash,
	role = EXCLUDED.role,
	is_active = EXCLUDED.is_active,
	last_login_at = EXCLUDED.last_login_at,
	updated_at = NOW()`, r.table)

	var lastLogin any
	if !user.LastLoginAt.IsZero() {
		lastLogin = user.LastLoginAt
	}
	_, err := r.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.TenantID,
		strings.ToLower(user.Email),
		user.FullName,
		user.PasswordHash,
		user.Role,
		user.IsActive,
		lastLogin,
	)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	return nil
}

func scanUser(row *sql.Row) (*accounts.User, error) {
	var user accounts.User
	var lastLogin sql.NullTime
	if err := row.Scan(
		&user.ID,
		&user.TenantID,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&lastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if lastLogin.Valid {
		user.LastLoginAt = lastLogin.Time.UTC()
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return &user, nil
}

func scanUserRows(rows *sql.Rows) (*accounts.User, error) {
	var user accounts.User
	var lastLogin sql.NullTime
	if err := rows.Scan(
		&user.ID,
		&user.TenantID,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&lastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		user.LastLoginAt = lastLogin.Time.UTC()
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return &user, nil
}
