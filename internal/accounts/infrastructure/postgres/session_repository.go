package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	accounts "github.com/stiwari2004/numerology/internal/accounts/domain"
)

const defaultSessionsTable = "user_sessions"

// SessionRepository is a Postgres implementation for sessions.
type SessionRepository struct {
	db    DBTX
	table string
}

// NewSessionRepository constructs a repository.
func NewSessionRepository(db DBTX, opts ...SessionOption) *SessionRepository {
	repo := &SessionRepository{db: db, table: defaultSessionsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// SessionOption configures the repository.
type SessionOption func(*SessionRepository)

// WithSessionsTable overrides the default table name.
func WithSessionsTable(table string) SessionOption {
	return func(repo *SessionRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Save inserts a session record.
func (r *SessionRepository) Save(ctx context.Context, session *accounts.Session) error {
	if r == nil || r.db == nil {
		return errors.New("session repo: nil db")
	}
	if session == nil {
		return errors.New("session repo: nil session")
	}
	if session.ID == "" || session.UserID == "" || session.TenantID == "" || session.TokenHash == "" {
		return errors.New("session repo: missing fields")
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	id, user_id, tenant_id, token_hash, expires_at
) VALUES (
	$1, $2, $3, $4, $5
)`, r.table)

	_, err := r.db.ExecContext(ctx, query, session.ID, session.UserID, session.TenantID, session.TokenHash, session.ExpiresAt)
	if err != nil {
		return err
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	return nil
}

// DeleteExpired removes sessions past their expiry.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	if r == nil || r.db == nil {
		return errors.New("session repo: nil db")
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE expires_at < $1`, r.table)
	_, err := r.db.ExecContext(ctx, query, now)
	return err
}
