package accounts

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrDuplicateEmail indicates the email is already registered within a tenant.
	ErrDuplicateEmail = errors.New("accounts: email already registered")
	// ErrLicenseLimit indicates the tenant has no remaining user licenses.
	ErrLicenseLimit = errors.New("accounts: user license limit reached")
	// ErrUserNotFound indicates the user does not exist.
	ErrUserNotFound = errors.New("accounts: user not found")
)

// User represents a platform user scoped to a tenant.
type User struct {
	ID           string
	TenantID     string
	Email        string
	FullName     string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLoginAt  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks user invariants.
func (u User) Validate() error {
	if u.ID == "" {
		return errors.New("user: empty id")
	}
	if u.TenantID == "" {
		return errors.New("user: empty tenant id")
	}
	if !validEmail(u.Email) {
		return errors.New("user: invalid email")
	}
	if u.PasswordHash == "" {
		return errors.New("user: empty password hash")
	}
	if u.Role == "" {
		return errors.New("user: empty role")
	}
	return nil
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}

// Session tracks an issued access token.
type Session struct {
	ID        string
	UserID    string
	TenantID  string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// UserRepository manages user persistence.
type UserRepository interface {
	Get(ctx context.Context, tenantID, id string) (*User, error)
	GetByEmail(ctx context.Context, tenantID, email string) (*User, error)
	List(ctx context.Context, tenantID string) ([]User, error)
	CountActive(ctx context.Context, tenantID string) (int, error)
	Save(ctx context.Context, user *User) error
}

// SessionRepository manages session persistence.
type SessionRepository interface {
	Save(ctx context.Context, session *Session) error
	DeleteExpired(ctx context.Context, now time.Time) error
}
