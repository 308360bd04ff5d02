package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	accounts "github.com/stiwari2004/numerology/internal/accounts/domain"
)

// SessionRepository is an in-memory repository for sessions.
type SessionRepository struct {
	mu   sync.Mutex
	data map[string]*accounts.Session
}

// NewSessionRepository constructs a repository.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{data: make(map[string]*accounts.Session)}
}

// Save inserts a session record.
func (r *SessionRepository) Save(ctx context.Context, session *accounts.Session) error {
	_ = ctx
	if session == nil {
		return errors.New("session repo: nil session")
	}
	if session.ID == "" || session.UserID == "" || session.TenantID == "" || session.TokenHash == "" {
		return errors.New("session repo: missing fields")
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	clone := *session
	r.mu.Lock()
	r.data[session.ID] = &clone
	r.mu.Unlock()
	return nil
}

// DeleteExpired removes sessions past their expiry.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, session := range r.data {
		if session.ExpiresAt.Before(now) {
			delete(r.data, id)
		}
	}
	return nil
}

// Len reports the number of stored sessions.
func (r *SessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}
