package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	accounts "github.com/stiwari2004/numerology/internal/accounts/domain"
)

// UserRepository is an in-memory repository for users.
type UserRepository struct {
	mu   sync.RWMutex
	data map[string]*accounts.User
}

// NewUserRepository constructs a repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{data: make(map[string]*accounts.User)}
}

// Get loads a user by id within a tenant.
func (r *UserRepository) Get(ctx context.Context, tenantID, id string) (*accounts.User, error) {
	_ = ctx
	if tenantID == "" || id == "" {
		return nil, errors.New("user repo: empty tenant or id")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user := r.data[id]
	if user == nil || user.TenantID != tenantID {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

// GetByEmail loads a user by email within a tenant.
func (r *UserRepository) GetByEmail(ctx context.Context, tenantID, email string) (*accounts.User, error) {
	_ = ctx
	if tenantID == "" || email == "" {
		return nil, errors.New("user repo: empty tenant or email")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.data {
		if user.TenantID == tenantID && strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

// List returns all users of a tenant ordered by creation time.
func (r *UserRepository) List(ctx context.Context, tenantID string) ([]accounts.User, error) {
	_ = ctx
	if tenantID == "" {
		return nil, errors.New("user repo: empty tenant")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []accounts.User
	for _, user := range r.data {
		if user.TenantID == tenantID {
			users = append(users, *user)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// CountActive counts active users of a tenant.
func (r *UserRepository) CountActive(ctx context.Context, tenantID string) (int, error) {
	_ = ctx
	if tenantID == "" {
		return 0, errors.New("user repo: empty tenant")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, user := range r.data {
		if user.TenantID == tenantID && user.IsActive {
			count++
		}
	}
	return count, nil
}

// Save upserts a user (overwrites existing).
func (r *UserRepository) Save(ctx context.Context, user *accounts.User) error {
	_ = ctx
	if user == nil {
		return errors.New("user repo: nil user")
	}
	if err := user.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	clone := *user
	r.mu.Lock()
	r.data[user.ID] = &clone
	r.mu.Unlock()
	return nil
}
