package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	tenancy "github.com/stiwari2004/numerology/internal/tenancy/domain"
)

// TenantRepository is an in-memory repository for tenants.
type TenantRepository struct {
	mu   sync.RWMutex
	data map[string]*tenancy.Tenant
}

// NewTenantRepository constructs a repository.
func NewTenantRepository() *TenantRepository {
	return &TenantRepository{data: make(map[string]*tenancy.Tenant)}
}

// Get loads a tenant by id.
func (r *TenantRepository) Get(ctx context.Context, id string) (*tenancy.Tenant, error) {
	_ = ctx
	if id == "" {
		return nil, errors.New("tenant repo: empty id")
	}
	r.mu.RLock()
	tenant := r.data[id]
	r.mu.RUnlock()
	if tenant == nil {
		return nil, nil
	}
	clone := *tenant
	return &clone, nil
}

// GetBySubdomain loads a tenant by subdomain.
func (r *TenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*tenancy.Tenant, error) {
	_ = ctx
	if subdomain == "" {
		return nil, errors.New("tenant repo: empty subdomain")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tenant := range r.data {
		if tenant.Subdomain == subdomain {
			clone := *tenant
			return &clone, nil
		}
	}
	return nil, nil
}

// GetByCustomDomain loads a tenant by custom domain.
func (r *TenantRepository) GetByCustomDomain(ctx context.Context, domain string) (*tenancy.Tenant, error) {
	_ = ctx
	if domain == "" {
		return nil, errors.New("tenant repo: empty domain")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tenant := range r.data {
		if tenant.CustomDomain != "" && tenant.CustomDomain == domain {
			clone := *tenant
			return &clone, nil
		}
	}
	return nil, nil
}

// Save upserts a tenant (overwrites existing).
func (r *TenantRepository) Save(ctx context.Context, tenant *tenancy.Tenant) error {
	_ = ctx
	if tenant == nil {
		return errors.New("tenant repo: nil tenant")
	}
	if err := tenant.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	if tenant.CreatedAt.IsZero() {
		tenant.CreatedAt = now
	}
	tenant.UpdatedAt = now
	clone := *tenant
	r.mu.Lock()
	r.data[tenant.ID] = &clone
	r.mu.Unlock()
	return nil
}
