package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	tenancy "github.com/stiwari2004/numerology/internal/tenancy/domain"
)

const defaultTenantsTable = "tenants"

// TenantRepository is a Postgres implementation for tenants.
type TenantRepository struct {
	db    DBTX
	table string
}

// NewTenantRepository constructs a repository.
func NewTenantRepository(db DBTX, opts ...TenantOption) *TenantRepository {
	repo := &TenantRepository{db: db, table: defaultTenantsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// TenantOption configures the repository.
type TenantOption func(*TenantRepository)

// WithTenantTable overrides the default table name.
func WithTenantTable(table string) TenantOption {
	return func(repo *TenantRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

const tenantColumns = `id, name, subdomain, custom_domain, contact_email, logo_url, primary_color, currency,
purchased_user_licenses, subscription_valid_until, is_active, created_at, updated_at`

// Get loads a tenant by id.
func (r *TenantRepository) Get(ctx context.Context, id string) (*tenancy.Tenant, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("tenant repo: nil db")
	}
	if id == "" {
		return nil, errors.New("tenant repo: empty id")
	}
	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE id = $1
LIMIT 1`, tenantColumns, r.table)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetBySubdomain loads a tenant by subdomain.
func (r *TenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*tenancy.Tenant, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("tenant repo: nil db")
	}
	if subdomain == "" {
		return nil, errors.New("tenant repo: empty subdomain")
	}
	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE subdomain = $1
LIMIT 1`, tenantColumns, r.table)
	return r.scanOne(r.db.QueryRowContext(ctx, query, subdomain))
}

// GetByCustomDomain loads a tenant by custom domain.
func (r *TenantRepository) GetByCustomDomain(ctx context.Context, domain string) (*tenancy.Tenant, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("tenant repo: nil db")
	}
	if domain == "" {
		return nil, errors.New("tenant repo: empty domain")
	}
	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE custom_domain = $1
LIMIT 1`, tenantColumns, r.table)
	return r.scanOne(r.db.QueryRowContext(ctx, query, domain))
}

// Save upserts a tenant.
func (r *TenantRepository) Save(ctx context.Context, tenant *tenancy.Tenant) error {
	if r == nil || r.db == nil {
		return errors.New("tenant repo: nil db")
	}
	if tenant == nil {
		return errors.New("tenant repo: nil tenant")
	}
	if err := tenant.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	id,
	name,
	subdomain,
	custom_domain,
	contact_email,
	logo_url,
	primary_color,
	currency,
	purchased_user_licenses,
	subscription_valid_until,
	is_active
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
)
ON CONFLICT (id)
DO UPDATE SET
	name = EXCLUDED.name,
	subdomain = EXCLUDED.subdomain,
	custom_domain = EXCLUDED.custom_domain,
	contact_email = EXCLUDED.contact_email,
	logo_url = EXCLUDED.logo_url,
	primary_color = EXCLUDED.primary_color,
	currency = EXCLUDED.currency,
	purchased_user_licenses = EXCLUDED.purchased_user_licenses,
	subscription_valid_until = EXCLUDED.subscription_valid_until,
	is_active = EXCLUDED.is_active,
	updated_at = NOW()`, r.table)

	_, err := r.db.ExecContext(
		ctx,
		query,
		tenant.ID,
		tenant.Name,
		tenant.Subdomain,
		nullableString(tenant.CustomDomain),
		nullableString(tenant.ContactEmail),
		nullableString(tenant.LogoURL),
		nullableString(tenant.PrimaryColor),
		tenant.Currency,
		tenant.PurchasedUserLicenses,
		nullableTime(tenant.SubscriptionValidUntil),
		tenant.IsActive,
	)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if tenant.CreatedAt.IsZero() {
		tenant.CreatedAt = now
	}
	tenant.UpdatedAt = now
	return nil
}

func (r *TenantRepository) scanOne(row *sql.Row) (*tenancy.Tenant, error) {
	var tenant tenancy.Tenant
	var customDomain, contactEmail, logoURL, primaryColor sql.NullString
	var validUntil sql.NullTime
	if err := row.Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Subdomain,
		&customDomain,
		&contactEmail,
		&logoURL,
		&primaryColor,
		&tenant.Currency,
		&tenant.PurchasedUserLicenses,
		&validUntil,
		&tenant.IsActive,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	tenant.CustomDomain = customDomain.String
	tenant.ContactEmail = contactEmail.String
	tenant.LogoURL = logoURL.String
	tenant.PrimaryColor = primaryColor.String
	if validUntil.Valid {
		tenant.SubscriptionValidUntil = validUntil.Time.UTC()
	}
	tenant.CreatedAt = tenant.CreatedAt.UTC()
	tenant.UpdatedAt = tenant.UpdatedAt.UTC()
	return &tenant, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value
}
