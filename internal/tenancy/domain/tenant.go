package tenancy

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Tenant represents an organization account on the platform.
type Tenant struct {
	ID                     string
	Name                   string
	Subdomain              string
	CustomDomain           string
	ContactEmail           string
	LogoURL                string
	PrimaryColor           string
	Currency               string
	PurchasedUserLicenses  int
	SubscriptionValidUntil time.Time
	IsActive               bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Validate checks tenant invariants.
func (t Tenant) Validate() error {
	if t.ID == "" {
		return errors.New("tenant: empty id")
	}
	if t.Name == "" {
		return errors.New("tenant: empty name")
	}
	if t.Subdomain == "" {
		return errors.New("tenant: empty subdomain")
	}
	if strings.ContainsAny(t.Subdomain, ". /") {
		return errors.New("tenant: invalid subdomain")
	}
	if t.PurchasedUserLicenses < 0 {
		return errors.New("tenant: negative user licenses")
	}
	return nil
}

// SubscriptionActive reports whether the tenant subscription covers now.
func (t Tenant) SubscriptionActive(now time.Time) bool {
	if !t.IsActive {
		return false
	}
	if t.SubscriptionValidUntil.IsZero() {
		return true
	}
	return !now.After(t.SubscriptionValidUntil)
}

// Repository manages tenant persistence.
type Repository interface {
	Get(ctx context.Context, id string) (*Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*Tenant, error)
	GetByCustomDomain(ctx context.Context, domain string) (*Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
}
