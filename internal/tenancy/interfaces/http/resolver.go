package http

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"

	tenancy "github.com/stiwari2004/numerology/internal/tenancy/domain"
)

type contextKey string

const contextKeyTenant contextKey = "tenancy.tenant"

// TenantFromContext extracts the resolved tenant from context.
func TenantFromContext(ctx context.Context) *tenancy.Tenant {
	if ctx == nil {
		return nil
	}
	if tenant, ok := ctx.Value(contextKeyTenant).(*tenancy.Tenant); ok {
		return tenant
	}
	return nil
}

// Resolver resolves the request host to a tenant.
type Resolver struct {
	repo       tenancy.Repository
	baseDomain string
	skipHosts  map[string]struct{}
	logger     *log.Logger
}

// NewResolver constructs a host resolver middleware.
func NewResolver(repo tenancy.Repository, baseDomain string, skipSubdomains []string, logger *log.Logger) (*Resolver, error) {
	if repo == nil {
		return nil, errNilRepo
	}
	if logger == nil {
		logger = log.Default()
	}
	skip := make(map[string]struct{}, len(skipSubdomains))
	for _, sub := range skipSubdomains {
		if sub != "" {
			skip[sub] = struct{}{}
		}
	}
	return &Resolver{repo: repo, baseDomain: strings.ToLower(baseDomain), skipHosts: skip, logger: logger}, nil
}

// Wrap resolves the tenant for each request and stores it in context.
func (rs *Resolver) Wrap(next http.Handler) http.Handler {
	if rs == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := hostWithoutPort(r.Host)
		if host == "" || host == rs.baseDomain || host == "localhost" || isIPAddress(host) {
			next.ServeHTTP(w, r)
			return
		}

		var tenant *tenancy.Tenant
		var err error
		if rs.baseDomain != "" && strings.HasSuffix(host, "."+rs.baseDomain) {
			subdomain := strings.TrimSuffix(host, "."+rs.baseDomain)
			if _, skip := rs.skipHosts[subdomain]; skip {
				next.ServeHTTP(w, r)
				return
			}
			tenant, err = rs.repo.GetBySubdomain(r.Context(), subdomain)
		} else {
			tenant, err = rs.repo.GetByCustomDomain(r.Context(), host)
		}
		if err != nil {
			rs.logger.Printf("tenant resolve host=%s error=%v", host, err)
			http.Error(w, "tenant lookup failed", http.StatusInternalServerError)
			return
		}
		if tenant == nil {
			http.Error(w, "unknown tenant", http.StatusNotFound)
			return
		}
		if !tenant.IsActive {
			http.Error(w, "tenant inactive", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyTenant, tenant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func hostWithoutPort(host string) string {
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return strings.ToLower(h)
	}
	return strings.ToLower(host)
}

func isIPAddress(host string) bool {
	return net.ParseIP(host) != nil
}
