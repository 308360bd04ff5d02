package http

import (
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	tenancy "github.com/stiwari2004/numerology/internal/tenancy/domain"
	"github.com/stiwari2004/numerology/internal/tenancy/infrastructure/memory"
)

func newTestResolver(t *testing.T) (*Resolver, *memory.TenantRepository) {
	t.Helper()
	repo := memory.NewTenantRepository()
	err := repo.Save(context.Background(), &tenancy.Tenant{
		ID:                    "tenant-1",
		Name:                  "Acme Astrology",
		Subdomain:             "acme",
		CustomDomain:          "numbers.acme.example",
		Currency:              "INR",
		PurchasedUserLicenses: 5,
		IsActive:              true,
	})
	if err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)
	resolver, err := NewResolver(repo, "numerology.example", []string{"admin"}, logger)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return resolver, repo
}

func TestResolverSubdomain(t *testing.T) {
	resolver, _ := newTestResolver(t)
	var got *tenancy.Tenant
	handler := resolver.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = TenantFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenant", nil)
	req.Host = "acme.numerology.example"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got == nil || got.ID != "tenant-1" {
		t.Fatalf("expected tenant-1 in context, got %+v", got)
	}
}

func TestResolverCustomDomain(t *testing.T) {
	resolver, _ := newTestResolver(t)
	var got *tenancy.Tenant
	handler := resolver.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = TenantFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenant", nil)
	req.Host = "numbers.acme.example:8443"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got == nil || got.Subdomain != "acme" {
		t.Fatalf("expected resolved tenant, got %+v", got)
	}
}

func TestResolverUnknownTenant(t *testing.T) {
	resolver, _ := newTestResolver(t)
	handler := resolver.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenant", nil)
	req.Host = "missing.numerology.example"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestResolverSkipsAdminAndBase(t *testing.T) {
	resolver, _ := newTestResolver(t)
	handler := resolver.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if TenantFromContext(r.Context()) != nil {
			t.Fatalf("expected no tenant in context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	for _, host := range []string{"numerology.example", "admin.numerology.example", "localhost:8080", "127.0.0.1:8080"} {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Host = host
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("host %s: expected 200, got %d", host, resp.Code)
		}
	}
}

func TestResolverInactiveTenant(t *testing.T) {
	resolver, repo := newTestResolver(t)
	err := repo.Save(context.Background(), &tenancy.Tenant{
		ID:        "tenant-2",
		Name:      "Dormant",
		Subdomain: "dormant",
		Currency:  "INR",
	})
	if err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	handler := resolver.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenant", nil)
	req.Host = "dormant.numerology.example"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}
