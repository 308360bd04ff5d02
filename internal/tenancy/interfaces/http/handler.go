package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/stiwari2004/numerology/internal/auth"
	tenancy "github.com/stiwari2004/numerology/internal/tenancy/domain"
)

var errNilRepo = errors.New("tenancy handler: nil repository")

// Handler serves tenant metadata endpoints.
type Handler struct {
	repo tenancy.Repository
}

// NewHandler constructs a handler.
func NewHandler(repo tenancy.Repository) (*Handler, error) {
	if repo == nil {
		return nil, errNilRepo
	}
	return &Handler{repo: repo}, nil
}

type tenantResponse struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Subdomain              string `json:"subdomain"`
	CustomDomain           string `json:"custom_domain,omitempty"`
	ContactEmail           string `json:"contact_email,omitempty"`
	LogoURL                string `json:"logo_url,omitempty"`
	PrimaryColor           string `json:"primary_color,omitempty"`
	Currency               string `json:"currency"`
	PurchasedUserLicenses  int    `json:"purchased_user_licenses"`
	SubscriptionValidUntil string `json:"subscription_valid_until,omitempty"`
	IsActive               bool   `json:"is_active"`
}

// ServeHTTP handles GET /api/v1/tenant.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	tenant := TenantFromContext(r.Context())
	if tenant == nil {
		tenantID := auth.TenantIDFromContext(r.Context())
		if tenantID == "" {
			http.Error(w, "unknown tenant", http.StatusNotFound)
			return
		}
		loaded, err := h.repo.Get(r.Context(), tenantID)
		if err != nil {
			http.Error(w, "tenant lookup failed", http.StatusInternalServerError)
			return
		}
		if loaded == nil {
			http.Error(w, "unknown tenant", http.StatusNotFound)
			return
		}
		tenant = loaded
	}

	resp := tenantResponse{
		ID:                    tenant.ID,
		Name:                  tenant.Name,
		Subdomain:             tenant.Subdomain,
		CustomDomain:          tenant.CustomDomain,
		ContactEmail:          tenant.ContactEmail,
		LogoURL:               tenant.LogoURL,
		PrimaryColor:          tenant.PrimaryColor,
		Currency:              tenant.Currency,
		PurchasedUserLicenses: tenant.PurchasedUserLicenses,
		IsActive:              tenant.IsActive,
	}
	if !tenant.SubscriptionValidUntil.IsZero() {
		resp.SubscriptionValidUntil = tenant.SubscriptionValidUntil.Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
